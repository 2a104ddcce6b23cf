// Package item implements ItemCodec (spec §4.4): decode/encode of a single
// item bit record plus every single-item mutation (§4.4.2). Offsets below
// are grounded directly in the upstream BASE_STRUCTURE/NON_EAR_STRUCTURE
// bit tables: fixed until code/rarity, a lazily recomputed walk after.
package item

// HeaderBytes is the two-byte item record header, "JM" (spec §4.4,§6).
var HeaderBytes = [2]byte{0x4A, 0x4D}

// Fixed common-header bit offsets (spec §3 "Common header"), identical
// for ear and non-ear records.
const (
	offIsIdentified               = 20
	offIsSocketed                 = 27
	offIsPickedUpSinceLastSave    = 29
	offIsEar                      = 32
	offIsStarterGear              = 33
	offIsSimple                   = 37
	offIsEthereal                 = 38
	offIsPersonalized             = 40
	offIsRuneword                 = 42
	offLocation, widLocation      = 58, 3
	offEquippedLoc, widEquippedLoc = 61, 4
	offStorageX, widStorageX      = 65, 4
	offStorageY, widStorageY      = 69, 4
	offStorage, widStorage        = 73, 3
)

// Ear body offsets (spec §3 "Ear body"), relative to record start.
const (
	offOwnerClass, widOwnerClass = 76, 3
	offOwnerLevel, widOwnerLevel = 79, 7
	offOwnerName                 = 86
	ownerNameCharWidth           = 7
	ownerNameMaxChars            = 15
)

// Non-ear fixed prefix (spec §3 "Non-ear body"), before the
// rarity-conditional block.
const (
	offCode, widCode             = 76, 32
	offSocketsFlag, widSockets   = 108, 3
	offUniqueID, widUniqueID     = 111, 32
	offLevel, widLevel           = 143, 7
	offRarity, widRarity         = 150, 4
	offHasCustomGraphic          = 154
	widCustomGraphic             = 3
	widHasClassSpec              = 1
	widClassSpec                 = 11
)

// Rarity detail block widths (spec §3 "Rarity detail block").
const (
	widLowOrSuperiorQualityID = 3
	widMagicPrefixID          = 11
	widMagicSuffixID          = 11
	widSetQualityID           = 15
	widUniqueQualityID        = 15
	widCraftedPrefixID        = 8
	widCraftedSuffixID        = 8
	affixSlotCount            = 6
	widAffixFlag              = 1
	widAffixID                = 11
)

const (
	widRuneword         = 16
	widUnknownTimestamp = 1
	widDefenseValue     = 16
	widMaxDurability    = 9
	widCurrentDurability = 9
	widQuantity         = 9
	widTotalSockets     = 4
	widSetModBitField   = 5
)

// Biasing constants (spec §3): the stored raw value plus these yields the
// logical value.
const (
	biasDefenseValue      = -500
	biasMaxDurability     = -90
	biasCurrentDurability = -150
)

// Rarity is the item quality tier (spec GLOSSARY).
type Rarity int

const (
	RarityInvalid  Rarity = 0
	RarityLow      Rarity = 1
	RarityNormal   Rarity = 2
	RaritySuperior Rarity = 3
	RarityMagic    Rarity = 4
	RaritySet      Rarity = 5
	RarityRare     Rarity = 6
	RarityUnique   Rarity = 7
	RarityCrafted  Rarity = 8
	RarityTempered Rarity = 9
)

func (r Rarity) String() string {
	switch r {
	case RarityInvalid:
		return "invalid"
	case RarityLow:
		return "low"
	case RarityNormal:
		return "normal"
	case RaritySuperior:
		return "superior"
	case RarityMagic:
		return "magic"
	case RaritySet:
		return "set"
	case RarityRare:
		return "rare"
	case RarityUnique:
		return "unique"
	case RarityCrafted:
		return "crafted"
	case RarityTempered:
		return "tempered"
	default:
		return "unknown"
	}
}

// Location is where an item currently resides (spec §3).
type Location int

const (
	LocationStored   Location = 0
	LocationEquipped Location = 1
	LocationBelt     Location = 2
	LocationGround   Location = 3
	LocationCursor   Location = 4
	LocationSocketed Location = 6
)

var validLocations = map[Location]bool{
	LocationStored: true, LocationEquipped: true, LocationBelt: true,
	LocationGround: true, LocationCursor: true, LocationSocketed: true,
}

// Storage is which container an item sits in (spec §3).
type Storage int

const (
	StorageInventory    Storage = 1
	StorageHoradricCube Storage = 4
	StorageStash        Storage = 5
)

var validStorages = map[Storage]bool{
	StorageInventory: true, StorageHoradricCube: true, StorageStash: true,
}

// EquippedLocation is the body slot an equipped item occupies.
type EquippedLocation int

const (
	EquippedHead      EquippedLocation = 1
	EquippedNeck      EquippedLocation = 2
	EquippedTorso     EquippedLocation = 3
	EquippedRightHand EquippedLocation = 4
	EquippedLeftHand  EquippedLocation = 5
	EquippedRightRing EquippedLocation = 6
	EquippedLeftRing  EquippedLocation = 7
	EquippedBelt      EquippedLocation = 8
)

// HoradricCubeSize is the fixed Horadric Cube inventory footprint (spec
// §6), width then height.
var HoradricCubeSize = [2]int{14, 9}
