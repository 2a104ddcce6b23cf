package item

// This file is the layout walker (spec §4.4.1): every offset below is
// recomputed from current bit state on every call, never cached, so a
// mutation that inserts or deletes bits never leaves a stale derived
// index behind.

func (it *Item) IsIdentified() bool            { return it.bits.ReadUint(offIsIdentified, 1) == 1 }
func (it *Item) IsSocketed() bool              { return it.bits.ReadUint(offIsSocketed, 1) == 1 }
func (it *Item) IsPickedUpSinceLastSave() bool { return it.bits.ReadUint(offIsPickedUpSinceLastSave, 1) == 1 }
func (it *Item) IsEar() bool                   { return it.bits.ReadUint(offIsEar, 1) == 1 }
func (it *Item) IsStarterGear() bool           { return it.bits.ReadUint(offIsStarterGear, 1) == 1 }
func (it *Item) IsSimple() bool                { return it.bits.ReadUint(offIsSimple, 1) == 1 }
func (it *Item) IsEthereal() bool              { return it.bits.ReadUint(offIsEthereal, 1) == 1 }
func (it *Item) IsPersonalized() bool          { return it.bits.ReadUint(offIsPersonalized, 1) == 1 }
func (it *Item) IsRuneword() bool              { return it.bits.ReadUint(offIsRuneword, 1) == 1 }

func (it *Item) Location() Location { return Location(it.bits.ReadUint(offLocation, widLocation)) }
func (it *Item) EquippedLocation() EquippedLocation {
	return EquippedLocation(it.bits.ReadUint(offEquippedLoc, widEquippedLoc))
}
func (it *Item) StorageX() int { return int(it.bits.ReadUint(offStorageX, widStorageX)) }
func (it *Item) StorageY() int { return int(it.bits.ReadUint(offStorageY, widStorageY)) }
func (it *Item) Storage() Storage { return Storage(it.bits.ReadUint(offStorage, widStorage)) }

// Code reads the 4-character item type code, stripping trailing NUL/space
// padding (spec §3: "space=NUL").
func (it *Item) Code() string {
	if it.IsEar() {
		return ""
	}
	chars := make([]byte, 0, 4)
	for i := 0; i < 4; i++ {
		c := byte(it.bits.ReadUint(offCode+i*8, 8))
		if c == 0 {
			c = ' '
		}
		chars = append(chars, c)
	}
	s := string(chars)
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

func (it *Item) UniqueID() uint32 {
	return uint32(it.bits.ReadUint(offUniqueID, widUniqueID))
}

func (it *Item) Level() int { return int(it.bits.ReadUint(offLevel, widLevel)) }

func (it *Item) Rarity() Rarity { return Rarity(it.bits.ReadUint(offRarity, widRarity)) }

func (it *Item) hasCustomGraphic() bool {
	return it.bits.ReadUint(offHasCustomGraphic, 1) == 1
}

func (it *Item) hasClassSpecIndex() int {
	idx := offHasCustomGraphic + 1
	if it.hasCustomGraphic() {
		idx += widCustomGraphic
	}
	return idx
}

func (it *Item) hasClassSpec() bool {
	return it.bits.ReadUint(it.hasClassSpecIndex(), widHasClassSpec) == 1
}

// classSpecIndex is where the 11-bit class-spec block starts, right after
// its has_class_spec flag.
func (it *Item) classSpecIndex() int {
	return it.hasClassSpecIndex() + widHasClassSpec
}

// rarityDetailsIndex is rarity_details_index (spec §4.4.1 step 2): it
// follows the class-spec block when present.
func (it *Item) rarityDetailsIndex() int {
	idx := it.classSpecIndex()
	if it.hasClassSpec() {
		idx += widClassSpec
	}
	return idx
}

// rarityDetailsLength is step 3: determined by rarity, walking the six
// affix slots for rare/crafted.
func (it *Item) rarityDetailsLength() int {
	idx := it.rarityDetailsIndex()
	switch it.Rarity() {
	case RarityLow, RaritySuperior:
		return widLowOrSuperiorQualityID
	case RarityMagic:
		return widMagicPrefixID + widMagicSuffixID
	case RaritySet:
		return widSetQualityID
	case RarityUnique:
		return widUniqueQualityID
	case RarityRare, RarityCrafted:
		pos := idx + widCraftedPrefixID + widCraftedSuffixID
		for i := 0; i < affixSlotCount; i++ {
			if it.bits.ReadUint(pos, widAffixFlag) == 1 {
				pos += widAffixFlag + widAffixID
			} else {
				pos += widAffixFlag
			}
		}
		return pos - idx
	default:
		return 0
	}
}

// runewordIndex is step 4: rarity-details end.
func (it *Item) runewordIndex() int {
	idx := it.rarityDetailsIndex() + it.rarityDetailsLength()
	if it.IsRuneword() {
		idx += widRuneword
	}
	return idx
}

// defenseIndex is step 5: runeword end plus the unknown "timestamp" bit.
func (it *Item) defenseIndex() int {
	return it.runewordIndex() + widUnknownTimestamp
}

func (it *Item) hasDefense() bool {
	return !it.IsEar() && !it.IsSimple() && it.isArmor()
}

func (it *Item) hasDurability() bool {
	if it.IsEar() || it.IsSimple() {
		return false
	}
	return it.isArmor() || it.isWeapon()
}

func (it *Item) isArmor() bool {
	b, ok := it.catalogBase()
	return ok && hasRelatedType(it.cat, b, "armo")
}

func (it *Item) isWeapon() bool {
	b, ok := it.catalogBase()
	return ok && hasRelatedType(it.cat, b, "weap")
}

func (it *Item) isStackable() bool {
	if it.IsEar() || it.IsSimple() {
		return false
	}
	b, ok := it.catalogBase()
	return ok && b.Stackable
}

// maxDurabilityIndex is step 6.
func (it *Item) maxDurabilityIndex() int {
	idx := it.defenseIndex()
	if it.hasDefense() {
		idx += widDefenseValue
	}
	return idx
}

// MaxDurability returns the biased max durability, or 0 when the item has
// no durability branch.
func (it *Item) MaxDurability() int {
	if !it.hasDurability() {
		return 0
	}
	return int(it.bits.ReadUint(it.maxDurabilityIndex(), widMaxDurability)) + biasMaxDurability
}

// currentDurabilityIndex is step 7.
func (it *Item) currentDurabilityIndex() int {
	idx := it.maxDurabilityIndex()
	if it.hasDurability() {
		idx += widMaxDurability
	}
	return idx
}

func (it *Item) hasCurrentDurability() bool {
	return it.hasDurability() && it.MaxDurability() > 0
}

// quantityIndex is step 8.
func (it *Item) quantityIndex() int {
	idx := it.currentDurabilityIndex()
	if it.hasCurrentDurability() {
		idx += widCurrentDurability
	}
	return idx
}

// totalSocketIndex is step 9.
func (it *Item) totalSocketIndex() int {
	idx := it.quantityIndex()
	if it.isStackable() {
		idx += widQuantity
	}
	return idx
}

// setModBitFieldIndex is step 10.
func (it *Item) setModBitFieldIndex() int {
	idx := it.totalSocketIndex()
	if it.IsSocketed() {
		idx += widTotalSockets
	}
	return idx
}

// startModIndex is step 11: where the terminated modifier list begins.
func (it *Item) startModIndex() int {
	idx := it.setModBitFieldIndex()
	if it.Rarity() == RaritySet {
		idx += widSetModBitField
	}
	return idx
}
