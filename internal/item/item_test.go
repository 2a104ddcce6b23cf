package item

import (
	"testing"
	"time"

	"github.com/d2edit/saveedit/internal/bitio"
	"github.com/d2edit/saveedit/internal/catalog"
	"github.com/d2edit/saveedit/internal/modifier"
	"github.com/d2edit/saveedit/internal/rules"
	"github.com/d2edit/saveedit/internal/testutil"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]catalog.BaseItem{
			{Code: "jew1", Name: "test jewel", Width: 1, Height: 1, TypeCodes: []string{"misc"}},
			{Code: "wspr", Name: "test spear", Width: 3, Height: 3, TypeCodes: []string{"weap"}},
		},
		nil,
		[]catalog.BaseModifier{
			{ID: 100, Code: "enr_factor", StatCode: "enrfactor", Length: 8, ConversionRate: 1},
			{ID: 101, Code: "energy", StatCode: "energy", Length: 8, ConversionRate: 1},
			{ID: 102, Code: "item_energy_percent", StatCode: "itemenergypercent", Length: 7, ConversionRate: 1},
			{ID: 103, Code: rules.MarkerShrineBlessed, StatCode: "blessingscounter", Length: 1, ConversionRate: 1},
			{ID: 104, Code: rules.MarkerUpgraded, StatCode: "itemupgraded", Length: 1, ConversionRate: 1},
		},
		nil,
		nil,
	)
}

func writeCode(c *bitio.Cursor, offset int, code string) {
	padded := code
	for len(padded) < 4 {
		padded += " "
	}
	for i := 0; i < 4; i++ {
		c.WriteUint(offset+i*8, 8, uint64(padded[i]))
	}
}

func sentinelBitsForTest() []byte {
	bits := make([]byte, 9)
	for i := range bits {
		bits[i] = 1
	}
	return bits
}

// rarityDetailWidth mirrors layout.go's rarityDetailsLength for the
// no-affix-rolled fixtures built below.
func rarityDetailWidth(r Rarity) int {
	switch r {
	case RarityLow, RaritySuperior:
		return widLowOrSuperiorQualityID
	case RarityMagic:
		return widMagicPrefixID + widMagicSuffixID
	case RaritySet, RarityUnique:
		return widSetQualityID
	case RarityRare, RarityCrafted:
		return widCraftedPrefixID + widCraftedSuffixID + affixSlotCount
	default:
		return 0
	}
}

// buildNonDurabilityItem builds a non-ear, non-simple, non-socketed,
// non-stackable, non-runeword record for a base item with no armor/weapon
// type codes, so the durability/defense branches are absent. Returns the
// full byte buffer, ready for Decode.
func buildNonDurabilityItem(code string, rarity Rarity, location Location, storage Storage, x, y int) []byte {
	detail := rarityDetailWidth(rarity)
	fixed := 156 + detail + widUnknownTimestamp
	c := bitio.NewZeroCursor(fixed)
	c.WriteUint(0, 8, uint64(HeaderBytes[0]))
	c.WriteUint(8, 8, uint64(HeaderBytes[1]))
	c.WriteUint(offIsIdentified, 1, 1)
	c.WriteUint(offLocation, widLocation, uint64(location))
	c.WriteUint(offStorageX, widStorageX, uint64(x))
	c.WriteUint(offStorageY, widStorageY, uint64(y))
	c.WriteUint(offStorage, widStorage, uint64(storage))
	writeCode(c, offCode, code)
	c.WriteUint(offUniqueID, widUniqueID, 123456)
	c.WriteUint(offLevel, widLevel, 10)
	c.WriteUint(offRarity, widRarity, uint64(rarity))
	c.AppendBits(sentinelBitsForTest())
	return c.Bytes()
}

// buildWeaponItem builds a record for the "wspr" weapon base item (no
// defense branch, but a durability branch), rarity normal.
func buildWeaponItem(maxDurRaw, curDurRaw uint64) []byte {
	fixed := 156 + widUnknownTimestamp + widMaxDurability + widCurrentDurability
	c := bitio.NewZeroCursor(fixed)
	c.WriteUint(0, 8, uint64(HeaderBytes[0]))
	c.WriteUint(8, 8, uint64(HeaderBytes[1]))
	c.WriteUint(offIsIdentified, 1, 1)
	c.WriteUint(offLocation, widLocation, uint64(LocationStored))
	c.WriteUint(offStorage, widStorage, uint64(StorageInventory))
	writeCode(c, offCode, "wspr")
	c.WriteUint(offUniqueID, widUniqueID, 999)
	c.WriteUint(offLevel, widLevel, 1)
	c.WriteUint(offRarity, widRarity, uint64(RarityNormal))
	maxDurIdx := 157
	c.WriteUint(maxDurIdx, widMaxDurability, maxDurRaw)
	c.WriteUint(maxDurIdx+widMaxDurability, widCurrentDurability, curDurRaw)
	c.AppendBits(sentinelBitsForTest())
	return c.Bytes()
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	cat := testCatalog()
	data := buildNonDurabilityItem("jew1", RarityNormal, LocationStored, StorageInventory, 2, 3)

	it, err := Decode(cat, data)
	testutil.RequireNoError(t, err, "Decode")

	got, err := Encode(cat, it)
	testutil.RequireNoError(t, err, "Encode")

	testutil.AssertBytesEqualModuloTrailingZeroBits(t, data, got, "unmutated round trip")
}

func TestChangePositionRejectsUnsupportedValues(t *testing.T) {
	cat := testCatalog()
	data := buildNonDurabilityItem("jew1", RarityNormal, LocationStored, StorageInventory, 0, 0)
	it, err := Decode(cat, data)
	testutil.RequireNoError(t, err, "Decode")

	if err := it.ChangePosition(Location(99), StorageInventory, 1, 1); err == nil {
		t.Fatal("expected error for unsupported location")
	}
	if err := it.ChangePosition(LocationStored, Storage(99), 1, 1); err == nil {
		t.Fatal("expected error for unsupported storage")
	}

	if err := it.ChangePosition(LocationStored, StorageHoradricCube, 4, 5); err != nil {
		t.Fatalf("ChangePosition: %v", err)
	}
	if it.StorageX() != 4 || it.StorageY() != 5 || it.Storage() != StorageHoradricCube {
		t.Fatalf("position not applied: x=%d y=%d storage=%d", it.StorageX(), it.StorageY(), it.Storage())
	}
}

func TestMaximizeSocketsCapsAtSix(t *testing.T) {
	cat := testCatalog()
	data := buildWeaponItem(95, 153) // max=5, current=3

	it, err := Decode(cat, data)
	testutil.RequireNoError(t, err, "Decode")

	if err := it.MaximizeSockets(); err != nil {
		t.Fatalf("MaximizeSockets: %v", err)
	}
	if !it.IsSocketed() {
		t.Fatal("expected item to be socketed")
	}

	// wspr is 3x3 = 9 cells, which the cap brings down to 6.
	got, err := Encode(cat, it)
	testutil.RequireNoError(t, err, "Encode")

	reDecoded, err := Decode(cat, got)
	testutil.RequireNoError(t, err, "Decode after socket")
	if !reDecoded.IsSocketed() {
		t.Fatal("re-decoded item lost socketed flag")
	}
	if n := reDecoded.bits.ReadUint(reDecoded.totalSocketIndex(), widTotalSockets); n != 6 {
		t.Fatalf("total_sockets = %d, want 6", n)
	}
}

func TestShrineBlessEerieMinorThenRejectsRepeat(t *testing.T) {
	cat := testCatalog()
	data := buildNonDurabilityItem("jew1", RarityCrafted, LocationStored, StorageInventory, 0, 0)
	it, err := Decode(cat, data)
	testutil.RequireNoError(t, err, "Decode")

	if err := it.ShrineBless("Eerie"); err != nil {
		t.Fatalf("ShrineBless: %v", err)
	}

	want := map[string]float64{"enr_factor": 30, "energy": 20, "item_energy_percent": 5}
	for code, value := range want {
		m := findModByCodeForTest(it, code)
		if m == nil {
			t.Fatalf("missing mod %q after bless", code)
		}
		if m.Values["value"] != value {
			t.Fatalf("%s = %v, want %v", code, m.Values["value"], value)
		}
	}
	if findModByCodeForTest(it, rules.MarkerShrineBlessed) == nil {
		t.Fatal("missing blessing marker")
	}

	if err := it.ShrineBless("Eerie"); err == nil {
		t.Fatal("expected AlreadyBlessed on repeat bless")
	}
}

func findModByCodeForTest(it *Item, code string) *modifier.Modifier {
	for _, m := range it.Mods() {
		if m.Base.Code == code {
			return m
		}
	}
	return nil
}

func TestChangeRarityMagicToRarePreservesOtherFields(t *testing.T) {
	cat := testCatalog()
	data := buildNonDurabilityItem("jew1", RarityMagic, LocationStored, StorageInventory, 7, 8)
	it, err := Decode(cat, data)
	testutil.RequireNoError(t, err, "Decode")

	wantLevel := it.Level()
	wantX, wantY := it.StorageX(), it.StorageY()

	if err := it.ChangeRarity(RarityRare, RarityOptions{PrefixID: 3, SuffixID: 5}); err != nil {
		t.Fatalf("ChangeRarity: %v", err)
	}

	if it.Rarity() != RarityRare {
		t.Fatalf("Rarity() = %v, want rare", it.Rarity())
	}
	if it.Level() != wantLevel {
		t.Fatalf("Level changed: got %d, want %d", it.Level(), wantLevel)
	}
	if it.StorageX() != wantX || it.StorageY() != wantY {
		t.Fatalf("position changed: got (%d,%d), want (%d,%d)", it.StorageX(), it.StorageY(), wantX, wantY)
	}

	// Round trip the mutated record through Encode/Decode to confirm the
	// rewritten rarity-detail block leaves a structurally valid record.
	out, err := Encode(cat, it)
	testutil.RequireNoError(t, err, "Encode")
	reDecoded, err := Decode(cat, out)
	testutil.RequireNoError(t, err, "Decode mutated")
	if reDecoded.Rarity() != RarityRare {
		t.Fatalf("re-decoded rarity = %v, want rare", reDecoded.Rarity())
	}
}

func TestChangeRarityToSetInsertsCleanModBitField(t *testing.T) {
	cat := testCatalog()
	data := buildNonDurabilityItem("jew1", RarityMagic, LocationStored, StorageInventory, 7, 8)
	it, err := Decode(cat, data)
	testutil.RequireNoError(t, err, "Decode")

	if err := it.ChangeRarity(RaritySet, RarityOptions{QualityID: 42}); err != nil {
		t.Fatalf("ChangeRarity: %v", err)
	}
	if it.Rarity() != RaritySet {
		t.Fatalf("Rarity() = %v, want set", it.Rarity())
	}

	field := it.bits.ReadUint(it.setModBitFieldIndex(), widSetModBitField)
	if field != 0 {
		t.Fatalf("set_mod_bit_field = %d, want 0", field)
	}

	out, err := Encode(cat, it)
	testutil.RequireNoError(t, err, "Encode")
	reDecoded, err := Decode(cat, out)
	testutil.RequireNoError(t, err, "Decode mutated")
	if reDecoded.Rarity() != RaritySet {
		t.Fatalf("re-decoded rarity = %v, want set", reDecoded.Rarity())
	}

	// Leaving set again should drop the field without corrupting the
	// following modifier list.
	if err := reDecoded.ChangeRarity(RarityRare, RarityOptions{PrefixID: 1, SuffixID: 2}); err != nil {
		t.Fatalf("ChangeRarity back to rare: %v", err)
	}
	if _, err := Encode(cat, reDecoded); err != nil {
		t.Fatalf("Encode after leaving set: %v", err)
	}
}

func TestCloneAssignsFreshID(t *testing.T) {
	cat := testCatalog()
	data := buildNonDurabilityItem("jew1", RarityNormal, LocationStored, StorageInventory, 0, 0)
	it, err := Decode(cat, data)
	testutil.RequireNoError(t, err, "Decode")

	clone := it.Clone(time.Unix(1700000000, 0))
	if clone.UniqueID() == it.UniqueID() {
		t.Fatal("expected clone to receive a different unique id")
	}
	if clone.Code() != it.Code() {
		t.Fatalf("clone code = %q, want %q", clone.Code(), it.Code())
	}
}
