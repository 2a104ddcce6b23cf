package modifier

import (
	"testing"

	"github.com/d2edit/saveedit/internal/bitio"
	"github.com/d2edit/saveedit/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(nil, nil,
		[]catalog.BaseModifier{
			{ID: 10, Code: "item_addclassskills", StatCode: "itemaddclassskills", Length: 7},
			{ID: 20, Code: "item_nonclassskill", StatCode: "itemnonclassskill", Length: 19},
			{ID: 30, Code: "item_reanimate", StatCode: "itemreanimate", Length: 19},
			{ID: 40, Code: "item_skillonhit", StatCode: "itemskillonhit", Length: 24},
			{ID: 50, Code: "coldmindam", StatCode: "coldmindam", Length: 9, MinValue: 0, ConversionRate: 1},
			{ID: 51, Code: "coldmaxdam", StatCode: "coldmaxdam", Length: 9, MinValue: 0, ConversionRate: 1},
			{ID: 52, Code: "colddamageduration", StatCode: "colddamageduration", Length: 8, MinValue: 0, ConversionRate: 1},
			{ID: 60, Code: "item_mocount", StatCode: "itemmocount", Length: 18},
			{ID: 70, Code: "strength", StatCode: "strength", Length: 10, MinValue: 0, ConversionRate: 1},
		},
		[]catalog.BaseStat{
			{ID: 999, Code: "unknownfallback", Length: 5},
		},
		nil,
	)
}

func roundTrip(t *testing.T, cat catalog.DataCatalog, m *Modifier) *Modifier {
	t.Helper()
	bits, err := Encode(cat, m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	c := bitio.NewCursor(packBits(bits))
	id := int(c.ReadUint(0, idWidth))
	res := Decode(cat, c, idWidth, id, m.Runeword)
	if res.Halt {
		t.Fatal("Decode halted unexpectedly")
	}
	if res.Mod == nil {
		t.Fatal("Decode returned nil Mod")
	}
	return res.Mod
}

func packBits(bits []byte) []byte {
	c := bitio.NewZeroCursor(0)
	c.AppendBits(bits)
	return c.Bytes()
}

func TestDefaultFamilyRoundTrip(t *testing.T) {
	cat := testCatalog()
	base, _ := cat.BaseModByID(70)
	m := &Modifier{Base: base, Values: map[string]float64{"value": 25}}

	got := roundTrip(t, cat, m)
	if got.Values["value"] != 25 {
		t.Fatalf("value = %v, want 25", got.Values["value"])
	}
	if got.LogicalID() != "strength" {
		t.Fatalf("LogicalID = %q, want %q", got.LogicalID(), "strength")
	}
}

func TestClassSkillRoundTripAndLogicalID(t *testing.T) {
	cat := testCatalog()
	base, _ := cat.BaseModByID(10)
	m := &Modifier{Base: base, Values: map[string]float64{"class_id": 2, "value": 3}}

	got := roundTrip(t, cat, m)
	if got.Values["class_id"] != 2 || got.Values["value"] != 3 {
		t.Fatalf("unexpected values: %+v", got.Values)
	}
	if got.LogicalID() != "item_addclassskills:2" {
		t.Fatalf("LogicalID = %q", got.LogicalID())
	}
}

func TestOskillMinBiasRoundTrip(t *testing.T) {
	cat := testCatalog()
	base, _ := cat.BaseModByID(20)
	m := &Modifier{Base: base, Values: map[string]float64{"skill_id": 154, "skill_level": 3}}

	got := roundTrip(t, cat, m)
	if got.Values["skill_id"] != 154 {
		t.Fatalf("skill_id = %v, want 154", got.Values["skill_id"])
	}
	if got.Values["skill_level"] != 3 {
		t.Fatalf("skill_level = %v, want 3", got.Values["skill_level"])
	}
}

func TestSkillOnEventWidthDispatch(t *testing.T) {
	cat := testCatalog()
	base, _ := cat.BaseModByID(40) // length 24 < 25 -> narrow form
	props, err := Properties(cat, base)
	if err != nil {
		t.Fatalf("Properties: %v", err)
	}
	skillProp, ok := propertyByCode(props, "skill_id")
	if !ok {
		t.Fatal("expected skill_id property")
	}
	if skillProp.Width != 11 {
		t.Fatalf("skill_id width = %d, want 11 for narrow form", skillProp.Width)
	}
	chanceProp, _ := propertyByCode(props, "chance")
	if chanceProp.Conv != 1 {
		t.Fatalf("chance conv = %v, want 1 for narrow form", chanceProp.Conv)
	}
}

func TestAddingDamageWithDurationTriple(t *testing.T) {
	cat := testCatalog()
	base, _ := cat.BaseModByID(50)
	m := &Modifier{Base: base, Values: map[string]float64{
		"value":    5,
		"max_dmg":  9,
		"duration": 3,
	}}

	got := roundTrip(t, cat, m)
	if got.Values["value"] != 5 || got.Values["max_dmg"] != 9 || got.Values["duration"] != 3 {
		t.Fatalf("unexpected values: %+v", got.Values)
	}
}

func TestMissingPropertyDefaultsToMaxValue(t *testing.T) {
	cat := testCatalog()
	base, _ := cat.BaseModByID(70)
	m := &Modifier{Base: base, Values: map[string]float64{}}

	got := roundTrip(t, cat, m)
	want := float64(uint64(1)<<uint(base.Length) - 1)
	if got.Values["value"] != want {
		t.Fatalf("value = %v, want max %v", got.Values["value"], want)
	}
}

func TestDecodeFallsBackToStatWidthForUnknownID(t *testing.T) {
	cat := testCatalog()
	c := bitio.NewZeroCursor(idWidth + 5)
	res := Decode(cat, c, idWidth, 999, false)
	if res.Halt {
		t.Fatal("expected fallback skip, got Halt")
	}
	if res.Mod != nil {
		t.Fatal("expected no Mod for a skip-only fallback")
	}
	if res.Width != 5 {
		t.Fatalf("Width = %d, want 5", res.Width)
	}
}

func TestDecodeHaltsOnTrulyUnknownID(t *testing.T) {
	cat := testCatalog()
	c := bitio.NewZeroCursor(idWidth)
	res := Decode(cat, c, idWidth, 123456, false)
	if !res.Halt {
		t.Fatal("expected Halt for an id absent from both tables")
	}
}

func TestRunewordSuffix(t *testing.T) {
	cat := testCatalog()
	base, _ := cat.BaseModByID(70)
	m := &Modifier{Base: base, Runeword: true, Values: map[string]float64{"value": 1}}
	if m.LogicalID() != "strength|rw" {
		t.Fatalf("LogicalID = %q, want strength|rw", m.LogicalID())
	}
}
