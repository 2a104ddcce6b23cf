package rules

// ShrineCategory selects which half of a ShrineRecipe applies: items that
// are body armor or two-handed weapons get the "greater" effect bundle,
// everything else gets "minor" (spec §4.4.2: "apply the rule set for that
// shrine (minor or greater based on body-armor/2h-weapon)").
type ShrineCategory int

const (
	ShrineMinor ShrineCategory = iota
	ShrineGreater
)

// ShrineRecipe is one named shrine's additive mod bundle, keyed by mod
// code then property code then desired value.
type ShrineRecipe struct {
	Minor   map[string]map[string]float64
	Greater map[string]map[string]float64
}

// shrines is the declarative minor/greater shrine-blessing table. Eerie's
// minor bundle is grounded in the worked example this codec must
// reproduce exactly; its greater bundle and the other named shrines are
// proportionate extensions for a usable rule table.
var shrines = map[string]ShrineRecipe{
	"Eerie": {
		Minor: map[string]map[string]float64{
			"enr_factor":          {"value": 30},
			"energy":              {"value": 20},
			"item_energy_percent": {"value": 5},
		},
		Greater: map[string]map[string]float64{
			"enr_factor":          {"value": 60},
			"energy":              {"value": 40},
			"item_energy_percent": {"value": 10},
		},
	},
	"Divine": {
		Minor: map[string]map[string]float64{
			"strength":              {"value": 15},
			"item_strength_percent": {"value": 4},
		},
		Greater: map[string]map[string]float64{
			"strength":              {"value": 30},
			"item_strength_percent": {"value": 8},
		},
	},
	"Fortunate": {
		Minor: map[string]map[string]float64{
			"vitality":              {"value": 15},
			"item_vitality_percent": {"value": 4},
		},
		Greater: map[string]map[string]float64{
			"vitality":              {"value": 30},
			"item_vitality_percent": {"value": 8},
		},
	},
}

// Shrine looks up a named shrine's recipe.
func Shrine(name string) (ShrineRecipe, bool) {
	r, ok := shrines[name]
	return r, ok
}

// Bundle selects the minor or greater mod bundle.
func (r ShrineRecipe) Bundle(category ShrineCategory) map[string]map[string]float64 {
	if category == ShrineGreater {
		return r.Greater
	}
	return r.Minor
}
