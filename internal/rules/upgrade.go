package rules

// UpgradeCategory selects an upgrade formula's target item class (spec
// §4.4.2: "apply rule set selected by item category").
type UpgradeCategory string

const (
	UpgradeWeapon           UpgradeCategory = "weapon"
	UpgradeElementalWeapon  UpgradeCategory = "elemental-weapon"
	UpgradeArmor            UpgradeCategory = "armor"
	UpgradeAmulet           UpgradeCategory = "amulet"
	UpgradeRing             UpgradeCategory = "ring"
	UpgradeQuiver           UpgradeCategory = "quiver"
	UpgradeJewel            UpgradeCategory = "jewel"
)

// UpgradeFormula is one category's additive mod bundle plus the rarity
// tiers it may be applied from.
type UpgradeFormula struct {
	AllowedRarities []string
	Mods            map[string]map[string]float64
}

var upgrades = map[UpgradeCategory]UpgradeFormula{
	UpgradeWeapon: {
		AllowedRarities: []string{"rare", "crafted"},
		Mods: map[string]map[string]float64{
			"item_maxdamage_percent": {"value": 15, "max_dmg": 15},
		},
	},
	UpgradeElementalWeapon: {
		AllowedRarities: []string{"rare", "crafted"},
		Mods: map[string]map[string]float64{
			"firemindam": {"value": 10, "max_dmg": 20},
		},
	},
	UpgradeArmor: {
		AllowedRarities: []string{"rare", "crafted"},
		Mods: map[string]map[string]float64{
			"enr_factor": {"value": 10},
		},
	},
	UpgradeAmulet: {
		AllowedRarities: []string{"rare", "crafted"},
		Mods: map[string]map[string]float64{
			"energy": {"value": 10},
		},
	},
	UpgradeRing: {
		AllowedRarities: []string{"rare", "crafted"},
		Mods: map[string]map[string]float64{
			"strength": {"value": 10},
		},
	},
	UpgradeQuiver: {
		AllowedRarities: []string{"rare", "crafted"},
		Mods: map[string]map[string]float64{
			"vitality": {"value": 10},
		},
	},
	UpgradeJewel: {
		AllowedRarities: []string{"rare", "crafted"},
		Mods: map[string]map[string]float64{
			"dexterity": {"value": 10},
		},
	},
}

// Upgrade looks up a category's formula.
func Upgrade(category UpgradeCategory) (UpgradeFormula, bool) {
	f, ok := upgrades[category]
	return f, ok
}

// AllowsRarity reports whether the formula may be applied from rarity.
func (f UpgradeFormula) AllowsRarity(rarity string) bool {
	for _, r := range f.AllowedRarities {
		if r == rarity {
			return true
		}
	}
	return false
}
