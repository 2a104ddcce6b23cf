// Package modifier implements ModifierCodec (spec §4.3): the property
// layout dispatch for a single item modifier record, and its decode/encode
// and logical-identity rules.
package modifier

import (
	"github.com/d2edit/saveedit/internal/apperr"
	"github.com/d2edit/saveedit/internal/catalog"
)

// Property is one field of a modifier's encoded property block.
type Property struct {
	Code string
	Width int
	Min   float64
	Conv  float64
}

// Properties enumerates the property layout for base, consulting cat only
// for the adding-damage family's linked id+1/id+2 lookups.
func Properties(cat catalog.DataCatalog, base catalog.BaseModifier) ([]Property, error) {
	switch familyOf(base.Code) {
	case familyClassSkill:
		return []Property{
			{Code: "class_id", Width: 3, Min: 0, Conv: 1},
			{Code: "value", Width: 4, Min: 0, Conv: 1},
		}, nil

	case familyOskill:
		return []Property{
			{Code: "skill_id", Width: 12, Min: 0, Conv: 1},
			{Code: "skill_level", Width: 7, Min: -1, Conv: 1},
		}, nil

	case familyReanimate:
		return []Property{
			{Code: "monster_id", Width: 12, Min: 0, Conv: 1},
			{Code: "chance", Width: 7, Min: 0, Conv: 1},
		}, nil

	case familySkillOnEvent:
		wide := base.Length >= 25
		skillWidth := 11
		conv := 1.0
		if wide {
			skillWidth = 12
			conv = 2.0
		}
		return []Property{
			{Code: "skill_level", Width: 6, Min: 0, Conv: 1},
			{Code: "skill_id", Width: skillWidth, Min: 0, Conv: 1},
			{Code: "chance", Width: 7, Min: 0, Conv: conv},
		}, nil

	case familyAddingDamage:
		primaryCode := "max_dmg"
		if base.Code == "item_maxdamage_percent" {
			primaryCode = "min_dmg"
		}
		linked, ok := cat.BaseModByID(base.ID + 1)
		if !ok {
			return nil, apperr.New(apperr.PropCodeNotFound, "adding-damage linked mod id %d not found for %s", base.ID+1, base.Code)
		}
		props := []Property{
			{Code: "value", Width: base.Length, Min: base.MinValue, Conv: base.ConversionRate},
			{Code: primaryCode, Width: linked.Length, Min: linked.MinValue, Conv: linked.ConversionRate},
		}
		if addingDamageWithDurationCodes[base.Code] {
			durationMod, ok := cat.BaseModByID(base.ID + 2)
			if !ok {
				return nil, apperr.New(apperr.PropCodeNotFound, "adding-damage duration mod id %d not found for %s", base.ID+2, base.Code)
			}
			props = append(props, Property{Code: "duration", Width: durationMod.Length, Min: durationMod.MinValue, Conv: durationMod.ConversionRate})
		}
		return props, nil

	case familyDescText:
		return []Property{
			{Code: "text_id", Width: base.Length, Min: 0, Conv: 1},
		}, nil

	case familyMysticOrb:
		return []Property{
			{Code: "mys_orb_id", Width: 8, Min: 0, Conv: 1},
			{Code: "unknown", Width: 10, Min: 0, Conv: 1},
		}, nil

	default:
		return []Property{
			{Code: "value", Width: base.Length, Min: base.MinValue, Conv: base.ConversionRate},
		}, nil
	}
}

// TotalWidth sums a property layout's bit widths.
func TotalWidth(props []Property) int {
	n := 0
	for _, p := range props {
		n += p.Width
	}
	return n
}

func propertyByCode(props []Property, code string) (Property, bool) {
	for _, p := range props {
		if p.Code == code {
			return p, true
		}
	}
	return Property{}, false
}
