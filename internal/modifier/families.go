package modifier

// family identifies which property layout a BaseModifier's code maps to
// (spec §4.3). The code lists below are carried over verbatim from the
// original tooling's per-mod-code constant tables.
type family int

const (
	familyDefault family = iota
	familyClassSkill
	familyOskill
	familyReanimate
	familySkillOnEvent
	familyAddingDamage
	familyDescText
	familyMysticOrb
)

const (
	classSkillCode = "item_addclassskills"
	oskillCode     = "item_nonclassskill"
	reanimateCode  = "item_reanimate"
	mysticOrbCode  = "item_mocount"
)

// addingDamageCodes are the base modifiers whose layout is the primary
// property plus a linked max_dmg (or min_dmg) factor at base.id+1.
var addingDamageCodes = map[string]bool{
	"item_maxdamage_percent": true,
	"firemindam":             true,
	"lightmindam":            true,
	"magicmindam":            true,
	"coldmindam":             true,
	"poisonmindam":           true,
}

// addingDamageWithDurationCodes additionally append a duration factor at
// base.id+2.
var addingDamageWithDurationCodes = map[string]bool{
	"coldmindam":   true,
	"poisonmindam": true,
}

// skillOnEventCodes trigger a skill cast on some in-game event.
var skillOnEventCodes = map[string]bool{
	"item_skillonpkill":         true,
	"item_skillonanykill":       true,
	"item_skillongetmissilehit": true,
	"item_skillongetmeleed":     true,
	"item_skillondamaged":       true,
	"item_warpskillonattack":    true,
	"item_skillonanydeath":      true,
	"item_skillongethit":        true,
	"item_skillonlevelup":       true,
	"item_skillonhit":           true,
	"item_skillondeath":         true,
	"item_skillonkill":          true,
	"item_skillonattack":        true,
}

// descTextCodes carry a display-text reference instead of a numeric game
// effect.
var descTextCodes = map[string]bool{
	"desc_orange":   true,
	"desc_less_top": true,
	"desc_top":      true,
	"desc_bottom":   true,
	"ied_display":   true,
}

func familyOf(code string) family {
	switch {
	case code == classSkillCode:
		return familyClassSkill
	case code == oskillCode:
		return familyOskill
	case code == reanimateCode:
		return familyReanimate
	case code == mysticOrbCode:
		return familyMysticOrb
	case skillOnEventCodes[code]:
		return familySkillOnEvent
	case addingDamageCodes[code]:
		return familyAddingDamage
	case descTextCodes[code]:
		return familyDescText
	default:
		return familyDefault
	}
}
