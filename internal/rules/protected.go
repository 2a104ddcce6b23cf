// Package rules holds the declarative mod-set recipes ItemCodec mutations
// consume: the clear_mods protected-family code lists, and the
// shrine-bless/upgrade rule tables (spec §2 "ShrineBless / Upgrade /
// Corrupt rule tables", §4.4.2).
package rules

// Marker mod codes stamped by one-shot transformations, carried over
// verbatim from the upstream mod-code constants.
const (
	MarkerShrineBlessed = "blessings_counter"
	MarkerUpgraded      = "item_upgraded"
	MarkerCorrupted     = "item_corrupted"
)

// AffixCountCodes are the two "number of prefixes/suffixes rolled" marker
// mods, protected from clear_mods by default.
var AffixCountCodes = []string{"is_suffix", "is_prefix"}

// DescriptionCodes carry display text rather than a gameplay effect.
var DescriptionCodes = []string{
	"desc_orange", "desc_less_top", "desc_top", "desc_bottom", "ied_display",
}

// CubeUpgradeCodes count how many times an item has passed through a
// Horadric Cube upgrade recipe.
var CubeUpgradeCodes = []string{
	"cube_upgrade_1", "cube_upgrade_2", "cube_upgrade_3", "cube_upgrade_4",
	"cube_upgrade_5", "cube_upgrade_6", "cube_upgrade_7", "cube_upgrade_8",
	"cube_upgrade_9", "cube_upgrade_10", "cube_upgrade_11", "cube_upgrade_12",
}

// TrophyCounterCode tallies monster trophies bound to the item.
const TrophyCounterCode = "trophy_counter"

// WeaponCountCode tallies mystic-orb stamps on a weapon. Not named in the
// upstream constant tables (no "weapon count" constant exists there); the
// mystic-orb counter is the only per-weapon counting mod in the source,
// so it fills this protected family.
const WeaponCountCode = "item_mocount"

// MarkerCodes are the one-shot transformation markers, always protected.
var MarkerCodes = []string{MarkerShrineBlessed, MarkerUpgraded, MarkerCorrupted}

// ClearModsFlags opts a normally-protected family IN to removal by
// clear_mods (spec §4.4.2): false (the default) protects the family.
type ClearModsFlags struct {
	RemoveDescriptions  bool
	RemoveAffixCounts   bool
	RemoveCubeUpgrades  bool
	RemoveTrophyCounter bool
	RemoveWeaponCount   bool
	RemoveMarkers       bool
}

// Protects reports whether code belongs to a family that clear_mods must
// leave untouched given flags.
func Protects(code string, flags ClearModsFlags) bool {
	if !flags.RemoveDescriptions && contains(DescriptionCodes, code) {
		return true
	}
	if !flags.RemoveAffixCounts && contains(AffixCountCodes, code) {
		return true
	}
	if !flags.RemoveCubeUpgrades && contains(CubeUpgradeCodes, code) {
		return true
	}
	if !flags.RemoveTrophyCounter && code == TrophyCounterCode {
		return true
	}
	if !flags.RemoveWeaponCount && code == WeaponCountCode {
		return true
	}
	if !flags.RemoveMarkers && contains(MarkerCodes, code) {
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
