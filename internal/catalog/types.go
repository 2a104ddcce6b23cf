// Package catalog loads the five packed data tables (base items, item
// types, item stats, item modifiers, skills) and exposes the lookups the
// modifier and item codecs need. A Catalog is built once and shared
// read-only by every Character instance that uses it.
package catalog

// ItemType is one node of the item-type equivalence graph (e.g. "weap" is
// an equiv_code ancestor of "swor").
type ItemType struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	EquivCodes []string `json:"equiv_codes"`
}

// BaseItem describes one item code's static shape: its inventory
// footprint, whether it stacks, and the type codes used to derive
// is_armor/is_weapon/is_2h_weapon/is_body_armor.
type BaseItem struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Stackable bool     `json:"stackable"`
	ClassID   *int     `json:"class_id"`
	TypeCodes []string `json:"type_codes"`
}

// BaseStat is one entry of the item_stats table: a bit width keyed by a
// numeric id, used as a decode-time fallback when a mod's own width can't
// be resolved directly (spec §7: fall back to the stat table for width).
type BaseStat struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	Length int    `json:"length"`
}

// BaseModifier is one entry of the item_mods table: the 9-bit record id,
// the bit width of its encoded property block, and the bias/scale applied
// to the raw stored value.
type BaseModifier struct {
	ID              int     `json:"id"`
	Code            string  `json:"code"`
	StatCode        string  `json:"stat_code"`
	Length          int     `json:"length"`
	MinValue        float64 `json:"min_value"`
	ConversionRate  float64 `json:"conversion_rate"`
}

// Skill is one entry of the skills table, keyed by string id in the
// packed table and used to attach a display name to skill-bearing mods.
type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
