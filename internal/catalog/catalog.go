package catalog

import "github.com/d2edit/saveedit/internal/apperr"

// DataCatalog is the read-only lookup surface the modifier and item codecs
// depend on. Callers inject a concrete implementation (Catalog, or a test
// double) rather than reaching for a package-level global (spec §9: "treat
// it as an immutable collaborator injected into codecs, not a process-wide
// singleton, to keep tests hermetic").
type DataCatalog interface {
	BaseItem(code string) (BaseItem, bool)
	ItemType(code string) (ItemType, bool)
	BaseModByID(id int) (BaseModifier, bool)
	BaseModByCode(code string) (BaseModifier, bool)
	BaseStatByID(id int) (BaseStat, bool)
	Skill(id string) (Skill, bool)
	ItemTypeContains(code, target string) bool
}

// Catalog is the concrete, in-memory DataCatalog built from the five
// packed tables.
type Catalog struct {
	baseItems  map[string]BaseItem
	itemTypes  map[string]ItemType
	modsByID   map[int]BaseModifier
	modsByCode map[string]BaseModifier
	statsByID  map[int]BaseStat
	skills     map[string]Skill
}

// New builds a Catalog from already-decoded table contents. Use Load to
// build one from packed files on disk.
func New(baseItems []BaseItem, itemTypes []ItemType, mods []BaseModifier, stats []BaseStat, skills []Skill) *Catalog {
	c := &Catalog{
		baseItems:  make(map[string]BaseItem, len(baseItems)),
		itemTypes:  make(map[string]ItemType, len(itemTypes)),
		modsByID:   make(map[int]BaseModifier, len(mods)),
		modsByCode: make(map[string]BaseModifier, len(mods)),
		statsByID:  make(map[int]BaseStat, len(stats)),
		skills:     make(map[string]Skill, len(skills)),
	}
	for _, it := range baseItems {
		c.baseItems[it.Code] = it
	}
	for _, it := range itemTypes {
		c.itemTypes[it.Code] = it
	}
	for _, m := range mods {
		c.modsByID[m.ID] = m
		c.modsByCode[m.Code] = m
	}
	for _, s := range stats {
		c.statsByID[s.ID] = s
	}
	for _, s := range skills {
		c.skills[s.ID] = s
	}
	return c
}

func (c *Catalog) BaseItem(code string) (BaseItem, bool) {
	v, ok := c.baseItems[code]
	return v, ok
}

func (c *Catalog) ItemType(code string) (ItemType, bool) {
	v, ok := c.itemTypes[code]
	return v, ok
}

func (c *Catalog) BaseModByID(id int) (BaseModifier, bool) {
	v, ok := c.modsByID[id]
	return v, ok
}

func (c *Catalog) BaseModByCode(code string) (BaseModifier, bool) {
	v, ok := c.modsByCode[code]
	return v, ok
}

func (c *Catalog) BaseStatByID(id int) (BaseStat, bool) {
	v, ok := c.statsByID[id]
	return v, ok
}

func (c *Catalog) Skill(id string) (Skill, bool) {
	v, ok := c.skills[id]
	return v, ok
}

// ItemTypeContains reports whether target is code itself or reachable from
// code by following equiv_codes transitively. The visited set guards
// against a cycle in the type graph; the original table-driven data has
// none, but nothing about the format guarantees it, so the walk must not
// hang on malformed tables (a SUPPLEMENTED FEATURE beyond the original
// recursive walk, which has no such guard).
func (c *Catalog) ItemTypeContains(code, target string) bool {
	visited := make(map[string]bool)
	return c.containsFrom(code, target, visited)
}

func (c *Catalog) containsFrom(code, target string, visited map[string]bool) bool {
	if code == target {
		return true
	}
	if visited[code] {
		return false
	}
	visited[code] = true

	it, ok := c.itemTypes[code]
	if !ok {
		return false
	}
	for _, equiv := range it.EquivCodes {
		if c.containsFrom(equiv, target, visited) {
			return true
		}
	}
	return false
}

// IsArmor reports whether a BaseItem's type codes transitively include
// "armo" (spec §3: BaseItem derived flag is_armor).
func (c *Catalog) IsArmor(b BaseItem) bool { return c.hasRelatedType(b, "armo") }

// IsWeapon reports whether a BaseItem's type codes transitively include
// "weap".
func (c *Catalog) IsWeapon(b BaseItem) bool { return c.hasRelatedType(b, "weap") }

// Is2HWeapon reports whether a BaseItem's type codes transitively include
// "2han".
func (c *Catalog) Is2HWeapon(b BaseItem) bool { return c.hasRelatedType(b, "2han") }

// IsBodyArmor reports whether a BaseItem's type codes transitively include
// "tors" (torso armor).
func (c *Catalog) IsBodyArmor(b BaseItem) bool { return c.hasRelatedType(b, "tors") }

func (c *Catalog) hasRelatedType(b BaseItem, target string) bool {
	for _, code := range b.TypeCodes {
		if c.ItemTypeContains(code, target) {
			return true
		}
	}
	return false
}

// MustBaseItem looks up a base item, returning an InvalidItemType error
// when the code is unknown.
func (c *Catalog) MustBaseItem(code string) (BaseItem, error) {
	b, ok := c.BaseItem(code)
	if !ok {
		return BaseItem{}, apperr.New(apperr.InvalidItemType, "unknown base item code %q", code)
	}
	return b, nil
}
