package item

import (
	"sort"
	"time"

	"github.com/d2edit/saveedit/internal/apperr"
	"github.com/d2edit/saveedit/internal/bitio"
	"github.com/d2edit/saveedit/internal/modifier"
	"github.com/d2edit/saveedit/internal/rules"
)

// ChangePosition overwrites the four fixed-width placement fields (spec
// §4.4.2).
func (it *Item) ChangePosition(location Location, storage Storage, x, y int) error {
	if !validLocations[location] {
		return apperr.New(apperr.UnsupportedLocation, "unsupported location %d", location)
	}
	if !validStorages[storage] {
		return apperr.New(apperr.UnsupportedStorage, "unsupported storage %d", storage)
	}
	it.bits.WriteUint(offStorage, widStorage, uint64(storage))
	it.bits.WriteUint(offLocation, widLocation, uint64(location))
	it.bits.WriteUint(offStorageX, widStorageX, uint64(x))
	it.bits.WriteUint(offStorageY, widStorageY, uint64(y))
	return nil
}

// UpdateID overwrites the unique id. A no-op on ear/simple items, which
// have none (spec §4.4.2).
func (it *Item) UpdateID(value uint32) {
	if it.IsEar() || it.IsSimple() {
		return
	}
	it.bits.WriteUint(offUniqueID, widUniqueID, uint64(value))
}

// MaximizeSockets marks the item socketed and sets total_sockets to
// min(width*height, 6) (spec §4.4.2 scenario 2).
func (it *Item) MaximizeSockets() error {
	if it.IsEar() || it.IsSimple() {
		return apperr.New(apperr.InvalidItem, "cannot socket ear or simple items")
	}
	base, ok := it.catalogBase()
	if !ok {
		return apperr.New(apperr.InvalidItem, "unknown base item")
	}

	wasSocketed := it.IsSocketed()
	sockets := base.Width * base.Height
	if sockets > 6 {
		sockets = 6
	}

	totalSocketIdx := it.totalSocketIndex()
	it.bits.WriteUint(offIsSocketed, 1, 1)
	if !wasSocketed {
		it.bits.InsertUint(totalSocketIdx, widTotalSockets, uint64(sockets))
	} else {
		it.bits.WriteUint(totalSocketIdx, widTotalSockets, uint64(sockets))
	}
	return nil
}

// ChangeLevel overwrites the 7-bit item level.
func (it *Item) ChangeLevel(value int) {
	if it.IsEar() || it.IsSimple() {
		return
	}
	it.bits.WriteUint(offLevel, widLevel, uint64(value))
}

// ChangeCode rewrites the 4-character item type code, space-padded.
func (it *Item) ChangeCode(value string) error {
	if it.IsEar() {
		return apperr.New(apperr.UnsupportedAction, "cannot change code of ear items")
	}
	if len(value) > 4 {
		return apperr.New(apperr.InvalidParams, "max code length is 4, got %d", len(value))
	}
	padded := value
	for len(padded) < 4 {
		padded += " "
	}
	for i := 0; i < 4; i++ {
		it.bits.WriteUint(offCode+i*8, 8, uint64(padded[i]))
	}
	return nil
}

// ChangeMaxDurability overwrites the biased max-durability field.
func (it *Item) ChangeMaxDurability(value int) error {
	if !it.hasDurability() {
		return apperr.New(apperr.UnsupportedAction, "item does not have durability")
	}
	it.bits.WriteUint(it.maxDurabilityIndex(), widMaxDurability, uint64(value-biasMaxDurability))
	return nil
}

// SetEthereal writes the single ethereal bit.
func (it *Item) SetEthereal(b bool) {
	v := uint64(0)
	if b {
		v = 1
	}
	it.bits.WriteUint(offIsEthereal, 1, v)
}

// RarityOptions carries the fields needed to build a new rarity-detail
// block (spec §4.4.2 change_rarity).
type RarityOptions struct {
	PrefixID  int
	SuffixID  int
	QualityID int
}

// ChangeRarity deletes the current rarity-detail block and inserts a new
// one sized for the target rarity, then writes the rarity field (spec
// §4.4.2). The unique and set blocks share the same on-disk width, but
// set additionally carries a 5-bit set_mod_bit_field right after the
// rarity-detail block; moving onto set inserts a fresh zeroed copy of it.
func (it *Item) ChangeRarity(target Rarity, opts RarityOptions) error {
	if it.IsEar() || it.IsSimple() {
		return apperr.New(apperr.UnsupportedAction, "cannot change rarity of simple or ear item")
	}

	wasSet := it.Rarity() == RaritySet

	detailIndex := it.rarityDetailsIndex()
	detailLength := it.rarityDetailsLength()

	var newBits []byte
	switch target {
	case RarityUnique, RaritySet:
		newBits = uintBitsLSB(uint64(opts.QualityID), widUniqueQualityID)
	case RarityMagic:
		newBits = append(uintBitsLSB(uint64(opts.PrefixID), widMagicPrefixID),
			uintBitsLSB(uint64(opts.SuffixID), widMagicSuffixID)...)
	case RarityRare, RarityCrafted:
		newBits = append(uintBitsLSB(uint64(opts.PrefixID), widCraftedPrefixID),
			uintBitsLSB(uint64(opts.SuffixID), widCraftedSuffixID)...)
		newBits = append(newBits, make([]byte, affixSlotCount)...) // six cleared "hasAffix" flags
	default:
		return apperr.New(apperr.UnsupportedRarity, "cannot change to rarity %d", target)
	}

	it.bits.DeleteBits(detailIndex, detailLength)
	it.bits.InsertBits(detailIndex, newBits)
	it.bits.WriteUint(offRarity, widRarity, uint64(target))

	if target == RaritySet && !wasSet {
		it.bits.InsertBits(it.setModBitFieldIndex(), make([]byte, widSetModBitField))
	}

	return nil
}

func uintBitsLSB(v uint64, width int) []byte {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = byte((v >> uint(i)) & 1)
	}
	return out
}

// AddMod constructs a modifier from code/values and upserts it by logical
// id (spec §4.4.2: "add_mod may overwrite by design").
func (it *Item) AddMod(code string, values map[string]float64, runeword bool) (*modifier.Modifier, error) {
	if it.IsEar() || it.IsSimple() {
		return nil, apperr.New(apperr.UnsupportedAction, "cannot add mod to simple or ear item")
	}
	base, ok := it.cat.BaseModByCode(code)
	if !ok {
		return nil, apperr.New(apperr.UnsupportedModCode, "unsupported mod code %q", code)
	}
	if runeword && !it.IsRuneword() {
		return nil, apperr.New(apperr.InvalidParams, "item is not runeword")
	}

	m := &modifier.Modifier{Base: base, Runeword: runeword, Values: values}
	list := &it.mods
	if runeword {
		list = &it.rwMods
	}
	if idx := findModIndex(*list, m.LogicalID()); idx >= 0 {
		(*list)[idx] = m
	} else {
		*list = append(*list, m)
	}
	return m, nil
}

// EditMod re-encodes the modifier with the given logical id using values,
// re-keying it (appending at the end) if the logical id changes (spec
// §4.4.2).
func (it *Item) EditMod(logicalID string, values map[string]float64) (*modifier.Modifier, error) {
	if it.IsEar() || it.IsSimple() {
		return nil, apperr.New(apperr.UnsupportedAction, "cannot edit mod on simple or ear item")
	}

	list, idx := it.findModList(logicalID)
	if idx < 0 {
		return nil, apperr.New(apperr.ModNotFoundInItem, "mod not found in item: %s", logicalID)
	}

	existing := (*list)[idx]
	edited := &modifier.Modifier{Base: existing.Base, Runeword: existing.Runeword, Values: values}
	if edited.LogicalID() == logicalID {
		(*list)[idx] = edited
	} else {
		*list = append((*list)[:idx], (*list)[idx+1:]...)
		*list = append(*list, edited)
	}
	return edited, nil
}

// DeleteMod removes the modifier with the given logical id.
func (it *Item) DeleteMod(logicalID string) error {
	list, idx := it.findModList(logicalID)
	if idx < 0 {
		return apperr.New(apperr.ModNotFoundInItem, "mod not found in item: %s", logicalID)
	}
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	return nil
}

func (it *Item) findModList(logicalID string) (*[]*modifier.Modifier, int) {
	if idx := findModIndex(it.mods, logicalID); idx >= 0 {
		return &it.mods, idx
	}
	if idx := findModIndex(it.rwMods, logicalID); idx >= 0 {
		return &it.rwMods, idx
	}
	return nil, -1
}

// ClearMods removes all ordinary mods except those in a protected family,
// each family opt-in to removal via flags (spec §4.4.2).
func (it *Item) ClearMods(flags rules.ClearModsFlags) error {
	if it.IsEar() {
		return apperr.New(apperr.UnsupportedAction, "cannot clear mods for ear items")
	}
	if it.IsSimple() {
		return apperr.New(apperr.UnsupportedAction, "cannot clear mods for simple items")
	}
	if it.IsRuneword() {
		return apperr.New(apperr.UnsupportedAction, "cannot clear mods for runeword items")
	}

	kept := make([]*modifier.Modifier, 0, len(it.mods))
	for _, m := range it.mods {
		if rules.Protects(m.Base.Code, flags) {
			kept = append(kept, m)
		}
	}
	it.mods = kept
	return nil
}

// MaximizeAffixes sets both affix-count mods ("is_prefix"/"is_suffix") to
// 3, adding them if absent.
func (it *Item) MaximizeAffixes() error {
	for _, code := range rules.AffixCountCodes {
		if _, err := it.upsertAffixCountMod(code); err != nil {
			return err
		}
	}
	return nil
}

func (it *Item) upsertAffixCountMod(code string) (*modifier.Modifier, error) {
	for _, m := range it.mods {
		if m.Base.Code == code {
			return it.EditMod(m.LogicalID(), map[string]float64{"value": 3})
		}
	}
	return it.AddMod(code, map[string]float64{"value": 3}, false)
}

// ShrineBless applies a named shrine's mod bundle once (spec §4.4.2
// scenario 3).
func (it *Item) ShrineBless(name string) error {
	if it.IsEar() || it.IsSimple() {
		return apperr.New(apperr.UnsupportedAction, "cannot bless simple or ear item")
	}
	if it.Rarity() != RarityRare && it.Rarity() != RarityCrafted {
		return apperr.New(apperr.InvalidRarity, "shrine blessing requires rare or crafted rarity")
	}
	if it.hasMarker(rules.MarkerShrineBlessed) {
		return apperr.New(apperr.AlreadyBlessed, "item already blessed")
	}

	recipe, ok := rules.Shrine(name)
	if !ok {
		return apperr.New(apperr.UnsupportedShrine, "unsupported shrine %q", name)
	}

	category := rules.ShrineMinor
	if it.isBodyArmor() || it.is2HWeapon() {
		category = rules.ShrineGreater
	}

	if err := it.mergeModBundle(recipe.Bundle(category)); err != nil {
		return err
	}
	_, err := it.AddMod(rules.MarkerShrineBlessed, map[string]float64{"value": 1}, false)
	return err
}

// Upgrade applies the formula selected by the item's category once (spec
// §4.4.2).
func (it *Item) Upgrade(category rules.UpgradeCategory) error {
	if it.IsEar() || it.IsSimple() {
		return apperr.New(apperr.UnsupportedAction, "cannot upgrade simple or ear item")
	}
	if it.hasMarker(rules.MarkerUpgraded) {
		return apperr.New(apperr.AlreadyUpgraded, "item already upgraded")
	}

	formula, ok := rules.Upgrade(category)
	if !ok {
		return apperr.New(apperr.InvalidItemType, "unsupported upgrade category %q", category)
	}
	if !formula.AllowsRarity(it.Rarity().String()) {
		return apperr.New(apperr.InvalidRarity, "upgrade formula %q does not allow rarity %s", category, it.Rarity())
	}

	if err := it.mergeModBundle(formula.Mods); err != nil {
		return err
	}
	_, err := it.AddMod(rules.MarkerUpgraded, map[string]float64{"value": 1}, false)
	return err
}

// Corrupt additively merges each supplied mod onto the item (new mods are
// inserted) and stamps the corruption marker once (spec §4.4.2).
func (it *Item) Corrupt(entries map[string]map[string]float64) error {
	if it.IsEar() || it.IsSimple() {
		return apperr.New(apperr.UnsupportedAction, "cannot corrupt simple or ear item")
	}
	if it.Rarity() == RarityNormal {
		return apperr.New(apperr.InvalidRarity, "cannot corrupt a normal-rarity item")
	}
	if it.hasMarker(rules.MarkerCorrupted) {
		return apperr.New(apperr.AlreadyCorrupted, "item already corrupted")
	}

	if err := it.mergeModBundle(entries); err != nil {
		return err
	}
	_, err := it.AddMod(rules.MarkerCorrupted, map[string]float64{"value": 1}, false)
	return err
}

// mergeModBundle additively merges bundle (modCode -> propCode -> delta)
// onto the item: existing named properties are summed, mods absent
// entirely are inserted (spec §4.4.2 "Additive merging").
func (it *Item) mergeModBundle(bundle map[string]map[string]float64) error {
	codes := make([]string, 0, len(bundle))
	for code := range bundle {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		deltas := bundle[code]
		if existing := it.findModByCode(code); existing != nil {
			merged := make(map[string]float64, len(existing.Values)+len(deltas))
			for k, v := range existing.Values {
				merged[k] = v
			}
			for k, delta := range deltas {
				merged[k] = merged[k] + delta
			}
			if _, err := it.EditMod(existing.LogicalID(), merged); err != nil {
				return err
			}
			continue
		}
		if _, err := it.AddMod(code, deltas, false); err != nil {
			return err
		}
	}
	return nil
}

func (it *Item) findModByCode(code string) *modifier.Modifier {
	for _, m := range it.mods {
		if m.Base.Code == code {
			return m
		}
	}
	return nil
}

func (it *Item) hasMarker(code string) bool {
	return it.findModByCode(code) != nil
}

func (it *Item) isBodyArmor() bool {
	b, ok := it.catalogBase()
	return ok && hasRelatedType(it.cat, b, "tors")
}

func (it *Item) is2HWeapon() bool {
	b, ok := it.catalogBase()
	return ok && hasRelatedType(it.cat, b, "2han")
}

// Clone deep-copies the item and assigns a fresh unique id seeded from
// wall-clock time (spec §4.4.2).
func (it *Item) Clone(now time.Time) *Item {
	clone := &Item{
		cat:  it.cat,
		bits: bitio.NewCursor(it.bits.Bytes()),
	}
	clone.mods = make([]*modifier.Modifier, len(it.mods))
	for i, m := range it.mods {
		clone.mods[i] = cloneModifier(m)
	}
	clone.rwMods = make([]*modifier.Modifier, len(it.rwMods))
	for i, m := range it.rwMods {
		clone.rwMods[i] = cloneModifier(m)
	}
	clone.UpdateID(uint32(now.Unix()))
	return clone
}

func cloneModifier(m *modifier.Modifier) *modifier.Modifier {
	values := make(map[string]float64, len(m.Values))
	for k, v := range m.Values {
		values[k] = v
	}
	return &modifier.Modifier{Base: m.Base, Runeword: m.Runeword, Values: values}
}
