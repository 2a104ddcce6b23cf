package item

import (
	"github.com/d2edit/saveedit/internal/apperr"
	"github.com/d2edit/saveedit/internal/bitio"
	"github.com/d2edit/saveedit/internal/catalog"
	"github.com/d2edit/saveedit/internal/modifier"
)

// Item is one decoded item record (spec §3). Mutations edit it.bits
// directly for the common header and rarity block; the modifier lists
// live in mods/rwMods, kept in decode/insertion order so that re-encoding
// reproduces byte-identical records for an unmutated item.
type Item struct {
	cat catalog.DataCatalog
	bits *bitio.Cursor

	mods   []*modifier.Modifier
	rwMods []*modifier.Modifier
}

// Decode parses one item record (spec §4.4: "requires a record beginning
// with the two-byte item header 0x4A,0x4D").
func Decode(cat catalog.DataCatalog, data []byte) (*Item, error) {
	if len(data) < 2 || data[0] != HeaderBytes[0] || data[1] != HeaderBytes[1] {
		return nil, apperr.New(apperr.InvalidItem, "item record missing JM header")
	}

	it := &Item{cat: cat, bits: bitio.NewCursor(data)}

	if it.IsEar() || it.IsSimple() {
		return it, nil
	}

	if _, ok := it.catalogBase(); !ok {
		return nil, apperr.New(apperr.InvalidItemType, "unknown base item code %q", it.Code())
	}

	mods, rwMods, err := decodeMods(cat, it.bits, it.startModIndex(), it.IsRuneword())
	if err != nil {
		return nil, err
	}
	it.mods = mods
	it.rwMods = rwMods

	return it, nil
}

// decodeMods walks the terminated modifier list(s) starting at offset,
// returning the ordinary mods and (when runeword) the runeword mods.
func decodeMods(cat catalog.DataCatalog, c *bitio.Cursor, offset int, runeword bool) ([]*modifier.Modifier, []*modifier.Modifier, error) {
	var mods, rwMods []*modifier.Modifier

	pos := offset
	inRW := false
	for pos+modifier.SentinelIDWidth <= c.Len() {
		id := int(c.ReadUint(pos, modifier.SentinelIDWidth))
		if id == modifier.SentinelID {
			pos += modifier.SentinelIDWidth
			if runeword && !inRW {
				inRW = true
				continue
			}
			break
		}

		res := modifier.Decode(cat, c, pos+modifier.SentinelIDWidth, id, inRW)
		if res.Halt {
			break
		}
		pos += modifier.SentinelIDWidth + res.Width
		if res.Mod != nil {
			if inRW {
				rwMods = append(rwMods, res.Mod)
			} else {
				mods = append(mods, res.Mod)
			}
		}
	}

	return mods, rwMods, nil
}

// Encode re-serializes the item to its bit-exact byte form (spec §4.4).
func Encode(cat catalog.DataCatalog, it *Item) ([]byte, error) {
	if it.IsEar() || it.IsSimple() {
		return it.bits.Bytes(), nil
	}

	out := bitio.NewZeroCursor(0)
	out.AppendBits(it.bits.Slice(0, it.startModIndex()))

	if err := appendModList(cat, out, it.mods); err != nil {
		return nil, err
	}
	if it.IsRuneword() {
		if err := appendModList(cat, out, it.rwMods); err != nil {
			return nil, err
		}
	}

	return out.Bytes(), nil
}

func appendModList(cat catalog.DataCatalog, out *bitio.Cursor, mods []*modifier.Modifier) error {
	for _, m := range mods {
		bits, err := modifier.Encode(cat, m)
		if err != nil {
			return err
		}
		out.AppendBits(bits)
	}
	out.AppendBits(sentinelBits())
	return nil
}

func sentinelBits() []byte {
	bits := make([]byte, modifier.SentinelIDWidth)
	for i := range bits {
		bits[i] = 1
	}
	return bits
}

// catalogBase resolves this item's BaseItem, or false for ear items (which
// have no code/base item).
func (it *Item) catalogBase() (catalog.BaseItem, bool) {
	if it.IsEar() {
		return catalog.BaseItem{}, false
	}
	return it.cat.BaseItem(it.Code())
}

// BaseItem exposes the item's resolved catalog entry, or false for ear
// items or an unrecognized code.
func (it *Item) BaseItem() (catalog.BaseItem, bool) { return it.catalogBase() }

func hasRelatedType(cat catalog.DataCatalog, b catalog.BaseItem, target string) bool {
	for _, code := range b.TypeCodes {
		if cat.ItemTypeContains(code, target) {
			return true
		}
	}
	return false
}

// Mods returns the item's ordinary (non-runeword) modifiers, in list
// order.
func (it *Item) Mods() []*modifier.Modifier { return it.mods }

// RWMods returns the item's runeword modifiers, in list order.
func (it *Item) RWMods() []*modifier.Modifier { return it.rwMods }

func findModIndex(mods []*modifier.Modifier, logicalID string) int {
	for i, m := range mods {
		if m.LogicalID() == logicalID {
			return i
		}
	}
	return -1
}
