package character

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/d2edit/saveedit/internal/apperr"
	"github.com/d2edit/saveedit/internal/blob"
	"github.com/d2edit/saveedit/internal/catalog"
	"github.com/d2edit/saveedit/internal/item"
)

// Character is one decoded save file (spec §3).
type Character struct {
	cat catalog.DataCatalog

	header       []byte // everything before the item-list header, verbatim
	version      uint32
	mapBlob      []byte
	mercNameID   uint16
	difficulties [DifficultyCount]Difficulty

	items     []*item.Item
	mercItems []*item.Item
}

// Load decodes a save file buffer (spec §4.5).
func Load(cat catalog.DataCatalog, data []byte) (*Character, error) {
	if len(data) < offMercNameID+widMercName {
		return nil, apperr.New(apperr.InvalidItem, "save file too short")
	}
	if !bytes.Equal(data[offMagic:offMagic+widMagic], MagicBytes[:]) {
		return nil, apperr.New(apperr.InvalidItem, "bad save file magic")
	}

	c := &Character{cat: cat}
	c.version = binary.LittleEndian.Uint32(data[offVersion : offVersion+widVersion])
	c.mapBlob = append([]byte(nil), data[offMapBlob:offMapBlob+widMapBlob]...)
	c.mercNameID = binary.LittleEndian.Uint16(data[offMercNameID : offMercNameID+widMercName])
	for i := 0; i < DifficultyCount; i++ {
		c.difficulties[i] = decodeDifficulty(data[offDifficulties+i])
	}

	itemListHeaderIndex := bytes.Index(data[offMercNameID+widMercName:], ItemListHeader[:])
	if itemListHeaderIndex < 0 {
		return nil, apperr.New(apperr.InvalidItem, "item-list header not found")
	}
	itemListHeaderIndex += offMercNameID + widMercName
	c.header = append([]byte(nil), data[:itemListHeaderIndex]...)

	itemStartIndex := itemListHeaderIndex + 4
	itemListFooterIndex := bytes.Index(data[itemStartIndex:], ItemListFooter[:])
	if itemListFooterIndex < 0 {
		return nil, apperr.New(apperr.InvalidItem, "item-list footer not found")
	}
	itemListFooterIndex += itemStartIndex

	declaredCount := int(binary.LittleEndian.Uint16(data[itemListHeaderIndex+2 : itemListHeaderIndex+4]))
	items, err := parseItems(cat, data[itemStartIndex:itemListFooterIndex])
	if err != nil {
		return nil, fmt.Errorf("decoding item list: %w", err)
	}
	c.items = items
	if got := countNonSocketed(items); got != declaredCount {
		slog.Warn("item count mismatch", "declared", declaredCount, "decoded", got)
	}

	footerIndex := len(data) - len(Footer)
	if c.mercNameID != 0 {
		searchFrom := itemListFooterIndex + len(ItemListFooter)
		mercHeaderIndex := bytes.Index(data[searchFrom:], MercItemListHeader[:])
		if mercHeaderIndex < 0 {
			return nil, apperr.New(apperr.InvalidItem, "mercenary item-list header not found")
		}
		mercHeaderIndex += searchFrom
		mercStartIndex := mercHeaderIndex + 4
		mercItems, err := parseItems(cat, data[mercStartIndex:footerIndex])
		if err != nil {
			return nil, fmt.Errorf("decoding mercenary item list: %w", err)
		}
		c.mercItems = mercItems
	}

	return c, nil
}

// parseItems splits a byte range on the two-byte item header and decodes
// each resulting record.
func parseItems(cat catalog.DataCatalog, data []byte) ([]*item.Item, error) {
	var out []*item.Item
	indices := allIndices(data, item.HeaderBytes[:])
	for i, start := range indices {
		end := len(data)
		if i+1 < len(indices) {
			end = indices[i+1]
		}
		it, err := item.Decode(cat, data[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func allIndices(data, sep []byte) []int {
	var idx []int
	offset := 0
	for {
		i := bytes.Index(data[offset:], sep)
		if i < 0 {
			break
		}
		idx = append(idx, offset+i)
		offset = offset + i + len(sep)
	}
	return idx
}

func countNonSocketed(items []*item.Item) int {
	n := 0
	for _, it := range items {
		if it.IsEar() || it.Location() != item.LocationSocketed {
			n++
		}
	}
	return n
}

// Save re-encodes the character to a bit-exact, checksummed buffer (spec
// §4.5 save sequence).
func Save(cat catalog.DataCatalog, c *Character) ([]byte, error) {
	var out []byte
	out = append(out, c.header...)

	itemListBody, err := encodeItemSection(cat, c.items)
	if err != nil {
		return nil, fmt.Errorf("encoding item list: %w", err)
	}
	out = append(out, ItemListHeader[:]...)
	out = append(out, itemListBody...)
	out = append(out, ItemListFooter[:]...)

	if c.mercNameID != 0 {
		mercBody, err := encodeItemSection(cat, c.mercItems)
		if err != nil {
			return nil, fmt.Errorf("encoding mercenary item list: %w", err)
		}
		out = append(out, MercItemListHeader[:]...)
		out = append(out, mercBody...)
		// no trailing sentinel: the merc list runs to the footer (spec §9
		// open question a, resolved per original_source).
	}

	out = append(out, Footer[:]...)

	binary.LittleEndian.PutUint32(out[offFileSize:offFileSize+widFileSize], uint32(len(out)))

	for i := 0; i < DifficultyCount; i++ {
		out[offDifficulties+i] = c.difficulties[i].encode()
	}

	checksum := Checksum(out)
	binary.LittleEndian.PutUint32(out[offChecksum:offChecksum+widChecksum], checksum)

	return out, nil
}

// encodeItemSection emits the two-byte non-socketed count followed by
// every item's encoded bits, in list order (spec §4.5 step 2/3).
func encodeItemSection(cat catalog.DataCatalog, items []*item.Item) ([]byte, error) {
	var body []byte
	count := make([]byte, 2)
	binary.LittleEndian.PutUint16(count, uint16(countNonSocketed(items)))
	body = append(body, count...)
	for _, it := range items {
		bits, err := item.Encode(cat, it)
		if err != nil {
			return nil, err
		}
		body = append(body, bits...)
	}
	return body, nil
}

// Checksum computes the §4.5.1 running signed-accumulator checksum over
// data with its checksum field zeroed.
func Checksum(data []byte) uint32 {
	buf := append([]byte(nil), data...)
	for i := range buf[offChecksum : offChecksum+widChecksum] {
		buf[offChecksum+i] = 0
	}

	acc := int32(0)
	for _, b := range buf {
		carry := int32(0)
		if acc < 0 {
			carry = 1
		}
		acc = (acc << 1) + int32(b) + carry
	}
	return uint32(acc)
}

// Version returns the save format version (spec §3).
func (c *Character) Version() uint32 { return c.version }

// MapBlob returns the opaque map/seed bytes, preserved verbatim (spec §1
// Non-goals: "does not decode the character's map/seed blob").
func (c *Character) MapBlob() []byte { return c.mapBlob }

// MercenaryNameID returns the hired mercenary's name id, or 0 when none is
// hired.
func (c *Character) MercenaryNameID() uint16 { return c.mercNameID }

// Difficulty returns the difficulty state at index (0=Normal,
// 1=Nightmare, 2=Hell).
func (c *Character) Difficulty(index int) (Difficulty, error) {
	if index < 0 || index >= DifficultyCount {
		return Difficulty{}, apperr.New(apperr.InvalidParams, "difficulty index out of range: %d", index)
	}
	return c.difficulties[index], nil
}

// SetActiveDifficulty activates difficulty index at the given act,
// deactivating every other difficulty (spec §3: "at most one difficulty
// is active").
func (c *Character) SetActiveDifficulty(index, act int) error {
	if index < 0 || index >= DifficultyCount {
		return apperr.New(apperr.InvalidParams, "difficulty index out of range: %d", index)
	}
	for i := range c.difficulties {
		c.difficulties[i].SetActive(i == index)
	}
	c.difficulties[index].SetAct(act)
	return nil
}

// Items returns the character's inventory items, in list order.
func (c *Character) Items() []*item.Item { return c.items }

// MercItems returns the mercenary's carried items, in list order.
func (c *Character) MercItems() []*item.Item { return c.mercItems }

// LoadBlob reads the save file through b and decodes it.
func LoadBlob(cat catalog.DataCatalog, b blob.Blob) (*Character, error) {
	data, err := b.Read()
	if err != nil {
		return nil, fmt.Errorf("reading save file: %w", err)
	}
	return Load(cat, data)
}

// SaveBlob encodes c and writes it through b, writing backup first through
// backup when non-nil (spec §5: "the backup is written before the
// primary").
func SaveBlob(cat catalog.DataCatalog, c *Character, b blob.Blob, backup blob.Blob) error {
	if backup != nil {
		current, err := b.Read()
		if err == nil {
			if err := backup.Write(current); err != nil {
				return fmt.Errorf("writing backup: %w", err)
			}
		}
	}
	data, err := Save(cat, c)
	if err != nil {
		return err
	}
	return b.Write(data)
}
