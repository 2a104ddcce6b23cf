package modifier

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/d2edit/saveedit/internal/bitio"
	"github.com/d2edit/saveedit/internal/catalog"
)

// SentinelIDWidth is the bit width of a modifier record's leading
// base-mod id field (spec §3: Modifier list records begin with a 9-bit
// id), and of the sentinel that terminates a modifier list.
const SentinelIDWidth = 9

const idWidth = SentinelIDWidth

// SentinelID is the nine-bit terminator value that ends a modifier list
// (nine 1 bits, read little-endian: spec §3/§4.4).
const SentinelID = 0x1FF

// Modifier is one decoded item modifier record: a BaseModifier plus its
// decoded property values.
type Modifier struct {
	Base     catalog.BaseModifier
	Runeword bool
	Values   map[string]float64
}

// DecodeResult is the outcome of decoding one modifier record from an
// item's bit stream.
type DecodeResult struct {
	// Mod is the decoded modifier, or nil when the id was unknown but a
	// stat-table width fallback let the walk skip past it (spec §7).
	Mod *Modifier
	// Width is the number of property bits consumed, not counting the
	// leading id field.
	Width int
	// Halt reports that neither the mod table nor the stat table could
	// account for this id; the caller must stop decoding further
	// modifiers on this item (spec §7: "the modifier walk halts and
	// subsequent mods on the item are lost").
	Halt bool
}

// Decode decodes one modifier record whose id field (already read by the
// caller) is id, with its property block starting at offset.
func Decode(cat catalog.DataCatalog, c *bitio.Cursor, offset, id int, runeword bool) DecodeResult {
	base, ok := cat.BaseModByID(id)
	if !ok {
		stat, ok := cat.BaseStatByID(id)
		if !ok {
			return DecodeResult{Halt: true}
		}
		slog.Warn("unknown modifier id, skipping by stat width", "id", id, "width", stat.Length)
		return DecodeResult{Width: stat.Length}
	}

	props, err := Properties(cat, base)
	if err != nil {
		return DecodeResult{Halt: true}
	}

	values := make(map[string]float64, len(props))
	pos := offset
	for _, p := range props {
		raw := c.ReadUint(pos, p.Width)
		values[p.Code] = (float64(raw) + p.Min) * p.Conv
		pos += p.Width
	}

	return DecodeResult{
		Mod:   &Modifier{Base: base, Runeword: runeword, Values: values},
		Width: pos - offset,
	}
}

// Encode emits the modifier's full record (the 9-bit base-mod id followed
// by its encoded property block), one byte per bit, LSB-first.
func Encode(cat catalog.DataCatalog, m *Modifier) ([]byte, error) {
	props, err := Properties(cat, m.Base)
	if err != nil {
		return nil, err
	}

	bits := make([]byte, 0, idWidth+TotalWidth(props))
	bits = append(bits, uintBitsLSB(uint64(m.Base.ID), idWidth)...)

	for _, p := range props {
		raw := encodeProperty(p, m.Values)
		bits = append(bits, uintBitsLSB(raw, p.Width)...)
	}
	return bits, nil
}

// encodeProperty computes the stored raw value for one property. A
// property absent from values defaults to "all bits set" (spec §4.3),
// matching the original tooling's Modifier.update() when a factor's value
// isn't supplied.
func encodeProperty(p Property, values map[string]float64) uint64 {
	maxVal := uint64(1)<<uint(p.Width) - 1
	desired, ok := values[p.Code]
	if !ok {
		return maxVal
	}

	converted := desired/p.Conv - p.Min
	raw := int64(math.Ceil(converted))
	if raw < 0 {
		raw = 0
	}
	if uint64(raw) > maxVal {
		return maxVal
	}
	return uint64(raw)
}

func uintBitsLSB(v uint64, width int) []byte {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = byte((v >> uint(i)) & 1)
	}
	return out
}

// LogicalID returns the map key used to enforce "no duplicate modifiers"
// within one item (spec §3): the base code, optionally decorated with the
// discriminating property (skill/class/monster/text/mystic-orb id), plus
// an |rw suffix when the modifier belongs to the runeword list.
func (m *Modifier) LogicalID() string {
	id := m.Base.Code
	if discriminator, ok := m.discriminatorCode(); ok {
		if v, ok := m.Values[discriminator]; ok {
			id += fmt.Sprintf(":%d", int64(math.Round(v)))
		}
	}
	if m.Runeword {
		id += "|rw"
	}
	return id
}

func (m *Modifier) discriminatorCode() (string, bool) {
	switch familyOf(m.Base.Code) {
	case familyClassSkill:
		return "class_id", true
	case familyOskill, familySkillOnEvent:
		return "skill_id", true
	case familyReanimate:
		return "monster_id", true
	case familyDescText:
		return "text_id", true
	case familyMysticOrb:
		return "mys_orb_id", true
	default:
		return "", false
	}
}
