package character_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d2edit/saveedit/internal/bitio"
	"github.com/d2edit/saveedit/internal/catalog"
	"github.com/d2edit/saveedit/internal/character"
	"github.com/d2edit/saveedit/internal/item"
)

func testCatalog() catalog.DataCatalog {
	return catalog.New(
		[]catalog.BaseItem{
			{Code: "wswd", Name: "Short Sword", Width: 1, Height: 3, TypeCodes: []string{"swor"}},
		},
		[]catalog.ItemType{
			{Code: "swor", Name: "Sword", EquivCodes: []string{"weap"}},
			{Code: "weap", Name: "Weapon"},
		},
		nil, nil, nil,
	)
}

// simpleItemBits builds a minimal simple-item record: header, storage
// fields, and a code field (simple items still carry a base-item code,
// just none of the rarity/durability/modifier machinery).
func simpleItemBits(location item.Location, storage item.Storage, x, y int) []byte {
	c := bitio.NewZeroCursor(112)
	c.WriteUint(0, 16, 0x4D4A) // "JM" LSB-first byte order handled by Bytes()
	c.WriteUint(37, 1, 1)      // is_simple
	c.WriteUint(58, 3, uint64(location))
	c.WriteUint(65, 4, uint64(x))
	c.WriteUint(69, 4, uint64(y))
	c.WriteUint(73, 3, uint64(storage))
	for i, ch := range []byte("wswd") {
		c.WriteUint(76+i*8, 8, uint64(ch))
	}
	return c.Bytes()
}

// buildSaveFile assembles a minimal but structurally valid save buffer
// around the given already-encoded item bytes.
func buildSaveFile(itemsData [][]byte) []byte {
	var out []byte
	out = append(out, character.MagicBytes[:]...)
	out = append(out, 0, 0, 0, 0) // version
	out = append(out, 0, 0, 0, 0) // file size placeholder
	out = append(out, 0, 0, 0, 0) // checksum placeholder
	for len(out) < 40 {
		out = append(out, 0)
	}
	out = append(out, 0, 0, 0) // difficulties, all inactive act 0
	out = append(out, 0, 0, 0, 0) // map blob
	out = append(out, 0, 0)       // mercenary name id: none

	out = append(out, character.ItemListHeader[:]...)
	count := uint16(len(itemsData))
	out = append(out, byte(count), byte(count>>8))
	for _, data := range itemsData {
		out = append(out, data...)
	}
	out = append(out, character.ItemListFooter[:]...)
	out = append(out, character.Footer[:]...)
	return out
}

func TestLoadSaveRoundTrip(t *testing.T) {
	cat := testCatalog()
	raw := buildSaveFile([][]byte{simpleItemBits(item.LocationStored, item.StorageHoradricCube, 0, 0)})

	encoded := raw // checksum/size are patched by Save, not required for Load
	c, err := character.Load(cat, encoded)
	require.NoError(t, err)
	require.Len(t, c.Items(), 1)

	out, err := character.Save(cat, c)
	require.NoError(t, err)

	reloaded, err := character.Load(cat, out)
	require.NoError(t, err)
	require.Len(t, reloaded.Items(), 1)
	require.Equal(t, character.Checksum(out), checksumField(out))
}

func checksumField(data []byte) uint32 {
	return uint32(data[12]) | uint32(data[13])<<8 | uint32(data[14])<<16 | uint32(data[15])<<24
}

func TestChecksumRecomputeAfterActChange(t *testing.T) {
	cat := testCatalog()
	raw := buildSaveFile([][]byte{simpleItemBits(item.LocationStored, item.StorageHoradricCube, 0, 0)})

	c, err := character.Load(cat, raw)
	require.NoError(t, err)

	require.NoError(t, c.SetActiveDifficulty(2, 4))

	out, err := character.Save(cat, c)
	require.NoError(t, err)

	reloaded, err := character.Load(cat, out)
	require.NoError(t, err)

	hell, err := reloaded.Difficulty(2)
	require.NoError(t, err)
	require.True(t, hell.Active())
	require.Equal(t, 4, hell.Act())

	normal, err := reloaded.Difficulty(0)
	require.NoError(t, err)
	require.False(t, normal.Active())

	require.Equal(t, character.Checksum(out), checksumField(out))
}

func TestScanItemsByPositionFindsHoradricCubePlacement(t *testing.T) {
	cat := testCatalog()
	raw := buildSaveFile([][]byte{simpleItemBits(item.LocationStored, item.StorageHoradricCube, 0, 0)})

	c, err := character.Load(cat, raw)
	require.NoError(t, err)

	found := c.ScanItemsByPosition(item.LocationStored, item.StorageHoradricCube, 0, 1, 0, 2)
	require.Len(t, found, 1)
}

func TestChecksumZeroesFieldBeforeAccumulating(t *testing.T) {
	raw := buildSaveFile(nil)
	withChecksum := append([]byte(nil), raw...)
	withChecksum[12], withChecksum[13], withChecksum[14], withChecksum[15] = 0xAA, 0xBB, 0xCC, 0xDD

	require.Equal(t, character.Checksum(raw), character.Checksum(withChecksum))
}
