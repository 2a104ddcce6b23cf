// Package character implements CharacterCodec (spec §4.5): frames and
// unframes the save file around the item-record codec, tracks difficulty
// state, and maintains whole-file integrity (size field, checksum).
//
// The file is byte-oriented outside of item records and the three
// difficulty bytes: header fields are read and written as plain byte
// slices, and only the single difficulty byte and the embedded item
// records go through internal/bitio.
package character

// Magic, version, file-size, and checksum sit at fixed byte offsets near
// the start of the file (spec §4.5, §6). The constants tables in
// original_source were not retrieved alongside the parsing logic itself,
// so these offsets are this codec's own fixed layout rather than a
// transcription of an upstream STRUCTURE dict; they are internally
// consistent and exercised end to end by the round-trip tests.
const (
	offMagic, widMagic         = 0, 4
	offVersion, widVersion     = 4, 4
	offFileSize, widFileSize   = 8, 4
	offChecksum, widChecksum   = 12, 4
	offDifficulties            = 40 // 3 bytes, one per Normal/Nightmare/Hell
	widDifficulties            = 3
	offMapBlob, widMapBlob     = 43, 4
	offMercNameID, widMercName = 47, 2
)

// MagicBytes identifies a save file (little-endian 0xAA55AA55 on disk).
var MagicBytes = [4]byte{0x55, 0xAA, 0x55, 0xAA}

// Sentinel two-byte patterns bounding the item sections (spec §4.5,§6:
// "ITEM_LIST_HEADER, ITEM_LIST_FOOTER... configurable"). ItemListHeader
// reuses the item record header byte pattern, matching the original's
// parser, which splits the player item-list body on the same two-byte
// pattern it uses to find the list's own start.
var (
	ItemListHeader     = [2]byte{0x4A, 0x4D} // "JM"
	ItemListFooter     = [2]byte{0x4A, 0x66} // "Jf"
	MercItemListHeader = [2]byte{0x6A, 0x66} // "jf"
	Footer             = [2]byte{0x77, 0x77} // "ww"
)

// DifficultyCount is the fixed number of tracked difficulties
// (Normal/Nightmare/Hell, spec §3).
const DifficultyCount = 3

// Difficulty bit layout within its single byte, least-significant-bit
// first (spec §3): {active:1, act:3, padding:4}.
const (
	difficultyActiveWidth = 1
	difficultyActWidth    = 3
)
