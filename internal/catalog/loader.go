package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zlib"

	"github.com/d2edit/saveedit/internal/blob"
	"github.com/d2edit/saveedit/internal/crypto"
)

// The five packed file names a Load call asks open for (spec §6:
// base_items.dat, item_types.dat, item_mods.dat, item_stats.dat,
// skills.dat).
const (
	baseItemsFile = "base_items.dat"
	itemTypesFile = "item_types.dat"
	itemModsFile  = "item_mods.dat"
	itemStatsFile = "item_stats.dat"
	skillsFile    = "skills.dat"
)

// Load decrypts and decompresses the five packed tables (one blob per file
// name, built by open), logs how many records each table holds, and
// assembles a Catalog.
func Load(key crypto.Key, open func(filename string) blob.Blob) (*Catalog, error) {
	var baseItems []BaseItem
	if err := loadTable(key, open(baseItemsFile), &baseItems); err != nil {
		return nil, fmt.Errorf("loading %s: %w", baseItemsFile, err)
	}

	var itemTypesList []ItemType
	if err := loadTable(key, open(itemTypesFile), &itemTypesList); err != nil {
		return nil, fmt.Errorf("loading %s: %w", itemTypesFile, err)
	}

	var mods []BaseModifier
	if err := loadTable(key, open(itemModsFile), &mods); err != nil {
		return nil, fmt.Errorf("loading %s: %w", itemModsFile, err)
	}

	var stats []BaseStat
	if err := loadTable(key, open(itemStatsFile), &stats); err != nil {
		return nil, fmt.Errorf("loading %s: %w", itemStatsFile, err)
	}

	var skills []Skill
	if err := loadTable(key, open(skillsFile), &skills); err != nil {
		return nil, fmt.Errorf("loading %s: %w", skillsFile, err)
	}

	slog.Info("loaded data tables",
		"base_items", len(baseItems), "item_types", len(itemTypesList),
		"item_mods", len(mods), "item_stats", len(stats), "skills", len(skills))
	return New(baseItems, itemTypesList, mods, stats, skills), nil
}

// loadTable reads an envelope-wrapped, deflated JSON array from b and
// unmarshals it into dst. The packed tables are JSON objects keyed by
// code/id in the original tooling; this codec only ever needs the values,
// so Save (the inverse, used by the migration collaborator out of scope
// here) is expected to emit either a JSON array or a JSON object — both
// unmarshal into dst via decodeTableJSON.
func loadTable(key crypto.Key, b blob.Blob, dst any) error {
	token, err := b.Read()
	if err != nil {
		return fmt.Errorf("reading packed table: %w", err)
	}

	compressed, err := crypto.Open(key, string(token))
	if err != nil {
		return fmt.Errorf("opening envelope: %w", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("opening deflate stream: %w", err)
	}
	defer zr.Close()

	cleartext, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("reading deflate stream: %w", err)
	}

	return decodeTableJSON(cleartext, dst)
}

// decodeTableJSON unmarshals cleartext into dst, tolerating either a JSON
// array of records or a JSON object mapping keys to records (the original
// tooling's on-disk shape is a map; this codec only needs the values).
func decodeTableJSON(cleartext []byte, dst any) error {
	trimmed := bytes.TrimSpace(cleartext)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, dst)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("unmarshaling table object: %w", err)
	}

	// Re-marshal the map's values as an array, then unmarshal into dst as
	// if it had been an array all along. The array follows Go map
	// iteration order, which is not defined; New keys every record by its
	// code or id, so the order does not change the resulting Catalog.
	values := make([]json.RawMessage, 0, len(raw))
	for _, v := range raw {
		values = append(values, v)
	}
	arr, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("re-marshaling table values: %w", err)
	}
	return json.Unmarshal(arr, dst)
}
