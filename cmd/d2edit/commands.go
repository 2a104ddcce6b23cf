package main

import (
	"fmt"
	"log/slog"

	"github.com/jessevdk/go-flags"

	"github.com/d2edit/saveedit/internal/blob"
	"github.com/d2edit/saveedit/internal/catalog"
	"github.com/d2edit/saveedit/internal/character"
	"github.com/d2edit/saveedit/internal/config"
	"github.com/d2edit/saveedit/internal/item"
	"github.com/d2edit/saveedit/internal/rules"
)

func loadCharacter(cfg *config.Config, path string) (*catalog.Catalog, *character.Character, error) {
	cat, err := openCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	c, err := character.LoadBlob(cat, blob.NewFile(path))
	if err != nil {
		return nil, nil, fmt.Errorf("loading save file %s: %w", path, err)
	}
	return cat, c, nil
}

func saveCharacter(cat *catalog.Catalog, c *character.Character, path string, noBackup bool) error {
	var backup blob.Blob
	if !noBackup {
		backup = blob.NewFile(path + ".bak")
	}
	if err := character.SaveBlob(cat, c, blob.NewFile(path), backup); err != nil {
		return fmt.Errorf("saving save file %s: %w", path, err)
	}
	return nil
}

type fileArgs struct {
	File string `positional-arg-name:"file" description:"Median XL save file (.d2s)" required:"true"`
}

// --- info ---

type infoCommand struct {
	Args fileArgs `positional-args:"yes"`
	cfg  *config.Config
}

func addInfoCommand(parser *flags.Parser, cfg *config.Config) {
	cmd := &infoCommand{cfg: cfg}
	parser.AddCommand("info", "Print character and item summary", "", cmd)
}

func (c *infoCommand) Execute(args []string) error {
	_, ch, err := loadCharacter(c.cfg, c.Args.File)
	if err != nil {
		return err
	}

	fmt.Printf("version: %d\n", ch.Version())
	fmt.Printf("mercenary name id: %d\n", ch.MercenaryNameID())
	for i := 0; i < character.DifficultyCount; i++ {
		d, _ := ch.Difficulty(i)
		fmt.Printf("difficulty %d: active=%v act=%d\n", i, d.Active(), d.Act())
	}
	fmt.Printf("items: %d, mercenary items: %d\n", len(ch.Items()), len(ch.MercItems()))
	return nil
}

// --- scan ---

type scanCommand struct {
	Location int `short:"l" long:"location" description:"Location code" required:"true"`
	Storage  int `short:"s" long:"storage" description:"Storage code" required:"true"`
	StartX   int `long:"start-x" default:"0"`
	EndX     int `long:"end-x" default:"0"`
	StartY   int `long:"start-y" default:"0"`
	EndY     int `long:"end-y" default:"0"`
	Args     fileArgs `positional-args:"yes"`
	cfg      *config.Config
}

func addScanCommand(parser *flags.Parser, cfg *config.Config) {
	cmd := &scanCommand{cfg: cfg}
	parser.AddCommand("scan", "Find items by storage position", "", cmd)
}

func (c *scanCommand) Execute(args []string) error {
	_, ch, err := loadCharacter(c.cfg, c.Args.File)
	if err != nil {
		return err
	}

	found := ch.ScanItemsByPosition(item.Location(c.Location), item.Storage(c.Storage), c.StartX, c.EndX, c.StartY, c.EndY)
	fmt.Printf("%d item(s) found\n", len(found))
	for _, it := range found {
		fmt.Printf("  %s at (%d,%d)\n", it.Code(), it.StorageX(), it.StorageY())
	}
	return nil
}

// --- maximize-sockets ---

type maximizeSocketsCommand struct {
	Index    int  `short:"i" long:"index" description:"Index into the item list" required:"true"`
	NoBackup bool `short:"n" long:"no-backup"`
	Args     fileArgs `positional-args:"yes"`
	cfg      *config.Config
}

func addMaximizeSocketsCommand(parser *flags.Parser, cfg *config.Config) {
	cmd := &maximizeSocketsCommand{cfg: cfg}
	parser.AddCommand("maximize-sockets", "Socket an item to its maximum (spec scenario 2)", "", cmd)
}

func (c *maximizeSocketsCommand) Execute(args []string) error {
	cat, ch, err := loadCharacter(c.cfg, c.Args.File)
	if err != nil {
		return err
	}

	items := ch.Items()
	if c.Index < 0 || c.Index >= len(items) {
		return fmt.Errorf("item index %d out of range (have %d items)", c.Index, len(items))
	}
	if err := items[c.Index].MaximizeSockets(); err != nil {
		return err
	}

	slog.Info("maximized sockets", "index", c.Index, "code", items[c.Index].Code())
	return saveCharacter(cat, ch, c.Args.File, c.NoBackup)
}

// --- shrine-bless ---

type shrineBlessCommand struct {
	Index    int    `short:"i" long:"index" description:"Index into the item list" required:"true"`
	Shrine   string `short:"s" long:"shrine" description:"Shrine name, e.g. Eerie" required:"true"`
	NoBackup bool   `short:"n" long:"no-backup"`
	Args     fileArgs `positional-args:"yes"`
	cfg      *config.Config
}

func addShrineBlessCommand(parser *flags.Parser, cfg *config.Config) {
	cmd := &shrineBlessCommand{cfg: cfg}
	parser.AddCommand("shrine-bless", "Apply a named shrine's mod bundle (spec scenario 3)", "", cmd)
}

func (c *shrineBlessCommand) Execute(args []string) error {
	cat, ch, err := loadCharacter(c.cfg, c.Args.File)
	if err != nil {
		return err
	}

	items := ch.Items()
	if c.Index < 0 || c.Index >= len(items) {
		return fmt.Errorf("item index %d out of range (have %d items)", c.Index, len(items))
	}
	if err := items[c.Index].ShrineBless(c.Shrine); err != nil {
		return err
	}

	slog.Info("blessed item", "index", c.Index, "shrine", c.Shrine)
	return saveCharacter(cat, ch, c.Args.File, c.NoBackup)
}

// --- clear-mods ---

type clearModsCommand struct {
	Index               int  `short:"i" long:"index" required:"true"`
	RemoveDescriptions   bool `long:"remove-descriptions"`
	RemoveAffixCounts    bool `long:"remove-affix-counts"`
	RemoveCubeUpgrades   bool `long:"remove-cube-upgrades"`
	RemoveTrophyCounter  bool `long:"remove-trophy-counter"`
	RemoveWeaponCount    bool `long:"remove-weapon-count"`
	RemoveMarkers        bool `long:"remove-markers"`
	NoBackup             bool `short:"n" long:"no-backup"`
	Args                 fileArgs `positional-args:"yes"`
	cfg                  *config.Config
}

func addClearModsCommand(parser *flags.Parser, cfg *config.Config) {
	cmd := &clearModsCommand{cfg: cfg}
	parser.AddCommand("clear-mods", "Strip non-protected mods from an item", "", cmd)
}

func (c *clearModsCommand) Execute(args []string) error {
	cat, ch, err := loadCharacter(c.cfg, c.Args.File)
	if err != nil {
		return err
	}

	items := ch.Items()
	if c.Index < 0 || c.Index >= len(items) {
		return fmt.Errorf("item index %d out of range (have %d items)", c.Index, len(items))
	}

	opts := rules.ClearModsFlags{
		RemoveDescriptions:  c.RemoveDescriptions,
		RemoveAffixCounts:   c.RemoveAffixCounts,
		RemoveCubeUpgrades:  c.RemoveCubeUpgrades,
		RemoveTrophyCounter: c.RemoveTrophyCounter,
		RemoveWeaponCount:   c.RemoveWeaponCount,
		RemoveMarkers:       c.RemoveMarkers,
	}
	if err := items[c.Index].ClearMods(opts); err != nil {
		return err
	}

	slog.Info("cleared mods", "index", c.Index)
	return saveCharacter(cat, ch, c.Args.File, c.NoBackup)
}
