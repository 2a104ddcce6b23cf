package main

import (
	"fmt"
	"path/filepath"

	"github.com/d2edit/saveedit/internal/blob"
	"github.com/d2edit/saveedit/internal/catalog"
	"github.com/d2edit/saveedit/internal/config"
	"github.com/d2edit/saveedit/internal/crypto"
)

func openCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	key, err := crypto.ParseKey(cfg.TableKey)
	if err != nil {
		return nil, fmt.Errorf("parsing table key: %w", err)
	}

	cat, err := catalog.Load(key, func(filename string) blob.Blob {
		return blob.NewFile(filepath.Join(cfg.DataDir, filename))
	})
	if err != nil {
		return nil, fmt.Errorf("loading data tables: %w", err)
	}
	return cat, nil
}
