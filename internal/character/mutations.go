package character

import (
	"time"

	"github.com/d2edit/saveedit/internal/apperr"
	"github.com/d2edit/saveedit/internal/item"
)

// InventorySize and StashSize are the fixed grid footprints for the other
// two storages add_items/duplicate_items pack into (spec §6 names
// INVENTORY_SIZE/STASH_SIZE alongside HORADRIC_CUBE_SIZE without giving
// values; original_source's own constants table was not retrieved, so
// these are this codec's own reasonable fixed sizes, exercised by the
// packing tests rather than sourced from upstream data).
var (
	InventorySize = [2]int{10, 4}
	StashSize     = [2]int{8, 6}
)

func containerSize(storage item.Storage) [2]int {
	switch storage {
	case item.StorageInventory:
		return InventorySize
	case item.StorageHoradricCube:
		return item.HoradricCubeSize
	default:
		return StashSize
	}
}

// ScanItemsByPosition returns every item in storage/location whose
// placement rectangle falls entirely within [startX,endX] x [startY,endY]
// (spec §6, scenario 1).
func (c *Character) ScanItemsByPosition(location item.Location, storage item.Storage, startX, endX, startY, endY int) []*item.Item {
	var out []*item.Item
	for _, it := range c.items {
		if it.Storage() != storage || it.Location() != location {
			continue
		}
		base, ok := it.BaseItem()
		if !ok {
			continue
		}
		x, y := it.StorageX(), it.StorageY()
		if x < startX || x+base.Width-1 > endX {
			continue
		}
		if y < startY || y+base.Height-1 > endY {
			continue
		}
		out = append(out, it)
	}
	return out
}

// AddItems places newItems into storage/location, left-to-right then
// top-to-bottom starting at (startX,0), each stamped with a fresh unique
// id (spec §6, scenario 1).
func (c *Character) AddItems(storage item.Storage, location item.Location, startX int, newItems []*item.Item) error {
	maxX, maxY := containerSize(storage)[0], containerSize(storage)[1]

	x, y := startX, 0
	now := time.Now()
	for _, it := range newItems {
		base, ok := it.BaseItem()
		if !ok {
			return apperr.New(apperr.InvalidItem, "item has unknown base type")
		}
		if err := it.ChangePosition(location, storage, x, y); err != nil {
			return err
		}
		it.UpdateID(uint32(now.Unix()))
		c.items = append(c.items, it)

		x += base.Width
		if x+base.Width-1 > maxX {
			x = 0
			y += base.Height
			if y > maxY {
				y = maxY
			}
		}
	}
	return nil
}

// DuplicateItems clones source quantity times into storage/location,
// packed the same way AddItems places new items (spec §6).
func (c *Character) DuplicateItems(source *item.Item, location item.Location, storage item.Storage, quantity, startX int) error {
	base, ok := source.BaseItem()
	if !ok {
		return apperr.New(apperr.InvalidItem, "item has unknown base type")
	}
	maxX, maxY := containerSize(storage)[0], containerSize(storage)[1]

	now := time.Now()
	x, y := startX, 0
	for i := 0; i < quantity; i++ {
		clone := source.Clone(now)
		if err := clone.ChangePosition(location, storage, x, y); err != nil {
			return err
		}
		c.items = append(c.items, clone)

		x += base.Width
		if x+base.Width-1 > maxX {
			x = 0
			y += base.Height
			if y > maxY {
				y = maxY
			}
		}
	}
	return nil
}
