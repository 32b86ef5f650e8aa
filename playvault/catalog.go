package playvault

// ItemCategory separates uniquely-owned tools from stackable consumables.
type ItemCategory string

const (
	ItemCategoryTool       ItemCategory = "tool"
	ItemCategoryConsumable ItemCategory = "consumable"
)

// CatalogItem is one purchasable item definition. Category-specific attributes
// (heal amount, buff shape) are only meaningful for consumables.
type CatalogItem struct {
	Price      int64        `json:"price,omitempty"`
	Category   ItemCategory `json:"category,omitempty"`
	Equippable bool         `json:"equippable,omitempty"`

	HealAmount      int64   `json:"heal_amount,omitempty"`
	BuffMultiplier  float64 `json:"buff_multiplier,omitempty"`
	BuffDurationSec int64   `json:"buff_duration_sec,omitempty"`
}

// Catalog is the static item table built once from config and read-only at
// runtime.
type Catalog struct {
	items map[string]*CatalogItem
}

func NewCatalog(items map[string]*CatalogItem) *Catalog {
	c := &Catalog{items: make(map[string]*CatalogItem, len(items))}
	for id, item := range items {
		if item == nil || id == "" {
			continue
		}
		// Copy so normalization never rewrites the caller's config.
		entry := *item
		if entry.Price < 0 {
			entry.Price = 0
		}
		if entry.Category != ItemCategoryTool && entry.Category != ItemCategoryConsumable {
			entry.Category = ItemCategoryTool
		}
		c.items[id] = &entry
	}
	return c
}

// Item returns the definition for an item id, if the catalog carries it.
func (c *Catalog) Item(id string) (*CatalogItem, bool) {
	item, ok := c.items[id]
	return item, ok
}

// IsEquippable reports whether an item is allow-listed for loadout slots.
func (c *Catalog) IsEquippable(id string) bool {
	item, ok := c.items[id]
	return ok && item.Equippable
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of the full table for listing; mutating the result
// never touches the catalog.
func (c *Catalog) Items() map[string]*CatalogItem {
	out := make(map[string]*CatalogItem, len(c.items))
	for id, item := range c.items {
		entry := *item
		out[id] = &entry
	}
	return out
}
