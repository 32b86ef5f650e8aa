package playvault

import "github.com/heroiclabs/nakama-common/runtime"

// InventorySystem tracks item ownership in a vault. Tools are uniquely owned,
// consumables stack as repeated inventory entries.
type InventorySystem struct {
	catalog *Catalog
}

func NewInventorySystem(catalog *Catalog) *InventorySystem {
	return &InventorySystem{catalog: catalog}
}

// Add appends an item to the inventory. Unknown items are rejected, and a
// tool the vault already owns is never added twice.
func (i *InventorySystem) Add(logger runtime.Logger, vault *Vault, itemID string) bool {
	item, ok := i.catalog.Item(itemID)
	if !ok {
		logger.Debug("Rejected inventory add, unknown item %s", itemID)
		return false
	}
	if item.Category == ItemCategoryTool && i.Owns(vault, itemID) {
		logger.Debug("Rejected inventory add, tool %s already owned", itemID)
		return false
	}
	vault.Inventory = append(vault.Inventory, itemID)
	return true
}

// Owns reports whether the item appears in the inventory.
func (i *InventorySystem) Owns(vault *Vault, itemID string) bool {
	for _, owned := range vault.Inventory {
		if owned == itemID {
			return true
		}
	}
	return false
}

// ConsumeOne removes the first occurrence of a stackable consumable. Tools
// and unowned items are rejected with no mutation.
func (i *InventorySystem) ConsumeOne(logger runtime.Logger, vault *Vault, itemID string) bool {
	item, ok := i.catalog.Item(itemID)
	if !ok || item.Category != ItemCategoryConsumable {
		logger.Debug("Rejected consume, %s is not a known consumable", itemID)
		return false
	}
	for idx, owned := range vault.Inventory {
		if owned == itemID {
			vault.Inventory = append(vault.Inventory[:idx], vault.Inventory[idx+1:]...)
			vault.Stats.ItemsConsumed++
			return true
		}
	}
	logger.Debug("Rejected consume, %s not owned", itemID)
	return false
}

// OwnedTools returns the distinct tool-category items in inventory order,
// used to rebuild an actor's physical tools on session start.
func (i *InventorySystem) OwnedTools(vault *Vault) []string {
	seen := make(map[string]bool, len(vault.Inventory))
	tools := make([]string, 0, len(vault.Inventory))
	for _, itemID := range vault.Inventory {
		if seen[itemID] {
			continue
		}
		seen[itemID] = true
		if item, ok := i.catalog.Item(itemID); ok && item.Category == ItemCategoryTool {
			tools = append(tools, itemID)
		}
	}
	return tools
}
