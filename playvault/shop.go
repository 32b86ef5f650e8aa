package playvault

import (
	"context"

	"github.com/heroiclabs/nakama-common/runtime"
)

// ShopSystem composes the catalog, economy and inventory into an
// atomic-per-request purchase.
type ShopSystem struct {
	catalog   *Catalog
	economy   *EconomySystem
	inventory *InventorySystem
	granter   InstanceGranter
}

func NewShopSystem(catalog *Catalog, economy *EconomySystem, inventory *InventorySystem, granter InstanceGranter) *ShopSystem {
	return &ShopSystem{
		catalog:   catalog,
		economy:   economy,
		inventory: inventory,
		granter:   granter,
	}
}

// Purchase checks preconditions in order and short-circuits on the first
// failure, so a rejected request leaves no partial effects: the item must be
// in the catalog, affordable at its real price, and not an already-owned
// tool. On success the debit, inventory append and counters commit together;
// the physical grant for tools runs after commit and its failure is final
// economics-wise (the vault is the source of truth, the physical instance is
// best-effort).
func (s *ShopSystem) Purchase(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID string, vault *Vault, itemID string) bool {
	item, ok := s.catalog.Item(itemID)
	if !ok {
		logger.Debug("Rejected purchase by %s, unknown item %s", actorID, itemID)
		return false
	}
	if vault.Balance < item.Price {
		logger.Debug("Rejected purchase of %s by %s, balance %d below price %d", itemID, actorID, vault.Balance, item.Price)
		return false
	}
	if item.Category == ItemCategoryTool && s.inventory.Owns(vault, itemID) {
		logger.Debug("Rejected purchase of %s by %s, tool already owned", itemID, actorID)
		return false
	}

	if !s.economy.Debit(logger, vault, item.Price) {
		return false
	}
	if !s.inventory.Add(logger, vault, itemID) {
		// Preconditions above make this unreachable; refund to keep the
		// balance invariant honest if the catalog ever disagrees with itself.
		vault.Balance += item.Price
		return false
	}
	vault.Stats.Purchases++

	if item.Category == ItemCategoryTool {
		s.granter.GrantInstance(ctx, logger, nk, actorID, itemID)
	}
	return true
}
