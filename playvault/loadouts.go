package playvault

import (
	"context"

	"github.com/heroiclabs/nakama-common/runtime"
)

// LoadoutSystem validates and stores per-slot equipment presets.
type LoadoutSystem struct {
	config    *Config
	catalog   *Catalog
	inventory *InventorySystem
	granter   InstanceGranter
}

func NewLoadoutSystem(config *Config, catalog *Catalog, inventory *InventorySystem, granter InstanceGranter) *LoadoutSystem {
	return &LoadoutSystem{
		config:    config,
		catalog:   catalog,
		inventory: inventory,
		granter:   granter,
	}
}

// Save replaces the slot's sequence with the requested items filtered down to
// the ones that are both allow-listed as equippable and currently owned.
// Order is preserved and disallowed entries drop silently; a valid slot
// always succeeds no matter how much was filtered out.
func (l *LoadoutSystem) Save(logger runtime.Logger, vault *Vault, slot int, requested []string) bool {
	if slot < 1 || slot > l.config.MaxLoadoutSlots {
		logger.Debug("Rejected loadout save, slot %d out of range", slot)
		return false
	}
	filtered := make([]string, 0, len(requested))
	for _, itemID := range requested {
		if !l.catalog.IsEquippable(itemID) {
			continue
		}
		if !l.inventory.Owns(vault, itemID) {
			continue
		}
		filtered = append(filtered, itemID)
	}
	vault.Loadouts[slot] = filtered
	return true
}

// Equip requests a physical instance for every item in the stored sequence,
// in order. It fails only when the slot has no stored sequence at all;
// an empty sequence and individual grant failures still count as success.
func (l *LoadoutSystem) Equip(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID string, vault *Vault, slot int) bool {
	sequence, ok := vault.Loadouts[slot]
	if !ok {
		logger.Debug("Rejected equip by %s, slot %d has no stored loadout", actorID, slot)
		return false
	}
	for _, itemID := range sequence {
		l.granter.GrantInstance(ctx, logger, nk, actorID, itemID)
	}
	return true
}
