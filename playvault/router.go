package playvault

import (
	"context"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Inbound action names. The transport is fire-and-forget: no result reaches
// the requester, but Dispatch returns the engine outcome for logging and
// tests.
const (
	ActionBuyItem      = "BuyItem"
	ActionSaveLoadout  = "SaveLoadout"
	ActionEquipLoadout = "EquipLoadout"
	ActionClaimDaily   = "ClaimDaily"
	ActionPlayerMoney  = "PlayerMoney"
	ActionUseItem      = "UseItem"
)

type saveLoadoutPayload struct {
	Slot  int      `json:"slot"`
	Tools []string `json:"tools"`
}

// Dispatch routes one inbound (actor, action, payload) tuple to the matching
// engine operation, holding the account's session lock for the duration so
// each operation is atomic with respect to other requests for the same
// account. Unrecognized actions and undecodable payloads are dropped.
func (s *Service) Dispatch(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID, action string, payload []byte) bool {
	session, ok := s.sessions.Lookup(actorID)
	if !ok {
		logger.Debug("Dropped %s from %s, no active session", action, actorID)
		return false
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	vault := session.vault

	switch action {
	case ActionBuyItem:
		var itemID string
		if err := json.Unmarshal(payload, &itemID); err != nil {
			logger.Debug("Dropped %s from %s: %v", action, actorID, err)
			return false
		}
		return s.shop.Purchase(ctx, logger, nk, actorID, vault, itemID)

	case ActionSaveLoadout:
		var req saveLoadoutPayload
		if err := json.Unmarshal(payload, &req); err != nil {
			logger.Debug("Dropped %s from %s: %v", action, actorID, err)
			return false
		}
		return s.loadouts.Save(logger, vault, req.Slot, req.Tools)

	case ActionEquipLoadout:
		var slot int
		if err := json.Unmarshal(payload, &slot); err != nil {
			logger.Debug("Dropped %s from %s: %v", action, actorID, err)
			return false
		}
		return s.loadouts.Equip(ctx, logger, nk, actorID, vault, slot)

	case ActionClaimDaily:
		return s.rewards.ClaimDaily(logger, vault)

	case ActionPlayerMoney:
		var amount any
		if err := json.Unmarshal(payload, &amount); err != nil {
			logger.Debug("Dropped %s from %s: %v", action, actorID, err)
			return false
		}
		return s.economy.Credit(logger, vault, amount)

	case ActionUseItem:
		var itemID string
		if err := json.Unmarshal(payload, &itemID); err != nil {
			logger.Debug("Dropped %s from %s: %v", action, actorID, err)
			return false
		}
		item, known := s.catalog.Item(itemID)
		if !known || !s.inventory.ConsumeOne(logger, vault, itemID) {
			return false
		}
		s.granter.ApplyEffect(ctx, logger, nk, actorID, itemID, item)
		return true

	default:
		logger.Debug("Ignored unrecognized action %s from %s", action, actorID)
		return false
	}
}
