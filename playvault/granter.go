package playvault

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	notificationCodeGrantInstance = 1101
	notificationCodeApplyEffect   = 1102
)

// InstanceGranter asks the session host to materialize item state for an
// actor: a physical tool instance, or a consumable's effect. Both calls are
// best-effort; the authoritative vault mutation has already committed by the
// time either is invoked and a false return is never rolled back or retried.
type InstanceGranter interface {
	GrantInstance(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID, itemID string) bool
	ApplyEffect(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID, itemID string, item *CatalogItem) bool
}

// NotificationGranter delivers grant requests as persistent Nakama
// notifications the game client consumes to spawn tools and apply effects.
type NotificationGranter struct{}

func NewNotificationGranter() *NotificationGranter {
	return &NotificationGranter{}
}

func (g *NotificationGranter) GrantInstance(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID, itemID string) bool {
	content := map[string]interface{}{
		"item_id":     itemID,
		"instance_id": uuid.New().String(),
		"granted_at":  time.Now().Unix(),
	}
	return g.send(ctx, logger, nk, actorID, "Grant tool", content, notificationCodeGrantInstance)
}

func (g *NotificationGranter) ApplyEffect(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID, itemID string, item *CatalogItem) bool {
	content := map[string]interface{}{
		"item_id":     itemID,
		"instance_id": uuid.New().String(),
	}
	if item.HealAmount > 0 {
		content["heal_amount"] = item.HealAmount
	}
	if item.BuffMultiplier > 0 {
		content["buff_multiplier"] = item.BuffMultiplier
		content["buff_duration_sec"] = item.BuffDurationSec
	}
	return g.send(ctx, logger, nk, actorID, "Apply effect", content, notificationCodeApplyEffect)
}

func (g *NotificationGranter) send(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID, subject string, content map[string]interface{}, code int) bool {
	notifications := []*runtime.NotificationSend{{
		UserID:     actorID,
		Subject:    subject,
		Content:    content,
		Code:       code,
		Persistent: false,
	}}
	if err := nk.NotificationsSend(ctx, notifications); err != nil {
		logger.Warn("Failed to send grant notification to %s: %v", actorID, err)
		return false
	}
	return true
}
