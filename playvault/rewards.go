package playvault

import (
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
)

// daily reward cooldown, a rolling window from the last successful claim
// rather than a calendar-day reset
const dailyClaimWindowSec = 86400

// RewardSystem hands out the time-gated daily grant.
type RewardSystem struct {
	config  *Config
	economy *EconomySystem
}

func NewRewardSystem(config *Config, economy *EconomySystem) *RewardSystem {
	return &RewardSystem{config: config, economy: economy}
}

// ClaimDaily credits the configured reward when at least a full window has
// elapsed since the last successful claim. A claim at T permits the next at
// T+86400s regardless of day boundaries; a never-claimed vault (zero
// timestamp) always passes the gate.
func (r *RewardSystem) ClaimDaily(logger runtime.Logger, vault *Vault) bool {
	now := time.Now().Unix()
	if now-vault.LastDailyClaim < dailyClaimWindowSec {
		logger.Debug("Rejected daily claim, window not elapsed")
		return false
	}
	if !r.economy.Credit(logger, vault, r.config.DailyReward) {
		return false
	}
	vault.LastDailyClaim = now
	vault.Stats.DailyClaims++
	return true
}
