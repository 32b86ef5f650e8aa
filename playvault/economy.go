package playvault

import "github.com/heroiclabs/nakama-common/runtime"

// EconomySystem applies currency changes to a vault. Callers resolve the
// session and hold its lock; a missing session is rejected before these
// methods run.
type EconomySystem struct {
	config *Config
}

func NewEconomySystem(config *Config) *EconomySystem {
	return &EconomySystem{config: config}
}

// Credit increases the balance by the sanitized amount. A raw amount that
// sanitizes to zero is rejected with no mutation.
func (e *EconomySystem) Credit(logger runtime.Logger, vault *Vault, raw any) bool {
	amount := sanitizeAmount(raw, e.config.MaxTransaction)
	if amount == 0 {
		logger.Debug("Rejected credit, amount sanitized to zero")
		return false
	}
	vault.Balance += amount
	vault.Stats.LifetimeEarned += amount
	return true
}

// Debit decreases the balance by the sanitized amount. The sanitizer caps a
// single debit at MaxTransaction regardless of balance; an unaffordable
// amount is rejected with no mutation.
func (e *EconomySystem) Debit(logger runtime.Logger, vault *Vault, raw any) bool {
	amount := sanitizeAmount(raw, e.config.MaxTransaction)
	if vault.Balance < amount {
		logger.Debug("Rejected debit of %d, balance %d", amount, vault.Balance)
		return false
	}
	vault.Balance -= amount
	return true
}
