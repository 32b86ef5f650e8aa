package playvault

// VaultStats are per-account counters. Written by the engines, never read back
// by any decision logic.
type VaultStats struct {
	Purchases      int64 `json:"purchases,omitempty"`
	LifetimeEarned int64 `json:"lifetime_earned,omitempty"`
	DailyClaims    int64 `json:"daily_claims,omitempty"`
	ItemsConsumed  int64 `json:"items_consumed,omitempty"`
}

// Vault is the full persistent record for one account: the single source of
// truth while the account's session is active. It is always stored and loaded
// as one whole JSON blob.
type Vault struct {
	Balance   int64    `json:"balance"`
	Inventory []string `json:"inventory"`
	// Loadouts maps slot number (1-based) to an ordered item id sequence.
	// Every slot up to the configured maximum exists once a session has been
	// initialized; unused slots hold empty sequences.
	Loadouts map[int][]string `json:"loadouts"`
	// LastDailyClaim is the unix time of the last successful daily reward
	// grant, 0 when never claimed.
	LastDailyClaim int64      `json:"last_daily_claim,omitempty"`
	Stats          VaultStats `json:"stats,omitempty"`
}

func newVault() *Vault {
	return &Vault{
		Inventory: make([]string, 0),
		Loadouts:  make(map[int][]string),
	}
}

// normalize repairs structure after a load: nil slices and maps become empty,
// every loadout slot up to maxSlots exists, out-of-range slots are dropped and
// a negative balance is clamped to zero. Idempotent.
func (v *Vault) normalize(maxSlots int) {
	if v.Balance < 0 {
		v.Balance = 0
	}
	if v.Inventory == nil {
		v.Inventory = make([]string, 0)
	}
	if v.Loadouts == nil {
		v.Loadouts = make(map[int][]string, maxSlots)
	}
	for slot := range v.Loadouts {
		if slot < 1 || slot > maxSlots {
			delete(v.Loadouts, slot)
		}
	}
	for slot := 1; slot <= maxSlots; slot++ {
		if v.Loadouts[slot] == nil {
			v.Loadouts[slot] = make([]string, 0)
		}
	}
}

// clone deep-copies the record so a save can run on a consistent snapshot
// while the live record keeps mutating.
func (v *Vault) clone() *Vault {
	out := &Vault{
		Balance:        v.Balance,
		Inventory:      make([]string, len(v.Inventory)),
		Loadouts:       make(map[int][]string, len(v.Loadouts)),
		LastDailyClaim: v.LastDailyClaim,
		Stats:          v.Stats,
	}
	copy(out.Inventory, v.Inventory)
	for slot, items := range v.Loadouts {
		seq := make([]string, len(items))
		copy(seq, items)
		out.Loadouts[slot] = seq
	}
	return out
}
