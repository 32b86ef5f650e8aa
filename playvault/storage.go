package playvault

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
)

// SaveStatus is the typed outcome of a durable write attempt sequence.
type SaveStatus int

const (
	SaveStatusOK SaveStatus = iota
	SaveStatusDropped
)

// SaveOutcome reports how a save ended and how many attempts it took. A
// dropped save is not surfaced to the requester; the observer hook is the
// only place it becomes visible.
type SaveOutcome struct {
	Status   SaveStatus
	Attempts int
	Err      error
}

// SaveObserver consumes save outcomes for logging and metrics.
type SaveObserver interface {
	SaveDone(logger runtime.Logger, actorID string, outcome SaveOutcome)
}

// LoggingSaveObserver keeps process-wide counters and logs exhausted retry
// sequences, which would otherwise be silent drops.
type LoggingSaveObserver struct {
	saved   atomic.Uint64
	dropped atomic.Uint64
}

func NewLoggingSaveObserver() *LoggingSaveObserver {
	return &LoggingSaveObserver{}
}

func (o *LoggingSaveObserver) SaveDone(logger runtime.Logger, actorID string, outcome SaveOutcome) {
	if outcome.Status == SaveStatusOK {
		o.saved.Add(1)
		return
	}
	o.dropped.Add(1)
	logger.Warn("Dropped vault save for %s after %d attempts: %v", actorID, outcome.Attempts, outcome.Err)
}

func (o *LoggingSaveObserver) Saved() uint64 {
	return o.saved.Load()
}

func (o *LoggingSaveObserver) Dropped() uint64 {
	return o.dropped.Load()
}

// VaultStore adapts the host's durable storage to whole-record vault
// load/save. Records are written as single JSON blobs under the configured
// collection, keyed by actor id.
type VaultStore struct {
	collection string
	maxSlots   int
	retries    int
	backoff    time.Duration
	observer   SaveObserver
}

func NewVaultStore(config *Config, observer SaveObserver) *VaultStore {
	return &VaultStore{
		collection: config.StorageCollection,
		maxSlots:   config.MaxLoadoutSlots,
		retries:    config.SaveRetries,
		backoff:    time.Duration(config.SaveBackoffMs) * time.Millisecond,
		observer:   observer,
	}
}

// Load reads the record for an actor. A transport failure, a missing object
// and a corrupt blob all degrade to a fresh default record; the caller never
// sees an error.
func (s *VaultStore) Load(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID string) *Vault {
	objects, err := nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: s.collection,
		Key:        actorID,
		UserID:     actorID,
	}})
	if err != nil {
		logger.Warn("Vault read failed for %s, using defaults: %v", actorID, err)
		return s.fresh()
	}
	if len(objects) == 0 {
		return s.fresh()
	}

	vault := &Vault{}
	if err := json.Unmarshal([]byte(objects[0].Value), vault); err != nil {
		logger.Warn("Corrupt vault record for %s, using defaults: %v", actorID, err)
		return s.fresh()
	}
	vault.normalize(s.maxSlots)
	return vault
}

// Save writes the whole record, retrying with a fixed backoff and giving up
// after the configured attempt budget. The outcome is reported to the
// observer either way. Callers must hand in a snapshot that no other
// goroutine mutates.
func (s *VaultStore) Save(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID string, vault *Vault) SaveOutcome {
	value, err := json.Marshal(vault)
	if err != nil {
		outcome := SaveOutcome{Status: SaveStatusDropped, Err: err}
		s.observer.SaveDone(logger, actorID, outcome)
		return outcome
	}

	write := []*runtime.StorageWrite{{
		Collection:      s.collection,
		Key:             actorID,
		UserID:          actorID,
		Value:           string(value),
		PermissionRead:  1,
		PermissionWrite: 0,
	}}

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		if _, lastErr = nk.StorageWrite(ctx, write); lastErr == nil {
			outcome := SaveOutcome{Status: SaveStatusOK, Attempts: attempt}
			s.observer.SaveDone(logger, actorID, outcome)
			return outcome
		}
		if attempt < s.retries {
			time.Sleep(s.backoff)
		}
	}

	outcome := SaveOutcome{Status: SaveStatusDropped, Attempts: s.retries, Err: lastErr}
	s.observer.SaveDone(logger, actorID, outcome)
	return outcome
}

func (s *VaultStore) fresh() *Vault {
	vault := newVault()
	vault.normalize(s.maxSlots)
	return vault
}
