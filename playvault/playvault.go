package playvault

import (
	"context"
	"encoding/json"
	"io"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// Service is the authoritative state mediator for per-account vaults: every
// mutation flows through its engines against the session registry, and the
// store bridges the registry to durable storage on session end and autosave.
type Service struct {
	config    *Config
	catalog   *Catalog
	economy   *EconomySystem
	inventory *InventorySystem
	shop      *ShopSystem
	loadouts  *LoadoutSystem
	rewards   *RewardSystem
	sessions  *SessionRegistry
	store     *VaultStore
	granter   InstanceGranter
	observer  SaveObserver

	// captured at Init for the session event hooks and the autosave sweep,
	// which the host invokes without a module handle
	nk     runtime.NakamaModule
	logger runtime.Logger

	autosave *AutosaveScheduler
}

// NewService wires the engines over a parsed config. The granter and observer
// are injectable so tests can capture side effects; nil selects the
// production implementations.
func NewService(config *Config, granter InstanceGranter, observer SaveObserver) *Service {
	config.applyDefaults()
	if granter == nil {
		granter = NewNotificationGranter()
	}
	if observer == nil {
		observer = NewLoggingSaveObserver()
	}

	catalog := NewCatalog(config.Items)
	economy := NewEconomySystem(config)
	inventory := NewInventorySystem(catalog)

	s := &Service{
		config:    config,
		catalog:   catalog,
		economy:   economy,
		inventory: inventory,
		shop:      NewShopSystem(catalog, economy, inventory, granter),
		loadouts:  NewLoadoutSystem(config, catalog, inventory, granter),
		rewards:   NewRewardSystem(config, economy),
		sessions:  NewSessionRegistry(),
		store:     NewVaultStore(config, observer),
		granter:   granter,
		observer:  observer,
	}
	s.autosave = NewAutosaveScheduler(s)
	return s
}

// Init loads the service config, registers the RPC endpoints and session
// event hooks with the host, and starts the autosave scheduler.
func Init(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, initializer runtime.Initializer, configFile string) (*Service, error) {
	config, err := loadConfig(logger, nk, configFile)
	if err != nil {
		return nil, err
	}

	s := NewService(config, nil, nil)
	s.nk = nk
	s.logger = logger

	if err := initializer.RegisterRpc("vault_dispatch", rpcVaultDispatch(s)); err != nil {
		return nil, err
	}
	if err := initializer.RegisterRpc("vault_get", rpcVaultGet(s)); err != nil {
		return nil, err
	}
	if err := initializer.RegisterRpc("vault_catalog", rpcVaultCatalog(s)); err != nil {
		return nil, err
	}

	if err := initializer.RegisterEventSessionStart(func(ctx context.Context, logger runtime.Logger, evt *api.Event) {
		actorID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if !ok || actorID == "" {
			logger.Error("Session start event without user id")
			return
		}
		s.BeginSession(ctx, logger, s.nk, actorID)
	}); err != nil {
		return nil, err
	}
	if err := initializer.RegisterEventSessionEnd(func(ctx context.Context, logger runtime.Logger, evt *api.Event) {
		actorID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if !ok || actorID == "" {
			logger.Error("Session end event without user id")
			return
		}
		s.EndSession(ctx, logger, s.nk, actorID)
	}); err != nil {
		return nil, err
	}

	s.autosave.Start()
	logger.Info("Playvault service initialized, %d catalog items, autosave every %ds", s.catalog.Len(), config.AutosaveIntervalSec)
	return s, nil
}

func loadConfig(logger runtime.Logger, nk runtime.NakamaModule, configFile string) (*Config, error) {
	file, err := nk.ReadFile(configFile)
	if err != nil {
		logger.Error("Failed to read config file %s: %v", configFile, err)
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read config file contents: %v", err)
		return nil, err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		logger.Error("Failed to parse config file %s: %v", configFile, err)
		return nil, err
	}
	return config, nil
}

// BeginSession makes the account's record resident: load-or-default into the
// registry, guarantee all loadout slots, grant the starting tool to an empty
// inventory, then re-issue physical instances for every owned tool so the
// actor rejoins with their tools materialized. A start for an already-active
// account reuses the live record rather than reloading over unflushed
// mutations.
func (s *Service) BeginSession(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID string) *VaultSession {
	session, resident := s.sessions.Lookup(actorID)
	if !resident {
		session = s.sessions.Install(actorID, s.store.Load(ctx, logger, nk, actorID))
	}

	session.mu.Lock()
	vault := session.vault
	if len(vault.Inventory) == 0 {
		s.inventory.Add(logger, vault, s.config.StartingTool)
	}
	tools := s.inventory.OwnedTools(vault)
	session.mu.Unlock()

	// Already-validated ownership; grants are best-effort and run outside the
	// session lock.
	for _, itemID := range tools {
		s.granter.GrantInstance(ctx, logger, nk, actorID, itemID)
	}
	return session
}

// EndSession flushes the record and evicts it. Eviction is unconditional:
// even a save dropped after all retries discards the in-memory state.
func (s *Service) EndSession(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID string) {
	session, ok := s.sessions.Lookup(actorID)
	if !ok {
		return
	}
	s.saveSession(ctx, logger, nk, actorID, session)
	s.sessions.Remove(actorID)
}

// saveSession flushes one account. The per-account save lock is acquired
// before the snapshot so concurrent session-end and autosave flushes are
// fully ordered: each write carries a snapshot no older than any write it
// follows, and retry sequences never interleave. Nothing holds the mutation
// lock while acquiring the save lock, so the ordering is deadlock-free.
func (s *Service) saveSession(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID string, session *VaultSession) SaveOutcome {
	session.saveMu.Lock()
	defer session.saveMu.Unlock()
	snapshot := session.snapshot()
	return s.store.Save(ctx, logger, nk, actorID, snapshot)
}

// Close stops the autosave scheduler. The service itself holds no other
// resources.
func (s *Service) Close() {
	s.autosave.Stop()
}
