package playvault

const (
	defaultMaxTransaction      = 100_000
	defaultDailyReward         = 100
	defaultMaxLoadoutSlots     = 3
	defaultSaveRetries         = 3
	defaultSaveBackoffMs       = 250
	defaultAutosaveIntervalSec = 60
	defaultStorageCollection   = "player_vaults"
	defaultStartingTool        = "Sword"
)

// Config drives the whole vault service: catalog contents plus the
// economy/persistence tunables. Loaded once at init from a JSON file and
// immutable afterwards.
type Config struct {
	// MaxTransaction caps every single credited or debited amount.
	MaxTransaction int64 `json:"max_transaction,omitempty"`
	// DailyReward is the amount credited by a successful daily claim.
	DailyReward int64 `json:"daily_reward,omitempty"`
	// MaxLoadoutSlots is the number of loadout presets each vault carries.
	MaxLoadoutSlots int `json:"max_loadout_slots,omitempty"`

	SaveRetries         int `json:"save_retries,omitempty"`
	SaveBackoffMs       int `json:"save_backoff_ms,omitempty"`
	AutosaveIntervalSec int `json:"autosave_interval_sec,omitempty"`

	// StorageCollection is the namespace label vault records are stored under.
	StorageCollection string `json:"storage_collection,omitempty"`

	// StartingTool is granted to a vault whose inventory is empty after load.
	StartingTool string `json:"starting_tool,omitempty"`

	Items map[string]*CatalogItem `json:"items,omitempty"`
}

func (c *Config) applyDefaults() {
	if c.MaxTransaction <= 0 {
		c.MaxTransaction = defaultMaxTransaction
	}
	if c.DailyReward <= 0 {
		c.DailyReward = defaultDailyReward
	}
	if c.MaxLoadoutSlots <= 0 {
		c.MaxLoadoutSlots = defaultMaxLoadoutSlots
	}
	if c.SaveRetries <= 0 {
		c.SaveRetries = defaultSaveRetries
	}
	if c.SaveBackoffMs <= 0 {
		c.SaveBackoffMs = defaultSaveBackoffMs
	}
	if c.AutosaveIntervalSec <= 0 {
		c.AutosaveIntervalSec = defaultAutosaveIntervalSec
	}
	if c.StorageCollection == "" {
		c.StorageCollection = defaultStorageCollection
	}
	if c.StartingTool == "" {
		c.StartingTool = defaultStartingTool
	}
	if c.Items == nil {
		c.Items = make(map[string]*CatalogItem)
	}
}
