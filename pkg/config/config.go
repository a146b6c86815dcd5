package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/internal/types"
)

// Store backends.
const (
	StoreBackendMemory = "memory"
	StoreBackendBadger = "badger"
	StoreBackendSQLite = "sqlite"
)

// DefaultMaxReorgDepth bounds fork-point discovery when an indexer does not set its own.
const DefaultMaxReorgDepth = 288

// Config represents the complete configuration for BlockIndexor.
type Config struct {
	// Chain configures the chain the indexers follow
	Chain ChainConfig `yaml:"chain" json:"chain" toml:"chain"`

	// Store configures the ordered key-value store shared by all indexers
	Store StoreConfig `yaml:"store" json:"store" toml:"store"`

	// Indexers contains the configuration for all indexers
	Indexers []IndexerConfig `yaml:"indexers" json:"indexers" toml:"indexers"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`

	// API contains the REST API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`
}

// ChainConfig represents the configuration of the chain follower.
type ChainConfig struct {
	// RPCURL is the Ethereum RPC endpoint URL
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// Finality specifies which head is followed: "finalized", "safe", or "latest"
	Finality string `yaml:"finality" json:"finality" toml:"finality"`

	// PollInterval is how often the head is polled for new blocks
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`

	// MaxReorgDepth is how many recent blocks the follower keeps to detect and rewind reorgs
	MaxReorgDepth uint32 `yaml:"max_reorg_depth" json:"max_reorg_depth" toml:"max_reorg_depth"`

	// HeaderCacheTTL is how long fetched headers are cached by hash
	HeaderCacheTTL common.Duration `yaml:"header_cache_ttl" json:"header_cache_ttl" toml:"header_cache_ttl"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`
}

// ApplyDefaults sets default values for optional chain configuration fields.
func (c *ChainConfig) ApplyDefaults() {
	if c.Finality == "" {
		c.Finality = "finalized"
	}
	if c.PollInterval.Duration == 0 {
		c.PollInterval = common.NewDuration(12 * time.Second) //nolint:mnd
	}
	if c.MaxReorgDepth == 0 {
		c.MaxReorgDepth = DefaultMaxReorgDepth
	}
	if c.HeaderCacheTTL.Duration == 0 {
		c.HeaderCacheTTL = common.NewDuration(10 * time.Minute) //nolint:mnd
	}

	if c.Retry != nil {
		c.Retry.ApplyDefaults()
	}
}

// Validate checks the follower settings.
func (c *ChainConfig) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("chain.rpc_url is required")
	}
	if _, err := types.ParseBlockFinality(c.Finality); err != nil {
		return fmt.Errorf("chain.finality: %w", err)
	}
	if c.PollInterval.Duration < 0 {
		return fmt.Errorf("chain.poll_interval must not be negative")
	}
	if c.Retry != nil {
		if err := c.Retry.Validate(); err != nil {
			return fmt.Errorf("chain.retry: %w", err)
		}
	}
	return nil
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(1 * time.Second)
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = common.NewDuration(30 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// Validate rejects settings that would never retry or would shrink the backoff.
func (r *RetryConfig) Validate() error {
	switch {
	case r.MaxAttempts < 1:
		return fmt.Errorf("max_attempts must be at least 1")
	case r.BackoffMultiplier < 1:
		return fmt.Errorf("backoff_multiplier must be at least 1")
	case r.MaxBackoff.Duration < r.InitialBackoff.Duration:
		return fmt.Errorf("max_backoff (%s) is below initial_backoff (%s)", r.MaxBackoff, r.InitialBackoff)
	}
	return nil
}

// StoreConfig selects and configures the ordered key-value backend.
type StoreConfig struct {
	// Backend is one of "memory", "badger" or "sqlite"
	Backend string `yaml:"backend" json:"backend" toml:"backend"`

	// Path is the badger directory or the sqlite file (unused for memory)
	Path string `yaml:"path" json:"path" toml:"path"`

	// SQLite contains tuning for the sqlite backend
	SQLite DatabaseConfig `yaml:"sqlite" json:"sqlite" toml:"sqlite"`

	// Maintenance contains optional background compaction settings
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional store configuration fields.
func (s *StoreConfig) ApplyDefaults() {
	if s.Backend == "" {
		s.Backend = StoreBackendBadger
	}

	if s.Backend == StoreBackendSQLite {
		if s.SQLite.Path == "" {
			s.SQLite.Path = s.Path
		}
		s.SQLite.ApplyDefaults()
	}

	if s.Maintenance != nil {
		s.Maintenance.ApplyDefaults()
	}
}

// Validate checks if the store configuration is valid.
func (s *StoreConfig) Validate() error {
	switch s.Backend {
	case StoreBackendMemory:
	case StoreBackendBadger, StoreBackendSQLite:
		if s.Path == "" {
			return fmt.Errorf("store.path is required for the %s backend", s.Backend)
		}
	default:
		return fmt.Errorf("store.backend must be one of: 'memory', 'badger', or 'sqlite'")
	}

	if s.Backend == StoreBackendSQLite {
		if err := s.SQLite.Validate(); err != nil {
			return fmt.Errorf("store.sqlite: %w", err)
		}
	}

	if s.Maintenance != nil {
		if err := s.Maintenance.Validate(); err != nil {
			return fmt.Errorf("store.maintenance: %w", err)
		}
	}

	return nil
}

// DatabaseConfig represents sqlite database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "FULL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
}

// Validate checks the sqlite pragmas.
func (d *DatabaseConfig) Validate() error {
	if d.JournalMode != "" &&
		!slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	if d.Synchronous != "" && !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}

	return nil
}

// MaintenanceConfig configures background store maintenance.
type MaintenanceConfig struct {
	// Enabled controls whether background maintenance runs
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// CheckInterval is how often to run maintenance (e.g., "30m", "1h")
	CheckInterval common.Duration `yaml:"check_interval" json:"check_interval" toml:"check_interval"`

	// CompactOnStartup runs maintenance immediately on startup
	CompactOnStartup bool `yaml:"compact_on_startup" json:"compact_on_startup" toml:"compact_on_startup"`

	// WALCheckpointMode controls the WAL checkpoint aggressiveness of the sqlite backend
	// Options: PASSIVE, FULL, RESTART, TRUNCATE
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`
}

// ApplyDefaults sets default values for optional maintenance configuration fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.CheckInterval.Duration == 0 {
		m.CheckInterval = common.NewDuration(30 * time.Minute) //nolint:mnd
	}
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
}

// Validate checks if the maintenance configuration is valid.
func (m *MaintenanceConfig) Validate() error {
	if m.WALCheckpointMode != "" {
		validModes := []string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"}
		if !slices.Contains(validModes, m.WALCheckpointMode) {
			return fmt.Errorf("wal_checkpoint_mode: must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
		}
	}

	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - downloader: Chain follower
	//   - chain-reader: RPC chain reader
	//   - reorg-detector: Fork point discovery
	//   - indexer: Per-indexer sync engine
	//   - indexer-coordinator: Indexer fan-out
	//   - store: Ordered key-value store
	//   - maintenance: Store maintenance
	//   - api: REST API
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
// A nil config yields an empty level.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return ""
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil {
		return ""
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// APIConfig configures the REST API server.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`

	// IdleTimeout is the maximum keep-alive idle duration
	IdleTimeout common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS configures cross-origin requests
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate checks if the API configuration is valid.
func (a *APIConfig) Validate() error {
	if a.Enabled && a.ListenAddress == "" {
		return fmt.Errorf("listen_address is required when the API is enabled")
	}
	return nil
}

// IndexerConfig represents the configuration for a single indexer.
type IndexerConfig struct {
	// Name is a unique identifier for this indexer; it also names its store namespace
	Name string `yaml:"name" json:"name" toml:"name"`

	// Type is the registered indexer type (see `indexer list`)
	Type string `yaml:"type" json:"type" toml:"type"`

	// StartHeight is the first block height this indexer records
	StartHeight uint32 `yaml:"start_height" json:"start_height" toml:"start_height"`

	// MaxReorgDepth bounds the fork point search during startup reconciliation
	MaxReorgDepth uint32 `yaml:"max_reorg_depth" json:"max_reorg_depth" toml:"max_reorg_depth"`
}

// ApplyDefaults sets default values for optional indexer configuration fields.
func (i *IndexerConfig) ApplyDefaults() {
	if i.MaxReorgDepth == 0 {
		i.MaxReorgDepth = DefaultMaxReorgDepth
	}
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Chain.ApplyDefaults()
	c.Store.ApplyDefaults()

	for i := range c.Indexers {
		c.Indexers[i].ApplyDefaults()
	}

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}

	if c.API != nil {
		c.API.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return err
	}

	if err := c.Store.Validate(); err != nil {
		return err
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}

	if len(c.Indexers) == 0 {
		return fmt.Errorf("at least one indexer must be configured")
	}

	indexerNames := make(map[string]bool)
	for i, indexer := range c.Indexers {
		if indexer.Name == "" {
			return fmt.Errorf("indexer[%d]: name is required", i)
		}

		if indexerNames[indexer.Name] {
			return fmt.Errorf("indexer[%d]: duplicate indexer name '%s'", i, indexer.Name)
		}
		indexerNames[indexer.Name] = true

		if indexer.Type == "" {
			return fmt.Errorf("indexer[%d] (%s): type is required", i, indexer.Name)
		}
	}

	return nil
}
