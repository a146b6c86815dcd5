package config

import (
	"testing"
	"time"

	"github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		backend string
	}{
		{path: "../../config.example.yaml", backend: config.StoreBackendBadger},
		{path: "../../config.example.json", backend: config.StoreBackendSQLite},
		{path: "../../config.example.toml", backend: config.StoreBackendMemory},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadFromFile(tt.path)
			require.NoError(t, err)

			validateConfig(t, cfg)
			require.Equal(t, tt.backend, cfg.Store.Backend)
		})
	}
}

func TestLoadFromFile_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile("config.txt")
	require.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadFromBytes(t *testing.T) {
	t.Parallel()

	doc := `
chain:
  rpc_url: "http://localhost:8545"
store:
  backend: "memory"
indexers:
  - name: "times"
    type: "blocktime"
`
	cfg, err := LoadFromBytes([]byte(doc), FormatYAML)
	require.NoError(t, err)
	require.Equal(t, "finalized", cfg.Chain.Finality)
	require.Equal(t, 12*time.Second, cfg.Chain.PollInterval.Duration)
	require.Equal(t, uint32(config.DefaultMaxReorgDepth), cfg.Indexers[0].MaxReorgDepth)

	_, err = LoadFromBytes([]byte(doc), "ini")
	require.ErrorContains(t, err, "unsupported config format")

	_, err = LoadFromBytes([]byte("chain: ["), FormatYAML)
	require.ErrorContains(t, err, "failed to parse YAML config")
}

// validateConfig checks that the loaded config has expected values
func validateConfig(t *testing.T, cfg *config.Config) {
	t.Helper()

	require.NotEmpty(t, cfg.Chain.RPCURL)
	require.NotEmpty(t, cfg.Chain.Finality)
	require.NotZero(t, cfg.Chain.PollInterval.Duration)
	require.NotZero(t, cfg.Chain.MaxReorgDepth)
	require.NotEmpty(t, cfg.Indexers)

	for i, indexer := range cfg.Indexers {
		require.NotEmpty(t, indexer.Name, "indexer[%d].name", i)
		require.NotEmpty(t, indexer.Type, "indexer[%d].type", i)
		require.NotZero(t, indexer.MaxReorgDepth, "indexer[%d].max_reorg_depth", i)
	}

	if cfg.Store.Backend == config.StoreBackendSQLite {
		require.Equal(t, cfg.Store.Path, cfg.Store.SQLite.Path)
		require.NotEmpty(t, cfg.Store.SQLite.JournalMode)
		require.NotZero(t, cfg.Store.SQLite.BusyTimeout)
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Chain: config.ChainConfig{RPCURL: "https://test.com", Retry: &config.RetryConfig{}},
		Store: config.StoreConfig{
			Backend:     config.StoreBackendSQLite,
			Path:        "./test.db",
			Maintenance: &config.MaintenanceConfig{},
		},
		Indexers: []config.IndexerConfig{{Name: "times", Type: "blocktime", MaxReorgDepth: 12}},
		Logging:  &config.LoggingConfig{},
		API:      &config.APIConfig{CORS: config.CORSConfig{Enabled: true}},
	}

	cfg.ApplyDefaults()

	require.Equal(t, "finalized", cfg.Chain.Finality)
	require.Equal(t, uint32(config.DefaultMaxReorgDepth), cfg.Chain.MaxReorgDepth)
	require.Equal(t, 10*time.Minute, cfg.Chain.HeaderCacheTTL.Duration)
	require.Equal(t, 5, cfg.Chain.Retry.MaxAttempts)
	require.Equal(t, 2.0, cfg.Chain.Retry.BackoffMultiplier)

	require.Equal(t, "./test.db", cfg.Store.SQLite.Path)
	require.Equal(t, "WAL", cfg.Store.SQLite.JournalMode)
	require.Equal(t, "FULL", cfg.Store.SQLite.Synchronous)
	require.Equal(t, 5000, cfg.Store.SQLite.BusyTimeout)
	require.Equal(t, 25, cfg.Store.SQLite.MaxOpenConnections)
	require.Equal(t, "TRUNCATE", cfg.Store.Maintenance.WALCheckpointMode)
	require.Equal(t, 30*time.Minute, cfg.Store.Maintenance.CheckInterval.Duration)

	require.Equal(t, uint32(12), cfg.Indexers[0].MaxReorgDepth)
	require.Equal(t, "info", cfg.Logging.DefaultLevel)
	require.Equal(t, ":8080", cfg.API.ListenAddress)
	require.Equal(t, []string{"*"}, cfg.API.CORS.AllowedOrigins)
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	valid := func() *config.Config {
		return &config.Config{
			Chain:    config.ChainConfig{RPCURL: "https://test.com"},
			Store:    config.StoreConfig{Backend: config.StoreBackendMemory},
			Indexers: []config.IndexerConfig{{Name: "times", Type: "blocktime"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(cfg *config.Config) {},
		},
		{
			name:    "missing rpc_url",
			mutate:  func(cfg *config.Config) { cfg.Chain.RPCURL = "" },
			wantErr: "chain.rpc_url is required",
		},
		{
			name:    "invalid finality",
			mutate:  func(cfg *config.Config) { cfg.Chain.Finality = "invalid" },
			wantErr: "chain.finality",
		},
		{
			name: "retry backoff cap below the first delay",
			mutate: func(cfg *config.Config) {
				cfg.Chain.Retry = &config.RetryConfig{
					InitialBackoff: common.NewDuration(time.Minute),
					MaxBackoff:     common.NewDuration(time.Second),
				}
			},
			wantErr: "chain.retry: max_backoff (1s) is below initial_backoff (1m0s)",
		},
		{
			name: "retry multiplier below one",
			mutate: func(cfg *config.Config) {
				cfg.Chain.Retry = &config.RetryConfig{BackoffMultiplier: 0.5}
			},
			wantErr: "backoff_multiplier",
		},
		{
			name:    "unknown backend",
			mutate:  func(cfg *config.Config) { cfg.Store.Backend = "leveldb" },
			wantErr: "store.backend",
		},
		{
			name:    "badger without path",
			mutate:  func(cfg *config.Config) { cfg.Store.Backend = config.StoreBackendBadger },
			wantErr: "store.path is required",
		},
		{
			name: "bad sqlite journal mode",
			mutate: func(cfg *config.Config) {
				cfg.Store.Backend = config.StoreBackendSQLite
				cfg.Store.Path = "./x.db"
				cfg.Store.SQLite.JournalMode = "FAST"
			},
			wantErr: "journal_mode",
		},
		{
			name:    "no indexers",
			mutate:  func(cfg *config.Config) { cfg.Indexers = nil },
			wantErr: "at least one indexer",
		},
		{
			name: "duplicate indexer name",
			mutate: func(cfg *config.Config) {
				cfg.Indexers = append(cfg.Indexers, config.IndexerConfig{Name: "times", Type: "blockhash"})
			},
			wantErr: "duplicate indexer name",
		},
		{
			name:    "missing indexer type",
			mutate:  func(cfg *config.Config) { cfg.Indexers[0].Type = "" },
			wantErr: "type is required",
		},
		{
			name: "unknown logging component",
			mutate: func(cfg *config.Config) {
				cfg.Logging = &config.LoggingConfig{ComponentLevels: map[string]string{"p2p": "debug"}}
			},
			wantErr: "unknown component",
		},
		{
			name:    "metrics path without slash",
			mutate:  func(cfg *config.Config) { cfg.Metrics = &config.MetricsConfig{Enabled: true, Path: "metrics"} },
			wantErr: "path must start with '/'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			cfg.ApplyDefaults()

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoggingConfig_NilSafe(t *testing.T) {
	t.Parallel()

	var cfg *config.LoggingConfig

	require.Empty(t, cfg.GetComponentLevel("downloader"))
	require.Empty(t, cfg.GetDefaultLevel())
	require.False(t, cfg.IsDevelopment())
}
