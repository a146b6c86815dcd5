package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	// Import built-in indexers to register them
	_ "github.com/goran-ethernal/BlockIndexor/examples/indexers/blockhash"
	_ "github.com/goran-ethernal/BlockIndexor/examples/indexers/blocktime"
	"github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/config"
	"github.com/goran-ethernal/BlockIndexor/internal/downloader"
	internalindexer "github.com/goran-ethernal/BlockIndexor/internal/indexer"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/internal/metrics"
	"github.com/goran-ethernal/BlockIndexor/internal/rpc"
	"github.com/goran-ethernal/BlockIndexor/internal/store"
	"github.com/goran-ethernal/BlockIndexor/internal/types"
	"github.com/goran-ethernal/BlockIndexor/pkg/api"
	pkgconfig "github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/indexer"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║          BlockIndexor v%s              ║
║   Reorg-safe block indexing framework     ║
╚═══════════════════════════════════════════╝
`
	metricsStopTimeout = 5 * time.Second
)

var (
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "BlockIndexor - reorg-safe block indexing framework",
	Long: `BlockIndexor follows a chain and keeps a set of indexers consistent with its
canonical blocks. Every block is applied atomically together with the indexer's
sync state, and reorganizations are rewound before new blocks are indexed.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runIndexer,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available indexer types",
	Long:  `List all registered indexer types that can be used in the configuration file.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available indexer types:")
		types := indexer.ListRegistered()
		if len(types) == 0 {
			fmt.Fprintln(out, "  (no indexers registered)")
			return
		}
		for _, t := range types {
			fmt.Fprintf(out, "  - %s\n", t)
		}
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := &jsonschema.Reflector{FieldNameTag: "json"}
		schema := reflector.Reflect(&pkgconfig.Config{})

		encoded, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return err
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runIndexer(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewComponentLoggerFromConfig(common.ComponentDownloader, cfg.Logging)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, log)
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), metricsStopTimeout)
			defer cancel()
			if err := metricsServer.Stop(stopCtx); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	db, err := store.Open(cfg.Store, logger.NewComponentLoggerFromConfig(common.ComponentStore, cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warnf("Failed to close store: %v", err)
		}
	}()

	if err := db.Maintenance().Start(ctx); err != nil {
		return fmt.Errorf("failed to start store maintenance: %w", err)
	}

	log.Info("Connecting to Ethereum node...")
	ethClient, err := rpc.NewClient(ctx, cfg.Chain.RPCURL, cfg.Chain.Retry)
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}
	defer ethClient.Close()
	log.Infof("Connected to Ethereum node: %s", cfg.Chain.RPCURL)

	finality, err := types.ParseBlockFinality(cfg.Chain.Finality)
	if err != nil {
		return err
	}
	if finality.Reorgable() {
		log.Infof("Following the %s head; reorgs up to %d blocks deep are rewound", finality, cfg.Chain.MaxReorgDepth)
	}
	reader := rpc.NewChainReader(
		ethClient,
		finality,
		cfg.Chain.HeaderCacheTTL.Duration,
		logger.NewComponentLoggerFromConfig(common.ComponentChainReader, cfg.Logging),
	)

	coordinator, err := registerIndexers(ctx, cfg, db)
	if err != nil {
		return err
	}
	if len(coordinator.ListAll()) == 0 {
		log.Warn("No indexers configured. Exiting.")
		return nil
	}

	dl, err := downloader.New(
		cfg.Chain,
		reader,
		coordinator,
		logger.NewComponentLoggerFromConfig(common.ComponentDownloader, cfg.Logging),
	)
	if err != nil {
		return fmt.Errorf("failed to create downloader: %w", err)
	}
	defer dl.Close()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(
			cfg.API,
			coordinator,
			logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging),
		)
		g.Go(func() error {
			return apiServer.Start(gctx)
		})
	}

	log.Info("Starting BlockIndexor...")

	g.Go(func() error {
		if err := dl.Download(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("downloader failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("BlockIndexor stopped successfully")
	return nil
}

// registerIndexers creates every configured indexer on its own store namespace and
// registers it with a new coordinator.
func registerIndexers(
	ctx context.Context,
	cfg *pkgconfig.Config,
	db *store.Store,
) (*internalindexer.IndexerCoordinator, error) {
	idxLog := logger.NewComponentLoggerFromConfig(common.ComponentIndexer, cfg.Logging)
	coordinator := internalindexer.NewIndexerCoordinator(
		logger.NewComponentLoggerFromConfig(common.ComponentIndexerCoordinator, cfg.Logging),
	)

	for _, idxCfg := range cfg.Indexers {
		ns, err := db.Namespace(idxCfg.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to open namespace of indexer %s: %w", idxCfg.Name, err)
		}

		idx, err := indexer.Create(idxCfg.Type, idxCfg, ns, idxLog)
		if err != nil {
			return nil, fmt.Errorf("failed to create indexer %s: %w", idxCfg.Name, err)
		}

		base, err := internalindexer.NewBaseIndexer(ctx, idx, ns, idxCfg, idxLog)
		if err != nil {
			return nil, err
		}

		if err := coordinator.RegisterIndexer(base); err != nil {
			return nil, err
		}
	}

	return coordinator, nil
}
