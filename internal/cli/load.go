package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/kvload/internal/config"
	"github.com/vvka-141/kvload/internal/files/filesystem"
	"github.com/vvka-141/kvload/internal/logging"
	"github.com/vvka-141/kvload/internal/services"
	"github.com/vvka-141/kvload/internal/store"
	"github.com/vvka-141/kvload/pkg/kvload"
)

var loadCmd = &cobra.Command{
	Use:   "load <input_file>",
	Short: "Load a file of records into the store",
	Long: `Load reads every record from the input file and writes it to the store
with SET <key> <value>, where <key> is the record's id field and <value> is the
record serialized again in the input format.

On success a single line is printed to stdout:
  All <N> key-value pairs loaded into <store>!

Arguments:
  input_file      File holding the concatenated records

Store Address:
  Precedence: --store > --host/--port/--db > $KVLOAD_STORE_URL > $REDIS_URL >
  kvload.yaml store.url > kvload.yaml store.host/port/db > redis://localhost:6379/0
  Supported schemes: redis://, rediss://, unix://, postgres://, postgresql://
  A Redis password can come from the URL or $REDIS_PASSWORD.

Examples:
  # Load into the local Redis, database 0
  kvload load kv_data.msgpack

  # Load into KeyDB on another host, database 2
  kvload load kv_data.msgpack -H keydb.internal -n 2

  # JSON Lines records shaped {"Q42": {...}}, keyed by their entry name
  kvload load entities.jsonl --format jsonl --key-mode entry

  # Load into a PostgreSQL key/value table
  kvload load kv_data.msgpack --store postgres://app@db/kv --table kv_store`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

type loadFlagValues struct {
	store      string
	host       string
	port       int
	db         int
	table      string
	format     string
	keyField   string
	keyMode    string
	timeout    time.Duration
	configPath string
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	// Store URL flag (mutually exclusive with granular flags)
	loadCmd.Flags().StringVar(&loadFlags.store, "store", "",
		"Store URL (redis://, rediss://, unix://, postgres://).\n"+
			"Mutually exclusive with --host, --port and --db.\n"+
			"Alternative: $KVLOAD_STORE_URL or $REDIS_URL.\n"+
			"Example: redis://localhost:6379/0")

	// Granular Redis address flags
	loadCmd.Flags().StringVarP(&loadFlags.host, "host", "H", "",
		"Redis host (default localhost)")
	loadCmd.Flags().IntVarP(&loadFlags.port, "port", "p", 0,
		"Redis port (default 6379)")
	loadCmd.Flags().IntVarP(&loadFlags.db, "db", "n", 0,
		"Redis logical database number")
	loadCmd.MarkFlagsMutuallyExclusive("store", "host")
	loadCmd.MarkFlagsMutuallyExclusive("store", "port")
	loadCmd.MarkFlagsMutuallyExclusive("store", "db")

	loadCmd.Flags().StringVar(&loadFlags.table, "table", kvload.DefaultTable,
		"Key/value table for postgres:// stores, optionally schema qualified")

	// Record flags
	loadCmd.Flags().StringVarP(&loadFlags.format, "format", "f", string(kvload.FormatMsgPack),
		"Input format: msgpack|jsonl\n"+
			"Values are written in the same format")
	loadCmd.Flags().StringVarP(&loadFlags.keyField, "key-field", "k", kvload.DefaultKeyField,
		"Record field whose value is the store key")
	loadCmd.Flags().StringVar(&loadFlags.keyMode, "key-mode", string(kvload.KeyModeField),
		"How keys are derived: field|entry\n"+
			"entry keys each record by the name of its single top-level entry")

	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", 0,
		"Abort the load after this long (0 means no limit)\n"+
			"Examples: 30s, 5m, 1h30m")
	loadCmd.Flags().StringVar(&loadFlags.configPath, "config", config.ConfigFileName,
		"Path to the config file; a missing default file is ignored")
}

// buildLoadConfig builds a LoadConfig from CLI flags, environment and kvload.yaml.
// Flags given explicitly override the config file; the config file overrides flag defaults.
func buildLoadConfig(cmd *cobra.Command, inputPath string, verbose bool) (kvload.LoadConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(loadFlags.configPath)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) || cmd.Flags().Changed("config") {
			return kvload.LoadConfig{}, fmt.Errorf("failed to load %s: %w", loadFlags.configPath, err)
		}
		projectCfg = &config.ProjectConfig{}
	}
	flags := cmd.Flags()

	storeURL, source := resolveStoreURL(storeFlags{
		url:      loadFlags.store,
		host:     loadFlags.host,
		port:     loadFlags.port,
		db:       loadFlags.db,
		granular: flags.Changed("host") || flags.Changed("port") || flags.Changed("db"),
	}, projectCfg)

	formatName := pick(flags.Changed("format"), loadFlags.format, projectCfg.Format)
	format, err := kvload.ParseFormat(formatName)
	if err != nil {
		return kvload.LoadConfig{}, err
	}

	timeout := loadFlags.timeout
	if projectCfg.Timeout != "" && !flags.Changed("timeout") {
		parsed, parseErr := time.ParseDuration(projectCfg.Timeout)
		if parseErr != nil {
			return kvload.LoadConfig{}, fmt.Errorf("invalid timeout in %s: %w: %w", config.ConfigFileName, kvload.ErrInvalidConfig, parseErr)
		}
		timeout = parsed
	}

	cfg := kvload.LoadConfig{
		InputPath: inputPath,
		Format:    format,
		KeyMode:   kvload.KeyMode(pick(flags.Changed("key-mode"), loadFlags.keyMode, projectCfg.KeyMode)),
		KeyField:  pick(flags.Changed("key-field"), loadFlags.keyField, projectCfg.KeyField),
		Store: kvload.StoreConfig{
			URL:   storeURL,
			Table: pick(flags.Changed("table"), loadFlags.table, projectCfg.Store.Table),
		},
		Timeout: timeout,
		Verbose: verbose,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Load resolved:\n")
		fmt.Fprintf(os.Stderr, "  Input: %s (%s)\n", cfg.InputPath, cfg.Format)
		fmt.Fprintf(os.Stderr, "  Store: %s (from %s)\n", store.Redact(cfg.Store.URL), source)
		fmt.Fprintf(os.Stderr, "  Key: %s %s\n", cfg.KeyMode, cfg.KeyField)
	}

	return cfg, nil
}

// pick returns the flag value when the flag was set explicitly or the config
// file is silent, otherwise the config file value.
func pick(changed bool, flagValue, configValue string) string {
	if changed || configValue == "" {
		return flagValue
	}
	return configValue
}

func openStore(ctx context.Context, cfg kvload.StoreConfig, logger kvload.Logger) (kvload.Store, error) {
	return store.Open(ctx, cfg, logger)
}

func runLoad(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	verbose := getVerboseFlag(cmd)

	cfg, err := buildLoadConfig(cmd, inputPath, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	loader := services.NewLoadService(openStore, filesystem.NewOSFileSystem(), logger)

	// Timeout is applied by the service; here only signals cancel the load.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, stopping load...")
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := loader.Load(ctx, cfg)
	if err != nil {
		if result != nil && result.Records > 0 {
			logger.Error("%d key-value pairs were written before the failure", result.Records)
		}
		return fmt.Errorf("load failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "All %d key-value pairs loaded into %s!\n", result.Records, result.Store)
	return nil
}
