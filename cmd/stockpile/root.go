package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gravitas-games/stockpile/internal/config"
	"github.com/gravitas-games/stockpile/pkg/inventory"
	"github.com/gravitas-games/stockpile/pkg/item"
	"github.com/gravitas-games/stockpile/pkg/registry"
	"github.com/gravitas-games/stockpile/pkg/transaction"
)

// Exit codes.
const (
	exitSuccess      = 0
	exitError        = 1
	exitExpectations = 2
)

// Viper keys; env vars are STOCKPILE_ plus the upper-cased key.
const (
	envPrefix    = "STOCKPILE"
	keyConfig    = "config"
	keyCatalog   = "catalog"
	keyLogLevel  = "log_level"
	keyLogFormat = "log_format"
)

// errExpectations is returned when a scenario ran but some steps did not
// match their expected outcome.
var errExpectations = errors.New("scenario expectations not met")

var v = viper.New()

// Set up by PersistentPreRunE for every subcommand.
var (
	cfg     *config.Config
	log     *logrus.Logger
	catalog *registry.Registry
)

var rootCmd = &cobra.Command{
	Use:           "stockpile",
	Short:         "Stockpile replays atomic inventory transactions",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		log, err = newLogger(cfg.Log)
		if err != nil {
			return err
		}
		catalog, err = loadCatalog(cfg.Catalog)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"items": catalog.Len(), "catalog": cfg.Catalog.Path}).Debug("catalog loaded")
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(keyConfig, "", "config file (env STOCKPILE_CONFIG)")
	flags.String(keyCatalog, "", "item catalogue YAML, overrides catalog.path (default: built-in sample)")
	flags.String("log-level", "", "log level, overrides log.level")
	flags.String("log-format", "", "log format (text|json), overrides log.format")

	_ = v.BindPFlag(keyConfig, flags.Lookup(keyConfig))
	_ = v.BindPFlag(keyCatalog, flags.Lookup(keyCatalog))
	_ = v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(keyLogFormat, flags.Lookup("log-format"))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(runCmd)
}

// loadConfig resolves configuration with precedence flag > env > file >
// defaults.
func loadConfig() (*config.Config, error) {
	c := config.Default()
	if path := v.GetString(keyConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	if s := v.GetString(keyCatalog); s != "" {
		c.Catalog.Path = s
	}
	if s := v.GetString(keyLogLevel); s != "" {
		c.Log.Level = s
	}
	if s := v.GetString(keyLogFormat); s != "" {
		c.Log.Format = s
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newLogger(lc config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	if lc.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return l, nil
}

func loadCatalog(cc config.CatalogConfig) (*registry.Registry, error) {
	if cc.Path == "" {
		return registry.SampleCatalog(), nil
	}
	return registry.LoadFile(cc.Path, cc.DefaultMaxStack)
}

// newManager wires a transaction manager over the loaded catalogue.
func newManager() *transaction.Manager {
	engine := inventory.NewEngine(item.NewRules(catalog))
	return transaction.NewManager(engine, transaction.WithLogger(log))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errExpectations):
		return exitExpectations
	default:
		return exitError
	}
}
