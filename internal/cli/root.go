// Package cli implements cabinetctl, the operator tool for migrations, backups and rule checks.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/config"
	"github.com/sjperalta/cabinet-api/internal/database"
	"github.com/sjperalta/cabinet-api/internal/events"
	"github.com/sjperalta/cabinet-api/internal/rules"
	"github.com/sjperalta/cabinet-api/internal/services"
	"github.com/sjperalta/cabinet-api/internal/storage"
	"github.com/sjperalta/cabinet-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "cabinetctl",
	Short:         "Operate the cabinet ledger",
	Long:          `cabinetctl migrates the ledger database, exports and imports ledger snapshots and checks the rules file. It reads the same environment as the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logger.Setup("development")
		} else {
			logger.Setup("test")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log SQL and debug output")
	rootCmd.PersistentFlags().String("role", access.RoleFinance, "Role to act as")
	rootCmd.PersistentFlags().String("pin", "", "PIN of the role (defaults to CABINET_PIN)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// runtime is what a command needs to run ledger operations outside the server
type runtime struct {
	cfg   *config.Config
	db    *gorm.DB
	svcs  *services.Services
	gate  *access.Gate
	store *storage.LocalStorage
}

func openRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	table, pins, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	engine, err := rules.NewEngine(table)
	if err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		database.Close(db)
		return nil, err
	}

	gate := access.NewGate(pins)
	return &runtime{
		cfg:   cfg,
		db:    db,
		svcs:  services.NewServices(db, gate, engine, events.Noop{}, store, cfg),
		gate:  gate,
		store: store,
	}, nil
}

func (r *runtime) Close() {
	if err := database.Close(r.db); err != nil {
		logger.Warn("Failed to close database", "error", err)
	}
}

// identity logs in with the --role and --pin flags
func (r *runtime) identity(cmd *cobra.Command) (access.Identity, error) {
	role, _ := cmd.Flags().GetString("role")
	pin, _ := cmd.Flags().GetString("pin")
	if pin == "" {
		pin = lookupEnv("CABINET_PIN")
	}
	id, err := r.gate.Login(role, pin)
	if err != nil {
		return access.Identity{}, fmt.Errorf("cannot act as %s: %w", role, err)
	}
	return id, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func lookupEnv(key string) string {
	value, _ := os.LookupEnv(key)
	return value
}
