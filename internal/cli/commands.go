package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/sjperalta/cabinet-api/internal/config"
	"github.com/sjperalta/cabinet-api/internal/database"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/services"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(rulesCmd)

	exportCmd.Flags().StringP("output", "o", "", "Write the export to this file instead of stdout")
	importCmd.Flags().StringP("input", "i", "", "Export file to import")
	_ = importCmd.MarkFlagRequired("input")
	rulesCmd.Flags().Bool("toml", false, "Print the effective rules as TOML")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ledger tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s database (%d tables)\n", cfg.DatabaseDriver, len(models.AllTables()))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole ledger as JSON",
	Long:  `Export every table and the totals in the same format as GET /api/v1/export. The export is also archived under the storage backups directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		id, err := rt.identity(cmd)
		if err != nil {
			return err
		}
		snap, err := rt.svcs.Snapshot.Export(commandContext(cmd), id)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", snap.RecordCount(), output)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the whole ledger with an export file",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var snap models.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("invalid import file: %w", err)
		}

		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		id, err := rt.identity(cmd)
		if err != nil {
			return err
		}
		if err := rt.svcs.Snapshot.Import(commandContext(cmd), id, &snap); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records\n", snap.RecordCount())
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Archive the ledger to storage and list archived backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.svcs.Snapshot.Backup(commandContext(cmd)); err != nil {
			return err
		}
		backups, err := rt.store.Backups()
		if err != nil {
			return err
		}
		for _, path := range backups {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Validate the rules file and print the effective prices and tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		table, pins, err := config.LoadRules(cfg.RulesFile)
		if err != nil {
			return err
		}

		asTOML, _ := cmd.Flags().GetBool("toml")
		if asTOML {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(table)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rules version %s (%d roles)\n\n", table.Version, len(pins))

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tPRICE")
		types := make([]string, 0, len(table.Prices))
		for t := range table.Prices {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(w, "%s\t%s\n", t, services.FormatMoney(table.Prices[t]))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "MIN AMOUNT\tWEEKS\tINTEREST")
		for _, tier := range table.SavingsTiers {
			fmt.Fprintf(w, "%s\t%d\t%s%%\n", services.FormatMoney(tier.MinThreshold), tier.TermWeeks, tier.InterestPct.Shift(2).String())
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(out, "\nMinimum saving %s, late fine %s after %s, default loan interest %s%%\n",
			services.FormatMoney(table.MinimumSaving),
			services.FormatMoney(table.LateFine),
			table.MeetingStart,
			table.DefaultLoanInterestPct.String(),
		)
		return nil
	},
}
