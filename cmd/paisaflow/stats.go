package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nandakv/paisaflow/internal/cli"
	"github.com/nandakv/paisaflow/internal/config"
	"github.com/nandakv/paisaflow/internal/storage"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize stored transactions",
		Long: `Show aggregate totals over everything already processed, grouped by
category or by month.`,
		RunE: runStats,
	}

	cmd.Flags().Bool("monthly", false, "group by month instead of category")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path,
		storage.WithEnvironment(cfg.Database.Environment))
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate storage: %w", err)
	}

	total, err := store.CountTransactions(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions stored yet. Run 'paisaflow process' first."))
		return nil
	}

	if monthly, _ := cmd.Flags().GetBool("monthly"); monthly {
		summaries, err := store.SummarizeByMonth(ctx)
		if err != nil {
			return err
		}
		fmt.Println(cli.TitleStyle.Render("Monthly totals"))
		for _, ms := range summaries {
			fmt.Printf("  %-10s %5d txns   debit %12.2f   credit %12.2f\n",
				ms.MonthYear, ms.Count, ms.TotalDebit, ms.TotalCredit)
		}
		return nil
	}

	summaries, err := store.SummarizeByCategory(ctx)
	if err != nil {
		return err
	}
	fmt.Println(cli.TitleStyle.Render("Category totals"))
	for _, cs := range summaries {
		fmt.Printf("  %-24s %5d txns   debit %12.2f   credit %12.2f\n",
			cs.Category, cs.Count, cs.TotalDebit, cs.TotalCredit)
	}
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("\n%d transactions total", total)))
	return nil
}
