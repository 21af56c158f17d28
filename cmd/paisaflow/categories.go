package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nandakv/paisaflow/internal/cli"
	"github.com/nandakv/paisaflow/internal/config"
	"github.com/nandakv/paisaflow/internal/enrich"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the category rules in evaluation order",
		Long: `Show the effective category chain. Rules are evaluated top to bottom
and the first match wins, so order is precedence.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			classifier := enrich.NewCategoryClassifier(cfg.Keywords)

			fmt.Println(cli.TitleStyle.Render("Category chain"))
			for i, rule := range classifier.Rules() {
				detail := fmt.Sprintf("%d keywords", len(rule.Contains))
				if len(rule.Prefixes) > 0 {
					detail = fmt.Sprintf("%s, %d prefixes", detail, len(rule.Prefixes))
				}
				fmt.Printf("  %2d. %-22s %s\n", i+1, rule.Label,
					cli.SubtleStyle.Render(detail))
			}
			fmt.Printf("  %2d. %-22s %s\n", len(classifier.Rules())+1, "OTHER",
				cli.SubtleStyle.Render("default"))
			return nil
		},
	}
}
