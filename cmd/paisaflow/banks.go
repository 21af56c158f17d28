package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nandakv/paisaflow/internal/cli"
	"github.com/nandakv/paisaflow/internal/config"
	"github.com/nandakv/paisaflow/internal/schema"
)

func banksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List configured bank schemas",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			registry := schema.NewRegistry(cfg.BankSchemas)
			banks := registry.Banks()
			sort.Strings(banks)

			fmt.Println(cli.TitleStyle.Render("Configured banks"))
			for _, bank := range banks {
				bs, _ := registry.Lookup(bank)
				roles := make([]string, 0, len(bs))
				for role := range bs {
					roles = append(roles, string(role))
				}
				sort.Strings(roles)
				fmt.Printf("  %s: %s\n", bank,
					cli.SubtleStyle.Render(strings.Join(roles, ", ")))
			}
			return nil
		},
	}
}
