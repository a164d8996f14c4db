package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/portdash/internal/app"
	"github.com/bobmcallan/portdash/internal/models"
)

func newRenderCmd() *cobra.Command {
	var selectID, viewSymbol string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard page once and print it",
		Long: `Loads the seed data, optionally selects a user and views a stock,
then writes the resulting HTML page to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			if selectID != "" {
				ev := models.Event{Region: models.RegionUserList, Target: selectID, Tag: "button"}
				if err := a.Dashboard.Dispatch(ev); err != nil {
					return err
				}
			}
			if viewSymbol != "" {
				ev := models.Event{Region: models.RegionPortfolio, Target: viewSymbol, Tag: "button"}
				if err := a.Dashboard.Dispatch(ev); err != nil {
					return err
				}
			}

			return a.Dashboard.WritePage(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&selectID, "select", "", "User id to select before rendering")
	cmd.Flags().StringVar(&viewSymbol, "view", "", "Stock symbol to view before rendering")
	return cmd
}
