package main

import (
	"encoding/json"

	"github.com/fekuna/stockintel-service/internal/stock/dto"
	"github.com/spf13/cobra"
)

func newSnapshotCommand() *cobra.Command {
	var (
		group    string
		search   string
		cluster  int
		overview bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the current items once and print them as JSON",
		Long: `snapshot runs a single fetch against the analytics API, falling back to the
bundled demo dataset when it is unreachable, and writes the result to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if overview {
				res, err := a.stockUC.Overview(cmd.Context())
				if err != nil {
					return err
				}
				return enc.Encode(res)
			}

			filters := &dto.ItemFilters{Search: search, Group: group}
			if cmd.Flags().Changed("cluster") {
				filters.ClusterID = &cluster
			}
			res, err := a.stockUC.ListItems(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "only items of this group")
	cmd.Flags().StringVarP(&search, "search", "q", "", "case-insensitive name filter")
	cmd.Flags().IntVar(&cluster, "cluster", 0, "only items of this cluster")
	cmd.Flags().BoolVar(&overview, "overview", false, "print the KPI overview instead of the item list")

	return cmd
}
