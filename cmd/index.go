package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"vincit.fi/gallery-thumbs/backend"
)

var indexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Bring thumbnails up to date and print the gallery index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params.SetRootPath(args[0])

		stores, err := backend.InitializeStores(params.DbPath())
		if err != nil {
			return fmt.Errorf("failed to open thumbnail catalog: %w", err)
		}
		defer stores.Close()

		services := backend.InitializeServices(params, stores, backend.InitializeEventBrokers(eventBusQueueSize))
		startup := services.StartGallery(params)
		index, err := startup.Wait(cmd.Context())
		if err != nil {
			return err
		}

		report := startup.Report()
		printSummary(cmd.ErrOrStderr(), report.BatchId, report.Result, report.Skipped)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPREV\tNEXT")
		for id := 0; id < index.Len(); id++ {
			entry, err := index.EntryAt(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", entry.Id, entry.Name, entry.PrevId, entry.NextId)
		}
		return w.Flush()
	},
}

func init() {
	params.BindThumbnailFlags(indexCmd.Flags())
	rootCmd.AddCommand(indexCmd)
}
