package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/backend"
)

var thumbsCmd = &cobra.Command{
	Use:   "thumbs <dir>",
	Short: "Generate thumbnails for every image in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params.SetRootPath(args[0])

		stores, err := backend.InitializeStores(params.DbPath())
		if err != nil {
			return fmt.Errorf("failed to open thumbnail catalog: %w", err)
		}
		defer stores.Close()

		brokers := backend.InitializeEventBrokers(eventBusQueueSize)
		view := newProgressView()
		brokers.Broker.Subscribe(api.ThumbnailProgress, view.onProgress)

		services := backend.InitializeServices(params, stores, brokers)
		report, err := services.GenerateThumbnails(params)
		brokers.Broker.Flush()
		view.finish()
		if err != nil {
			return err
		}

		printSummary(cmd.OutOrStdout(), report.BatchId, report.Result, report.Skipped)
		return nil
	},
}

func printSummary(w io.Writer, batchId string, result *apitype.BatchResult, skipped []string) {
	failed := result.Failed()
	fmt.Fprintf(w, "Batch %s: %d generated, %d failed, %d up to date\n",
		batchId, len(result.Succeeded()), len(failed), len(skipped))

	errs := result.Errors()
	for _, name := range failed {
		fmt.Fprintf(w, "  %s: %s\n", name, errs[name])
	}
}

func init() {
	params.BindThumbnailFlags(thumbsCmd.Flags())
	rootCmd.AddCommand(thumbsCmd)
}
