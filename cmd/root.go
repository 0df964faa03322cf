package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"vincit.fi/gallery-thumbs/common"
	"vincit.fi/gallery-thumbs/common/logger"
)

const eventBusQueueSize = 1000

// Version is the application version.
const Version = "0.1.0"

var params = common.NewEmptyParams()

var rootCmd = &cobra.Command{
	Use:           "gallery-thumbs",
	Short:         "Thumbnails, masks and probability maps for an image gallery",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Initialize(logger.StringToLogLevel(params.LogLevel()))
		return params.Validate()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	params.BindPersistentFlags(rootCmd.PersistentFlags())
}
