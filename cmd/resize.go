package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/backend"
)

type resizeOptions struct {
	width   int
	height  int
	bound   int
	kind    string
	palette bool
}

var resizeImageOpts resizeOptions
var resizeMaskOpts resizeOptions

var resizeImageCmd = &cobra.Command{
	Use:   "resize-image <in> <out>",
	Short: "Resize a single image with a smooth filter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := apitype.ParseInterpolationKind(resizeImageOpts.kind)
		if err != nil {
			return err
		}
		size, err := backend.ResizeImageFile(backend.InitializeCodec(params), args[0], args[1],
			resizeImageOpts.width, resizeImageOpts.height, resizeImageOpts.bound, kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[1], size)
		return nil
	},
}

var resizeMaskCmd = &cobra.Command{
	Use:   "resize-mask <in> <out>",
	Short: "Resize a label mask without blending class ids",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := backend.ResizeMaskFile(backend.InitializeCodec(params), args[0], args[1],
			resizeMaskOpts.width, resizeMaskOpts.height, resizeMaskOpts.bound, resizeMaskOpts.palette)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[1], size)
		return nil
	},
}

func bindSizeFlags(cmd *cobra.Command, opts *resizeOptions) {
	cmd.Flags().IntVarP(&opts.width, "width", "W", 0, "Target width in pixels")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 0, "Target height in pixels")
	cmd.Flags().IntVarP(&opts.bound, "bound", "b", 0, "Fit the longer side to this many pixels instead of width and height")
}

func init() {
	bindSizeFlags(resizeImageCmd, &resizeImageOpts)
	resizeImageCmd.Flags().StringVarP(&resizeImageOpts.kind, "kind", "k", apitype.Bilinear.String(), "Interpolation: bilinear, linear or nearest")
	rootCmd.AddCommand(resizeImageCmd)

	bindSizeFlags(resizeMaskCmd, &resizeMaskOpts)
	resizeMaskCmd.Flags().BoolVar(&resizeMaskOpts.palette, "palette", false, "Write the mask as a colour-mapped PNG")
	rootCmd.AddCommand(resizeMaskCmd)
}
