package main

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

func newIdentifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify [file]",
		Short: "Print an image's format, dimensions, and size",
		Args:  cobra.ExactArgs(1),
		RunE:  runIdentify,
	}
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := transcode.Identify(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	printf(out, "File:        %s\n", path)
	printf(out, "Format:      %s\n", info.Format)
	printf(out, "Dimensions:  %d x %d\n", info.Width, info.Height)
	printf(out, "Color model: %s\n", info.ColorModel)
	printf(out, "Size:        %.2f KB (%s)\n", info.SizeKB, units.HumanSize(float64(len(data))))
	return nil
}
