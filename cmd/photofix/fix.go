package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/photo-fixer/internal/photos"
	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Fix a photo for an exam profile or a custom target",
		Example: `  photofix fix -i me.png --profile "RRB NTPC"
  photofix fix -i me.jpg -o out.jpg --width 300 --height 400 --max-kb 40`,
		RunE: runFix,
	}

	cmd.Flags().StringP("input", "i", "", "Source image")
	cmd.Flags().StringP("output", "o", "", "Output JPEG (defaults to <profile>_fixed.jpg beside the input)")
	cmd.Flags().StringP("profile", "p", "", "Exam profile name")
	cmd.Flags().Int("width", 0, "Custom target width in pixels")
	cmd.Flags().Int("height", 0, "Custom target height in pixels")
	cmd.Flags().Float64("min-kb", 0, "Custom target minimum size in KB")
	cmd.Flags().Float64("max-kb", 0, "Custom target maximum size in KB")
	cmd.Flags().Bool("parallel", false, "Encode every quality level concurrently")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagsMutuallyExclusive("profile", "width")
	cmd.MarkFlagsMutuallyExclusive("profile", "height")
	cmd.MarkFlagsRequiredTogether("width", "height", "max-kb")

	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	profile, _ := cmd.Flags().GetString("profile")
	parallel, _ := cmd.Flags().GetBool("parallel")

	target, err := customTarget(cmd)
	if err != nil {
		return err
	}
	if profile == "" && target == nil {
		return fmt.Errorf("%w: use --profile or --width/--height/--max-kb", photos.ErrMissingTarget)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cmd, logger)
	if err != nil {
		return err
	}

	cfg := transcode.DefaultConfig()
	cfg.SetParallel(parallel)
	sys := photos.New(catalog, transcode.New(cfg, logger), 0, logger)

	fixed, err := sys.Fix(cmd.Context(), photos.FixCommand{
		Data:    data,
		Profile: profile,
		Target:  target,
	})
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(inputPath), fixed.FileName)
	}
	if err := os.WriteFile(outputPath, fixed.Data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	out := cmd.OutOrStdout()
	printf(out, "Output:        %s\n", outputPath)
	printf(out, "Profile:       %s\n", fixed.Profile.Name)
	printf(out, "Dimensions:    %d x %d\n", fixed.Width, fixed.Height)
	printf(out, "Size:          %.2f KB\n", fixed.SizeKB)
	printf(out, "Quality:       %d (%d attempts)\n", fixed.Quality, fixed.Attempts)
	printf(out, "Within bounds: %t\n", fixed.WithinBounds)

	if !fixed.WithinBounds {
		printf(cmd.ErrOrStderr(), "warning: %s\n", fixed.Message())
	}
	return nil
}

// customTarget returns nil when no dimension flags were given.
func customTarget(cmd *cobra.Command) (*transcode.TargetSpec, error) {
	if !cmd.Flags().Changed("width") && !cmd.Flags().Changed("height") {
		return nil, nil
	}

	var t transcode.TargetSpec
	t.Width, _ = cmd.Flags().GetInt("width")
	t.Height, _ = cmd.Flags().GetInt("height")
	t.MinSizeKB, _ = cmd.Flags().GetFloat64("min-kb")
	t.MaxSizeKB, _ = cmd.Flags().GetFloat64("max-kb")

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
