package main

import (
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List exam profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfiles,
	}
}

func runProfiles(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cmd, logger)
	if err != nil {
		return err
	}

	list, err := catalog.List(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	printf(tw, "NAME\tSIZE (PX)\tFILE SIZE (KB)\n")
	for _, p := range list {
		printf(tw, "%s\t%dx%d\t%g-%g\n", p.Name, p.Width, p.Height, p.MinSizeKB, p.MaxSizeKB)
	}
	return tw.Flush()
}
