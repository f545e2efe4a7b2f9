package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/kernelworx/psm/internal/build"
)

// NewVersionCommand returns the command to get the psm version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Return the psm version",
		Long:  "Return the psm version.",
		RunE:  version,
		Args:  cobra.NoArgs,
	}
}

func version(_ *cobra.Command, _ []string) error {
	log.Printf("psm version %s date %s commit id %s", build.Version, build.Date, build.Commit)
	return nil
}
