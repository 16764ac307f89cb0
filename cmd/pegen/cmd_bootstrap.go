package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ava12/xpeg/langdef"
)

func newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Print grammar description of grammar description language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, e := io.WriteString(cmd.OutOrStdout(), langdef.Source)
			return e
		},
	}
}
