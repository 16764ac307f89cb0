package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ava12/xpeg/langdef"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and check grammar description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, e := os.ReadFile(args[0])
			if e != nil {
				return errors.Wrapf(e, "cannot read %s", args[0])
			}

			g, e := langdef.ParseBytes(args[0], src)
			if e != nil {
				return e
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, root is %s\n", args[0], len(g.Rules), g.Root)
			return nil
		},
	}
}
