package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ava12/xpeg/pegen"
)

func (a *app) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Translate grammar description to Go or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			opts := pegen.Options{
				Package: a.v.GetString("package"),
				Var:     a.v.GetString("var"),
				Import:  a.v.GetString("import"),
				JSON:    a.v.GetBool("json"),
			}
			out := a.v.GetString("output")
			if out == "" {
				out = pegen.OutputName(in, opts.JSON)
			}

			if !a.v.GetBool("watch") {
				return pegen.GenerateFile(in, out, opts)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return pegen.Watch(ctx, in, out, opts, func(e error) {
				if e == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "generated %s\n", out)
				} else {
					printErrors(cmd.ErrOrStderr(), e)
				}
			})
		},
	}

	fs := cmd.Flags()
	fs.BoolP("json", "j", false, "output JSON instead of Go")
	fs.StringP("output", "o", "", "output file name, default is the name of input file with .go or .json suffix")
	fs.StringP("package", "p", "", "Go package name, default is dir name of output file")
	fs.StringP("var", "v", "", "base name of generated Go identifiers, default is the root rule name")
	fs.String("import", "", "import path of parser package used by generated code")
	fs.Bool("watch", false, "regenerate output file on grammar file changes")
	return cmd
}
