/*
pegen is a console utility working with grammar descriptions.
Usage is

	pegen [--config <file>] [-V...] <command> [flags] <args>

Commands are:

	generate [-j] [-p <name>] [-v <name>] [-o <name>] [--watch] <file>
		translates grammar description to Go or JSON file;
		-j outputs JSON file instead of Go source;
		-o defines output file name, default is the name of input file with .go or .json suffix;
		-p defines Go package name, default is directory name of output file;
		-v defines base name of generated Go identifiers, default is the name of root rule;
		--watch regenerates output file each time grammar file changes, until interrupted;

	check <file>
		parses and checks grammar description, prints all errors found;

	parse [--rule <name>] [--sub] [--format text|json|yaml] [--keep <type>,...] [-m [-e]] <grammar> <input>
		parses input file ("-" for standard input) with grammar compiled on the fly and prints resulting tree;
		--sub re-parses the tree with all second pass rules;
		--keep prints simplified tree containing only listed node types;
		-m treats input as multiple samples, the first line is a separator: every line starting
		with its leading non-space characters separates samples;
		-e means that every sample must contain a syntax error;

	bootstrap
		prints grammar description of grammar description language.

Flag values may also be set with PEGEN_<FLAG> environment variables (dashes replaced with underscores)
or in YAML configuration file. -V increases log verbosity, may be repeated.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("PEGEN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "pegen",
		Short:         "PEG grammar generator and checker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}
	root.PersistentFlags().String("config", "", "YAML configuration file")
	root.PersistentFlags().CountP("verbose", "V", "increase log verbosity")

	root.AddCommand(a.newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(a.newParseCmd())
	root.AddCommand(newBootstrapCmd())
	return root
}

func (a *app) configure(cmd *cobra.Command) error {
	e := a.v.BindPFlags(cmd.Flags())
	if e != nil {
		return e
	}

	if name := a.v.GetString("config"); name != "" {
		a.v.SetConfigFile(name)
		e = a.v.ReadInConfig()
		if e != nil {
			return errors.Wrapf(e, "cannot read config %s", name)
		}
	}

	commonlog.Configure(a.v.GetInt("verbose"), nil)
	return nil
}

// printErrors writes every error contained in e on a separate line.
func printErrors(w io.Writer, e error) {
	cause := errors.Cause(e)
	if m, ok := cause.(interface{ WrappedErrors() []error }); ok {
		for _, we := range m.WrappedErrors() {
			fmt.Fprintln(w, we.Error())
		}
		return
	}

	fmt.Fprintln(w, cause.Error())
}

func main() {
	root := newRootCmd()
	if e := root.Execute(); e != nil {
		printErrors(os.Stderr, e)
		os.Exit(3)
	}
}
