package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/ava12/xpeg"
	"github.com/ava12/xpeg/langdef"
	"github.com/ava12/xpeg/parser"
	"github.com/ava12/xpeg/source"
	"github.com/ava12/xpeg/tree"
)

func readInput(cmd *cobra.Command, name string) (*source.Source, error) {
	var (
		content []byte
		e       error
	)
	if name == "-" {
		content, e = io.ReadAll(cmd.InOrStdin())
		name = "stdin"
	} else {
		content, e = os.ReadFile(name)
	}
	if e != nil {
		return nil, errors.Wrapf(e, "cannot read %s", name)
	}

	return source.New(name, content), nil
}

// splitSamples splits multi-sample text. The first line is a separator, its leading non-space characters
// start every following separator line, the rest of separator line is ignored.
// The line feed preceding a separator is not included in the sample.
func splitSamples(src *source.Source) []*source.Source {
	lines := strings.SplitAfter(src.Text(), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}

	sep := strings.TrimRight(lines[0], "\n")
	if i := strings.IndexFunc(sep, unicode.IsSpace); i >= 0 {
		sep = sep[:i]
	}

	var res []*source.Source
	for first := 1; first < len(lines); {
		last := first
		for last < len(lines) && !strings.HasPrefix(lines[last], sep) {
			last++
		}
		text := strings.Join(lines[first:last], "")
		if last < len(lines) {
			text = strings.TrimSuffix(text, "\n")
		}
		name := fmt.Sprintf("### %s, sample #%d, (lines %d-%d)", src.Name(), len(res)+1, first+1, last)
		res = append(res, source.NewString(name, text))
		first = last + 1
	}
	return res
}

func isSyntaxError(e error) bool {
	codes := xpeg.Codes(errors.Cause(e))
	return len(codes) == 1 && codes[0] == parser.ParseFailedError
}

// parse returns nodes to print.
func (a *app) parse(g *parser.Grammar, src *source.Source) ([]tree.Node, error) {
	p := parser.New(g, src)
	var (
		root tree.Node
		e    error
	)
	if rule := a.v.GetString("rule"); rule != "" {
		root, e = p.Parse(rule)
	} else {
		root, e = p.ParseRoot()
	}
	if e != nil {
		return nil, e
	}
	if root.IsFailure() {
		return nil, parser.FailureError(root)
	}

	if a.v.GetBool("sub") {
		ok, nodes, e := p.SubParseAll()
		if e != nil {
			return nil, e
		}
		if !ok {
			for _, n := range nodes {
				if n.IsFailure() {
					return nil, parser.FailureError(n)
				}
			}
		}
		root = p.Root()
	}

	if keep := a.v.GetStringSlice("keep"); len(keep) > 0 {
		return tree.Reconstruct(root, keep, nil), nil
	}
	return []tree.Node{root}, nil
}

func (a *app) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <grammar> <input>",
		Short: "Parse input with grammar and print resulting tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gs, e := readInput(cmd, args[0])
			if e != nil {
				return e
			}
			g, e := langdef.Compile(gs)
			if e != nil {
				return e
			}

			src, e := readInput(cmd, args[1])
			if e != nil {
				return e
			}

			out := cmd.OutOrStdout()
			format := a.v.GetString("format")
			if !a.v.GetBool("multi") {
				nodes, e := a.parse(g, src)
				if e != nil {
					return e
				}
				return writeTrees(out, nodes, format)
			}

			var errs *multierror.Error
			expectError := a.v.GetBool("expect-error")
			for _, sample := range splitSamples(src) {
				fmt.Fprintln(out, sample.Name())
				nodes, e := a.parse(g, sample)
				switch {
				case e != nil && !isSyntaxError(e):
					return e
				case e != nil && expectError:
					fmt.Fprintf(out, "  *** error: %s\n", e.Error())
				case e != nil:
					errs = multierror.Append(errs, e)
				case expectError:
					errs = multierror.Append(errs, errors.Errorf("expecting error, got success in %s", sample.Name()))
				default:
					e = writeTrees(out, nodes, format)
					if e != nil {
						return e
					}
				}
			}
			return errs.ErrorOrNil()
		},
	}

	fs := cmd.Flags()
	fs.String("rule", "", "start rule name, default is the root rule")
	fs.Bool("sub", false, "re-parse tree with second pass rules")
	fs.String("format", "text", "output format: text, json, or yaml")
	fs.StringSlice("keep", nil, "print simplified tree containing only listed node types")
	fs.BoolP("multi", "m", false, "input contains multiple samples, the first line is the separator")
	fs.BoolP("expect-error", "e", false, "every sample must fail to parse")
	return cmd
}

func writeTrees(w io.Writer, nodes []tree.Node, format string) error {
	switch format {
	case "text":
		for _, n := range nodes {
			e := tree.Print(w, n, tree.PrintText|tree.PrintAttrs)
			if e != nil {
				return e
			}
		}
		return nil

	case "json", "yaml":
		dumps := make([]*tree.Dump, len(nodes))
		for i, n := range nodes {
			dumps[i] = tree.NewDump(n)
		}
		var data any = dumps
		if len(dumps) == 1 {
			data = dumps[0]
		}

		var (
			content []byte
			e       error
		)
		if format == "json" {
			content, e = json.MarshalIndent(data, "", "  ")
			content = append(content, '\n')
		} else {
			content, e = yaml.Marshal(data)
		}
		if e != nil {
			return e
		}
		_, e = w.Write(content)
		return e

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
