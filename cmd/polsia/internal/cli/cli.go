// Copyright 2026 The Polsia Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli wires the cobra root command the way the teacher's
// cmd/cue/cmd does (cmd.go / root.go splitting construction from flag
// wiring), trimmed to the single subcommand spec §6 names.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/contagnas/polsia"
	polerrors "github.com/contagnas/polsia/errors"
	"github.com/contagnas/polsia/internal/jsonshim"
	"github.com/contagnas/polsia/internal/materialize"
)

// Run executes the CLI against args, writing results to out and
// diagnostics to errOut, and returns the process exit code (spec §6:
// "Exit code is 0 on success, non-zero on any error").
func Run(args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return exitCode
}

// exitCode is set by runFile so Run can report it after cobra's own error
// handling (which always maps a returned error to exit code 1, but a
// successful run that still reported a document failure through errOut
// needs to be distinguishable).
var exitCode int

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "polsia <file>",
		Short:         "Evaluate a Polsia document to JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runFile(args[0], out, errOut)
			if exitCode != 0 {
				return fmt.Errorf("polsia: evaluation failed")
			}
			return nil
		},
	}
	return cmd
}

func runFile(path string, out, errOut io.Writer) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "polsia: %v\n", err)
		return 1
	}

	root, err := jsonshim.Decode(src)
	if err != nil {
		fmt.Fprintf(errOut, "polsia: %v\n", err)
		return 1
	}

	result, err := polsia.Eval(root)
	if err != nil {
		report(errOut, err)
		return 1
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSONCompatible(result)); err != nil {
		fmt.Fprintf(errOut, "polsia: %v\n", err)
		return 1
	}
	return 0
}

// report prints a *errors.UnifyError in the plain-text shape the external
// diagnostic renderer (out of scope, spec §1) would otherwise produce with
// carets; this CLI prints the unadorned summary line so it remains useful
// stand-alone. NO_COLOR (spec §6: "one environment variable may disable
// color") suppresses the red "error:" prefix this summary line uses.
func report(errOut io.Writer, err error) {
	p := message.NewPrinter(message.MatchLanguage("en"))
	label := "error:"
	if os.Getenv("NO_COLOR") == "" {
		label = "\033[31merror:\033[0m"
	}
	var ue polerrors.Error
	if polerrors.As(err, &ue) {
		p.Fprintf(errOut, "%s %s (at %v, previous %v)\n", label, ue.Error(), ue.Position(), ue.PrevPosition())
		return
	}
	p.Fprintf(errOut, "%s %v\n", label, err)
}

// toJSONCompatible converts a materialize.OrderedObject tree (which keeps
// member order alongside its map) into plain encoding/json input. Order is
// not preserved by encoding/json's map encoding (spec §3 requires source
// order be preserved internally; JSON objects are unordered by the format
// itself, so this is only a display nicety via sorted keys for
// determinism across runs).
func toJSONCompatible(v interface{}) interface{} {
	switch x := v.(type) {
	case *materialize.OrderedObject:
		out := make(map[string]interface{}, len(x.Keys))
		for _, k := range x.Keys {
			out[k] = toJSONCompatible(x.Values[k])
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = toJSONCompatible(item)
		}
		return out
	default:
		return x
	}
}
