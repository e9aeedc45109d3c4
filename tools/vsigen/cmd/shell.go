// Copyright 2025 Google LLC
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


package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"
	"github.com/openconfig/vsigen/internal/confgen"
	"github.com/openconfig/vsigen/internal/examples"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const historyFile = ".vsigen_history"

const shellHelp = `Type a test procedure to generate its configuration, or one of:
  example NAME     generate a canned example
  examples         list the canned examples
  extract TEXT     print the entities of TEXT
  minimal on|off   toggle VSI-only output
  help             print this message
  quit             leave the shell`

// shellCmd is an interactive prompt around the generator.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Generate configurations interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		sh := &shell{out: cmd.OutOrStdout(), minimal: viper.GetBool("minimal")}

		input := liner.NewLiner()
		defer input.Close()

		input.SetCtrlCAborts(true)
		input.SetTabCompletionStyle(liner.TabPrints)
		input.SetCompleter(complete)

		history := ""
		if home, err := os.UserHomeDir(); err == nil {
			history = filepath.Join(home, historyFile)
			if f, err := os.Open(history); err == nil {
				input.ReadHistory(f)
				f.Close()
			}
		}

		fmt.Fprintln(sh.out, shellHelp)
		for {
			line, err := input.Prompt("vsigen> ")
			if err == liner.ErrPromptAborted {
				continue
			} else if err == io.EOF {
				break
			} else if err != nil {
				return err
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			input.AppendHistory(line)
			if sh.eval(line) {
				break
			}
		}

		if history != "" {
			f, err := os.Create(history)
			if err != nil {
				log.Warningf("Cannot save history: %v", err)
				return nil
			}
			defer f.Close()
			if _, err := input.WriteHistory(f); err != nil {
				log.Warningf("Cannot save history: %v", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

var errQuit = errors.New("quit")

// shell evaluates the lines typed at the prompt.
type shell struct {
	out     io.Writer
	minimal bool
}

// eval runs line and reports whether the shell should exit.
func (s *shell) eval(line string) bool {
	if err := s.run(line); err != nil {
		if errors.Is(err, errQuit) {
			return true
		}
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return false
}

func (s *shell) run(line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "examples":
		for _, ex := range examples.All() {
			fmt.Fprintf(s.out, "%-22s %s\n", ex.Name, firstLine(ex.Text))
		}
	case "example":
		ex, ok := examples.Lookup(rest)
		if !ok {
			return fmt.Errorf("unknown example %q", rest)
		}
		fmt.Fprintln(s.out, confgen.Generate(ex.Text, s.minimal))
	case "extract":
		if rest == "" {
			return errNoInput
		}
		return writeValue(s.out, "text", confgen.Extract(rest))
	case "minimal":
		switch strings.ToLower(rest) {
		case "on", "true", "1":
			s.minimal = true
		case "off", "false", "0":
			s.minimal = false
		default:
			return fmt.Errorf("minimal takes on or off, got %q", rest)
		}
		fmt.Fprintf(s.out, "minimal output: %v\n", s.minimal)
	default:
		fmt.Fprintln(s.out, confgen.Generate(line, s.minimal))
	}
	return nil
}

func firstLine(s string) string {
	l, _, _ := strings.Cut(s, "\n")
	return l
}

// complete suggests shell commands and example names starting with line.
func complete(line string) []string {
	candidates := []string{"examples", "extract ", "help", "minimal off", "minimal on", "quit"}
	for _, ex := range examples.All() {
		candidates = append(candidates, "example "+ex.Name)
	}
	var c []string
	for _, cand := range candidates {
		if strings.HasPrefix(cand, strings.ToLower(line)) {
			c = append(c, cand)
		}
	}
	return c
}
