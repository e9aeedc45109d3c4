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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"
	"github.com/openconfig/vsigen/internal/confgen"
	"github.com/openconfig/vsigen/internal/procedure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	inputFormat string
	outDir      string
)

// batchCmd generates the configuration of every procedure in a set of
// documents.
var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Generate the configuration of every procedure in plain, Markdown or YAML documents",
	Long: `Batch reads procedure documents and generates the configuration of each
procedure they hold. Plain documents separate procedures with "---" lines,
Markdown documents hold one procedure per heading, and YAML documents hold a
list of {id, name, text, minimal} entries. The document format is guessed
from the file extension unless --input-format is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ps []*procedure.Procedure
		for _, path := range args {
			got, err := loadProcedures(path, inputFormat)
			if err != nil {
				return err
			}
			ps = append(ps, got...)
		}
		results := runBatch(ps, viper.GetBool("minimal"))
		if outDir != "" {
			return writeResults(outDir, results)
		}
		return printResults(cmd.OutOrStdout(), viper.GetString("format"), results)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&inputFormat, "input-format", "", "Document format: plain, markdown or yaml")
	batchCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Write one <id>.txt configuration per procedure to this directory")
}

// batchResult is the outcome of one procedure.
type batchResult struct {
	ID       string            `json:"id" yaml:"id"`
	Name     string            `json:"name" yaml:"name"`
	Input    string            `json:"input" yaml:"input"`
	Output   string            `json:"output" yaml:"output"`
	Analysis *confgen.Analysis `json:"analysis" yaml:"analysis"`
}

func loadProcedures(path, format string) ([]*procedure.Procedure, error) {
	if format == "" {
		return procedure.Load(path)
	}
	f, err := procedure.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ps, err := procedure.Parse(f, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// runBatch generates every procedure of ps. A procedure marked minimal is
// rendered minimal whatever the value of minimal.
func runBatch(ps []*procedure.Procedure, minimal bool) []*batchResult {
	var results []*batchResult
	for _, p := range ps {
		res := confgen.Run(p.Text, minimal || p.Minimal)
		log.V(1).Infof("Procedure %s (%s): %s configuration", p.Name, p.ID, res.Config.Kind)
		results = append(results, &batchResult{
			ID:       p.ID,
			Name:     p.Name,
			Input:    p.Text,
			Output:   res.Output,
			Analysis: res.Analysis(),
		})
	}
	return results
}

func printResults(w io.Writer, format string, results []*batchResult) error {
	if format != "" && format != "text" {
		return writeValue(w, format, results)
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "### %s (%s)\n%s\n\n", r.Name, r.ID, r.Output); err != nil {
			return err
		}
	}
	return nil
}

func writeResults(dir string, results []*batchResult) error {
	names, err := resultFiles(results)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	for i, r := range results {
		path := filepath.Join(dir, names[i])
		if err := os.WriteFile(path, []byte(r.Output+"\n"), 0o644); err != nil {
			return err
		}
		log.Infof("Wrote %s to %s", r.Name, path)
	}
	return nil
}

// resultFiles returns the output file name of each result. IDs must be plain
// file names; repeated IDs get a "-<n>" suffix.
func resultFiles(results []*batchResult) ([]string, error) {
	seen := map[string]int{}
	var names []string
	for _, r := range results {
		id := r.ID
		if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
			return nil, fmt.Errorf("procedure %q: invalid id %q for an output file name", r.Name, id)
		}
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
			for seen[id] > 0 {
				n++
				id = fmt.Sprintf("%s-%d", r.ID, n)
			}
			seen[r.ID] = n
			seen[id]++
		}
		names = append(names, id+".txt")
	}
	return names, nil
}
