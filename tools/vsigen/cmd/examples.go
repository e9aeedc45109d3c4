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

	"github.com/openconfig/vsigen/internal/confgen"
	"github.com/openconfig/vsigen/internal/examples"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// examplesCmd lists the canned procedures, or generates one of them.
var examplesCmd = &cobra.Command{
	Use:   "examples [NAME]",
	Short: "List the example procedures, or generate the configuration of one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, ex := range examples.All() {
				fmt.Fprintf(w, "%s:\n  %s\n", ex.Name, ex.Text)
			}
			return nil
		}
		ex, ok := examples.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown example %q", args[0])
		}
		fmt.Fprintln(w, confgen.Generate(ex.Text, viper.GetBool("minimal")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
