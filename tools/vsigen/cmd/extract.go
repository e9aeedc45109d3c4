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
	"github.com/openconfig/vsigen/internal/confgen"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var extractFile string

// extractCmd prints the entities of one procedure.
var extractCmd = &cobra.Command{
	Use:   "extract [procedure text]",
	Short: "Print the entities extracted from a test procedure",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := procedureText(args, extractFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return writeValue(cmd.OutOrStdout(), viper.GetString("format"), confgen.Extract(text))
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Read the procedure from this file")
}
