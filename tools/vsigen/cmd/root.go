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


// Package cmd implements the vsigen commands.
package cmd

import (
	"flag"
	"os"
	"strings"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vsigen",
	Short: "Generate VSI, forwarder and traffic configuration from test procedures",
	Long: `vsigen reads natural language network test procedures, extracts the VLANs,
lines, forwarder types, priorities and protocols they describe, and emits the
matching VSI, forwarder and traffic configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().Bool("minimal", false, "Only emit the VSI and forwarder block")
	rootCmd.PersistentFlags().String("format", "text", "Output format of extract and batch: text, json or yaml")
	viper.BindPFlag("minimal", rootCmd.PersistentFlags().Lookup("minimal"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))

	// glog flags, e.g. -v and -logtostderr.
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.SetGlobalNormalizationFunc(dashes)
}

// dashes accepts --allow_origin for --allow-origin, matching the config keys.
func dashes(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vsigen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config/vsigen")
		}
	}

	viper.SetEnvPrefix("VSIGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Infof("Using config file: %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		log.Exitf("Cannot read config file %s: %v", cfgFile, err)
	}
}
