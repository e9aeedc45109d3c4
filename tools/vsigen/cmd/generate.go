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
	"time"

	log "github.com/golang/glog"
	"github.com/openconfig/vsigen/internal/confgen"
	"github.com/openconfig/vsigen/internal/otgexport"
	"github.com/openconfig/vsigen/internal/packet"
	"github.com/openconfig/vsigen/internal/traffic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	generateFile string
	pcapFile     string
	otgFile      string
)

// generateCmd prints the configuration of one procedure.
var generateCmd = &cobra.Command{
	Use:   "generate [procedure text]",
	Short: "Generate the configuration of a test procedure",
	Long: `Generate prints the VSI, forwarder and traffic configuration of a test
procedure given as arguments, with --file, or on stdin.

The traffic can also be written as a pcap capture (--pcap) or as an Open
Traffic Generator configuration (--otg).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := procedureText(args, generateFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		res := confgen.Run(text, viper.GetBool("minimal"))
		log.V(1).Infof("Generated %s configuration", res.Config.Kind)
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return exportTraffic(res, pcapFile, otgFile)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "Read the procedure from this file")
	generateCmd.Flags().StringVar(&pcapFile, "pcap", "", "Write the traffic frames to this pcap file")
	generateCmd.Flags().StringVar(&otgFile, "otg", "", "Write the traffic as OTG JSON configuration to this file")
}

// exportTraffic writes the traffic of res to the requested files.
func exportTraffic(res *confgen.Result, pcapPath, otgPath string) error {
	if pcapPath == "" && otgPath == "" {
		return nil
	}
	b := res.Traffic
	if b == nil {
		b = traffic.Build(res.Entities, res.Config)
	}
	if pcapPath != "" {
		n, err := writeFile(pcapPath, func(w io.Writer) (int, error) {
			return packet.WritePCAP(w, b, time.Now())
		})
		if err != nil {
			return fmt.Errorf("cannot write pcap: %w", err)
		}
		log.Infof("Wrote %d frames to %s", n, pcapPath)
	}
	if otgPath != "" {
		js, err := otgexport.JSON(b)
		if err != nil {
			return err
		}
		if err := os.WriteFile(otgPath, []byte(js), 0o644); err != nil {
			return fmt.Errorf("cannot write OTG config: %w", err)
		}
		log.Infof("Wrote OTG config to %s", otgPath)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) (int, error)) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
