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
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/openconfig/vsigen/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generator over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := server.New(server.Options{
			Minimal:     viper.GetBool("minimal"),
			AllowOrigin: viper.GetString("allow_origin"),
		})
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		addr := net.JoinHostPort(viper.GetString("host"), strconv.Itoa(viper.GetInt("port")))
		return s.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "127.0.0.1", "Address to listen on")
	serveCmd.Flags().Int("port", 5000, "Port to listen on")
	serveCmd.Flags().String("allow-origin", "*", "Access-Control-Allow-Origin of API responses; empty disables CORS")
	viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("allow_origin", serveCmd.Flags().Lookup("allow-origin"))
}
