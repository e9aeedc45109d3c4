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
	"encoding/json"
	"fmt"
	"io"

	"github.com/kr/pretty"
	"gopkg.in/yaml.v3"
)

// writeValue writes v to w in format: text (Go syntax via kr/pretty), json
// or yaml.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case "", "text", "pretty":
		_, err := fmt.Fprintf(w, "%# v\n", pretty.Formatter(v))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
