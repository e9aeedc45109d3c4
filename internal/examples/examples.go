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

// Package examples provides canned test procedures.
package examples

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed examples.yaml
var examplesYAML []byte

// Example is a named test procedure.
type Example struct {
	Name string `yaml:"name" json:"name"`
	Text string `yaml:"text" json:"text"`
}

var all = mustLoad(examplesYAML)

func load(b []byte) ([]Example, error) {
	var doc struct {
		Examples []Example `yaml:"examples"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse examples: %w", err)
	}
	return doc.Examples, nil
}

func mustLoad(b []byte) []Example {
	ex, err := load(b)
	if err != nil {
		panic(err)
	}
	return ex
}

// All returns the canned procedures.
func All() []Example {
	return append([]Example(nil), all...)
}

// Texts returns the text of every canned procedure.
func Texts() []string {
	var t []string
	for _, e := range all {
		t = append(t, e.Text)
	}
	return t
}

// Lookup returns the procedure called name.
func Lookup(name string) (Example, bool) {
	for _, e := range all {
		if e.Name == name {
			return e, true
		}
	}
	return Example{}, false
}
