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

// Package confgen turns a natural-language test procedure into DUT and test
// equipment configuration text.
//
// Generation runs in two stages: entity extraction, then configuration
// synthesis. Both are pure functions of their input, so a Result may be
// computed concurrently for different procedures.
package confgen

import (
	"github.com/openconfig/vsigen/internal/entity"
	"github.com/openconfig/vsigen/internal/extract"
	"github.com/openconfig/vsigen/internal/traffic"
	"github.com/openconfig/vsigen/internal/vsi"
)

// Result holds every stage of a generation.
type Result struct {
	Input    string
	Entities *entity.Set
	Config   *vsi.Config
	// Traffic is nil for minimal results.
	Traffic *traffic.Block
	// Output is the generated configuration text.
	Output string
}

// Extract returns the entities of text.
func Extract(text string) *entity.Set {
	return extract.Extract(text)
}

// Generate returns the configuration text of text. With minimal set only the
// VSI block is produced; otherwise the traffic block follows it.
func Generate(text string, minimal bool) string {
	return Run(text, minimal).Output
}

// Run generates the configuration of text and keeps the intermediate stages.
func Run(text string, minimal bool) *Result {
	return FromEntities(text, Extract(text), minimal)
}

// FromEntities generates the configuration of an already extracted entity
// set.
func FromEntities(text string, s *entity.Set, minimal bool) *Result {
	r := &Result{
		Input:    text,
		Entities: s,
		Config:   vsi.Build(s),
	}
	r.Output = vsi.Render(r.Config)
	if minimal {
		return r
	}
	r.Traffic = traffic.Build(s, r.Config)
	r.Output += "\n" + traffic.Render(r.Traffic)
	return r
}

// Analysis is the summary of a Result reported to API clients.
type Analysis struct {
	UserVLANs     []int                `json:"user_vlans" yaml:"user_vlans"`
	NetworkVLANs  []int                `json:"network_vlans" yaml:"network_vlans"`
	Lines         []int                `json:"lines" yaml:"lines"`
	ForwarderType entity.ForwarderType `json:"forwarder_type" yaml:"forwarder_type"`
	IsMultiLine   bool                 `json:"is_multi_line" yaml:"is_multi_line"`
	IsUntagged    bool                 `json:"is_untagged" yaml:"is_untagged"`
	Protocols     []entity.Protocol    `json:"protocols" yaml:"protocols"`
	Scenario      string               `json:"scenario" yaml:"scenario"`
}

// Analysis summarizes the entities and scenario of r.
func (r *Result) Analysis() *Analysis {
	s := r.Entities
	return &Analysis{
		UserVLANs:     s.UserVLANs,
		NetworkVLANs:  s.NetworkVLANs,
		Lines:         s.Lines,
		ForwarderType: s.ForwarderType,
		IsMultiLine:   s.IsMultiLine,
		IsUntagged:    s.IsUntagged,
		Protocols:     s.Protocols,
		Scenario:      r.Config.Kind.String(),
	}
}
