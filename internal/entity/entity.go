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

// Package entity defines the set of network-configuration entities that are
// recovered from a natural-language test procedure, together with the
// numbering conventions that the configuration generators share.
package entity

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ForwarderType is the forwarding topology of a service.
type ForwarderType string

const (
	// OneToOne is a dedicated forwarder per line.
	OneToOne ForwarderType = "1:1"
	// NToOne is a forwarder shared by many lines.
	NToOne ForwarderType = "N:1"
)

// Protocol is an upper-layer protocol carried by the test traffic.
type Protocol string

const (
	IPv6  Protocol = "IPv6"
	PPPoE Protocol = "PPPoE"
)

// protocolOrder is the order in which protocols are reported and rendered.
var protocolOrder = []Protocol{IPv6, PPPoE}

// Tristate is a boolean that can also be left unspecified.
type Tristate int

const (
	Unset Tristate = iota
	True
	False
)

// IsSet reports whether t carries an explicit value.
func (t Tristate) IsSet() bool { return t != Unset }

// String returns "true", "false" or "unset".
func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unset"
}

// MarshalJSON encodes an unset value as null.
func (t Tristate) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts true, false and null.
func (t *Tristate) UnmarshalJSON(b []byte) error {
	var v *bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("invalid tristate %s: %w", b, err)
	}
	switch {
	case v == nil:
		*t = Unset
	case *v:
		*t = True
	default:
		*t = False
	}
	return nil
}

// MarshalYAML encodes an unset value as null.
func (t Tristate) MarshalYAML() (any, error) {
	switch t {
	case True:
		return true, nil
	case False:
		return false, nil
	}
	return nil, nil
}

// Set is the structured result of entity extraction. A Set returned by
// Default or passed through Finalize always has every field populated:
// slices and maps are non-nil and defaults are applied.
//
// UserVLANs, NetworkVLANs, UserPBits and NetworkPBits keep the order in which
// values were first mentioned; Finalize drops duplicates and out-of-range
// values but does not sort them. The i-th VLAN is the one used for the i-th
// VSI of that side.
type Set struct {
	UserVLANs    []int `json:"user_vlans" yaml:"user_vlans"`
	NetworkVLANs []int `json:"network_vlans" yaml:"network_vlans"`
	Lines        []int `json:"lines" yaml:"lines"`
	// LineForwarderMap is only populated for discretized procedures.
	LineForwarderMap map[int]ForwarderType `json:"line_forwarder_map" yaml:"line_forwarder_map"`
	Uplinks          []int                 `json:"uplinks" yaml:"uplinks"`
	UserPBits        []int                 `json:"user_pbits" yaml:"user_pbits"`
	NetworkPBits     []int                 `json:"network_pbits" yaml:"network_pbits"`
	ForwarderType    ForwarderType         `json:"forwarder_type" yaml:"forwarder_type"`
	Protocols        []Protocol            `json:"protocols" yaml:"protocols"`

	IsUntagged  bool `json:"is_untagged" yaml:"is_untagged"`
	IsMultiLine bool `json:"is_multi_line" yaml:"is_multi_line"`
	IsAllLines  bool `json:"is_all_lines" yaml:"is_all_lines"`

	IsMultiService  bool          `json:"is_multi_service" yaml:"is_multi_service"`
	ServiceCount    int           `json:"service_count" yaml:"service_count"`
	ServiceType     ForwarderType `json:"service_type" yaml:"service_type"`
	ServicesPerLine map[int]int   `json:"services_per_line" yaml:"services_per_line"`

	AllPBitRange            bool `json:"all_pbit_range" yaml:"all_pbit_range"`
	DifferentPBitPerService bool `json:"different_pbit_per_service" yaml:"different_pbit_per_service"`

	SpecificLines    []int `json:"specific_lines" yaml:"specific_lines"`
	AnyLinesScenario bool  `json:"any_lines_scenario" yaml:"any_lines_scenario"`

	HasVLANTranslation          Tristate `json:"has_vlan_translation" yaml:"has_vlan_translation"`
	ExplicitUserNetworkSameVLAN bool     `json:"explicit_user_network_same_vlan" yaml:"explicit_user_network_same_vlan"`
	BothUserNetworkMentioned    bool     `json:"both_user_network_mentioned" yaml:"both_user_network_mentioned"`
}

// Default returns the canonical entity set used when nothing is recognized.
func Default() *Set {
	s := &Set{}
	s.Finalize()
	return s
}

// Finalize normalizes s in place: values outside their valid range are
// dropped, lists are de-duplicated, defaults are filled in and the derived
// flags are recomputed. VLANs and PBITs keep the order in which they were
// mentioned; lines and uplinks are sorted.
func (s *Set) Finalize() {
	s.UserVLANs = dedupe(s.UserVLANs, ValidVLAN)
	s.NetworkVLANs = dedupe(s.NetworkVLANs, ValidVLAN)
	s.UserPBits = dedupe(s.UserPBits, ValidPBit)
	s.NetworkPBits = dedupe(s.NetworkPBits, ValidPBit)
	s.Lines = sorted(dedupe(s.Lines, ValidLine))
	s.Uplinks = sorted(dedupe(s.Uplinks, ValidUplink))
	s.SpecificLines = sorted(dedupe(s.SpecificLines, ValidLine))

	if len(s.Lines) == 0 {
		s.Lines = []int{1}
	}
	if len(s.Uplinks) == 0 {
		s.Uplinks = []int{1}
	}
	if s.AllPBitRange {
		s.UserPBits = AllPBits()
		s.NetworkPBits = AllPBits()
	}
	if len(s.UserPBits) == 0 {
		s.UserPBits = []int{0}
	}
	if len(s.NetworkPBits) == 0 {
		s.NetworkPBits = []int{0}
	}
	if s.ForwarderType == "" {
		s.ForwarderType = NToOne
	}

	var protos []Protocol
	for _, p := range protocolOrder {
		if slices.Contains(s.Protocols, p) {
			protos = append(protos, p)
		}
	}
	s.Protocols = protos
	if s.Protocols == nil {
		s.Protocols = []Protocol{}
	}

	if s.LineForwarderMap == nil {
		s.LineForwarderMap = map[int]ForwarderType{}
	}
	for l := range s.LineForwarderMap {
		if !ValidLine(l) {
			delete(s.LineForwarderMap, l)
		}
	}
	if s.ServicesPerLine == nil {
		s.ServicesPerLine = map[int]int{}
	}
	for l := range s.ServicesPerLine {
		if !ValidLine(l) {
			delete(s.ServicesPerLine, l)
		}
	}

	if s.IsMultiService && s.ServiceCount < 2 {
		s.IsMultiService = false
	}
	if !s.IsMultiService {
		s.ServiceCount = 1
		clear(s.ServicesPerLine)
	}
	if s.ServiceType == "" {
		s.ServiceType = s.ForwarderType
	}

	// An explicit "without translation" is a transparent tagged service.
	if s.HasVLANTranslation == False {
		s.IsUntagged = false
	}

	s.IsMultiLine = len(s.Lines) > 1
	s.IsAllLines = len(s.Lines) == MaxLines
}

// Discretized reports whether s assigns forwarder types per line.
func (s *Set) Discretized() bool {
	return len(s.LineForwarderMap) > 0
}

// LinesOf returns the sorted lines that the line map assigns to ft.
func (s *Set) LinesOf(ft ForwarderType) []int {
	var lines []int
	for l, t := range s.LineForwarderMap {
		if t == ft {
			lines = append(lines, l)
		}
	}
	slices.Sort(lines)
	return lines
}

// HasProtocol reports whether p was requested.
func (s *Set) HasProtocol(p Protocol) bool {
	return slices.Contains(s.Protocols, p)
}

// dedupe returns the valid values of in, first occurrence first.
func dedupe(in []int, valid func(int) bool) []int {
	out := []int{}
	for _, v := range in {
		if valid(v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func sorted(l []int) []int {
	slices.Sort(l)
	return l
}
