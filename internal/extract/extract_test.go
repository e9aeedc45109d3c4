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

package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openconfig/vsigen/internal/entity"
)

func TestNormalize(t *testing.T) {
	in := "Configure DUT\nwith VLAN=100 (PBIT 5) & more"
	want := "configure dut . with vlan 100 pbit 5 and more"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize(%q): got %q, want %q", in, got, want)
	}
}

// withDefaults returns the default entity set modified by f.
func withDefaults(f func(s *entity.Set)) *entity.Set {
	s := entity.Default()
	f(s)
	return s
}

func oneToOne(s *entity.Set) {
	s.ForwarderType = entity.OneToOne
	s.ServiceType = entity.OneToOne
}

// splitLines maps lines 1..n to first and the remaining lines to rest.
func splitLines(n int, first, rest entity.ForwarderType) map[int]entity.ForwarderType {
	m := map[int]entity.ForwarderType{}
	for l := 1; l <= entity.MaxLines; l++ {
		m[l] = rest
		if l <= n {
			m[l] = first
		}
	}
	return m
}

func TestExtract(t *testing.T) {
	tests := []struct {
		desc string
		in   string
		want *entity.Set
	}{{
		desc: "empty",
		in:   "   ",
		want: entity.Default(),
	}, {
		desc: "nothing recognized",
		in:   "hello world",
		want: entity.Default(),
	}, {
		desc: "out of range values only",
		in:   "Configure VLAN 5000 on line 20",
		want: entity.Default(),
	}, {
		desc: "bare 1:1 service",
		in:   "Configure DUT for a Service with 1:1 Forwarder and Ensure that bi-directional Traffic is fine.",
		want: withDefaults(oneToOne),
	}, {
		desc: "N:1 on all lines",
		in:   "Configure DUT for a Service with N:1 Forwarder and Ensure that bi-directional Traffic is fine for all Lines",
		want: withDefaults(func(s *entity.Set) {
			s.Lines = entity.AllLines()
			s.IsMultiLine = true
			s.IsAllLines = true
		}),
	}, {
		desc: "numbered steps with user and network sides",
		in: "1. Configure DUT with User Side VSI with VLAN 100 on Line1\n" +
			"2. Configure DUT with Network Side VSI with VLAN 200 on Uplink1\n" +
			"3. Send Upstream Traffic with VLAN100 and PBIT 5\n" +
			"4. Send Downstream Traffic with VLAN200 and PBIT 7",
		want: withDefaults(func(s *entity.Set) {
			s.UserVLANs = []int{100}
			s.NetworkVLANs = []int{200}
			s.UserPBits = []int{5}
			s.NetworkPBits = []int{7}
		}),
	}, {
		desc: "discretized lines",
		in:   "Configure DUT for a service with 1:1 Forwarder for first 8 lines and N:1 Forwarder for remaining 8 lines",
		want: withDefaults(func(s *entity.Set) {
			s.Lines = entity.AllLines()
			s.IsMultiLine = true
			s.IsAllLines = true
			for l := 1; l <= 16; l++ {
				s.LineForwarderMap[l] = entity.NToOne
				if l <= 8 {
					s.LineForwarderMap[l] = entity.OneToOne
				}
			}
		}),
	}, {
		desc: "discretized lines without forwarder keyword",
		in:   "Configure DUT so that the first 8 lines are 1:1, remaining are N:1",
		want: withDefaults(func(s *entity.Set) {
			s.Lines = entity.AllLines()
			s.IsMultiLine = true
			s.IsAllLines = true
			s.LineForwarderMap = splitLines(8, entity.OneToOne, entity.NToOne)
		}),
	}, {
		desc: "discretized lines, remaining first",
		in:   "Remaining lines are N:1 while the first 4 lines are 1:1",
		want: withDefaults(func(s *entity.Set) {
			s.Lines = entity.AllLines()
			s.IsMultiLine = true
			s.IsAllLines = true
			s.LineForwarderMap = splitLines(4, entity.OneToOne, entity.NToOne)
		}),
	}, {
		desc: "discretized lines, n:1 first group",
		in:   "Remaining lines use 1:1 and the first 12 lines use N:1",
		want: withDefaults(func(s *entity.Set) {
			s.Lines = entity.AllLines()
			s.IsMultiLine = true
			s.IsAllLines = true
			s.LineForwarderMap = splitLines(12, entity.NToOne, entity.OneToOne)
		}),
	}, {
		desc: "vlan identifier on line 10 with ipv6",
		in: "1. Configure DUT with User Side VSI with VLAN Identifier 110 for line 10\n" +
			"2. Configure DUT with Network Side VSI with VLAN 401 on Uplink1\n" +
			"3. Validate bi-directional Ipv6 Traffic",
		want: withDefaults(func(s *entity.Set) {
			s.UserVLANs = []int{110}
			s.NetworkVLANs = []int{401}
			s.Lines = []int{10}
			s.Protocols = []entity.Protocol{entity.IPv6}
		}),
	}, {
		desc: "untagged",
		in:   "Configure DUT for a service with N:1 forwarder for the line 1 with Untagged VLAN ID.",
		want: withDefaults(func(s *entity.Set) { s.IsUntagged = true }),
	}, {
		desc: "without translation is not untagged",
		in:   "Configure a 1:1 service without VLAN translation on untagged line 2",
		want: withDefaults(func(s *entity.Set) {
			oneToOne(s)
			s.HasVLANTranslation = entity.False
			s.Lines = []int{2}
		}),
	}, {
		desc: "with translation on listed lines",
		in:   "Configure 1:1 service with VLAN translation on lines 1, 2 and 3",
		want: withDefaults(func(s *entity.Set) {
			oneToOne(s)
			s.HasVLANTranslation = entity.True
			s.Lines = []int{1, 2, 3}
			s.SpecificLines = []int{1, 2, 3}
			s.IsMultiLine = true
		}),
	}, {
		desc: "any two lines",
		in:   "Configure N:1 service on any 2 lines",
		want: withDefaults(func(s *entity.Set) {
			s.Lines = []int{5, 13}
			s.AnyLinesScenario = true
			s.IsMultiLine = true
		}),
	}, {
		desc: "line range",
		in:   "Configure N:1 forwarder for lines 3 to 6",
		want: withDefaults(func(s *entity.Set) {
			s.Lines = []int{3, 4, 5, 6}
			s.IsMultiLine = true
		}),
	}, {
		desc: "separate line mentions",
		in:   "Configure VSI on line 3. Send traffic on line 7",
		want: withDefaults(func(s *entity.Set) {
			s.Lines = []int{3, 7}
			s.SpecificLines = []int{3, 7}
			s.IsMultiLine = true
		}),
	}, {
		desc: "three services on two lines",
		in:   "Create three 1:1 services for line 1 and line 2 with different pbit",
		want: withDefaults(func(s *entity.Set) {
			oneToOne(s)
			s.IsMultiService = true
			s.ServiceCount = 3
			s.Lines = []int{1, 2}
			s.SpecificLines = []int{1, 2}
			s.ServicesPerLine = map[int]int{1: 3, 2: 3}
			s.DifferentPBitPerService = true
			s.IsMultiLine = true
		}),
	}, {
		desc: "services of type per line",
		in:   "Configure 8 Services of type N:1 per line 2",
		want: withDefaults(func(s *entity.Set) {
			s.IsMultiService = true
			s.ServiceCount = 8
			s.Lines = []int{2}
			s.ServicesPerLine = map[int]int{2: 8}
		}),
	}, {
		desc: "user and network vlans",
		in:   "Configure user VLAN 300 and network service on VLAN 400",
		want: withDefaults(func(s *entity.Set) {
			s.UserVLANs = []int{300}
			s.NetworkVLANs = []int{400}
			s.BothUserNetworkMentioned = true
		}),
	}, {
		desc: "same vlan on both sides",
		in:   "Configure user and network service on VLAN 500",
		want: withDefaults(func(s *entity.Set) {
			s.UserVLANs = []int{500}
			s.NetworkVLANs = []int{500}
			s.BothUserNetworkMentioned = true
			s.ExplicitUserNetworkSameVLAN = true
		}),
	}, {
		desc: "unclassified vlan of 1:1 service on both sides",
		in:   "Configure 1:1 service with VLAN 300",
		want: withDefaults(func(s *entity.Set) {
			oneToOne(s)
			s.UserVLANs = []int{300}
			s.NetworkVLANs = []int{300}
		}),
	}, {
		desc: "unclassified vlans of N:1 service alternate",
		in:   "Configure N:1 service with VLAN 300 and VLAN 400",
		want: withDefaults(func(s *entity.Set) {
			s.UserVLANs = []int{300}
			s.NetworkVLANs = []int{400}
		}),
	}, {
		desc: "direction keywords after the vlan",
		in:   "Configure N:1 service with VLAN 300 for upstream and VLAN 400 for downstream",
		want: withDefaults(func(s *entity.Set) {
			s.UserVLANs = []int{300}
			s.NetworkVLANs = []int{400}
		}),
	}, {
		desc: "pbit sweep",
		in:   "Send traffic with all pbits",
		want: withDefaults(func(s *entity.Set) {
			s.AllPBitRange = true
			s.UserPBits = entity.AllPBits()
			s.NetworkPBits = entity.AllPBits()
		}),
	}, {
		desc: "protocols",
		in:   "Send IPv6 over PPPoE traffic",
		want: withDefaults(func(s *entity.Set) {
			s.Protocols = []entity.Protocol{entity.IPv6, entity.PPPoE}
		}),
	}, {
		desc: "dedicated resources break a tie",
		in:   "Configure a dedicated service per subscriber",
		want: withDefaults(oneToOne),
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := Extract(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract(%q): did not get expected entities, -want,+got:\n%s", tt.in, diff)
			}
		})
	}
}

func TestExtractShape(t *testing.T) {
	inputs := []string{
		"",
		"Configure 3 services for all lines",
		"Configure 1:1 service with VLAN translation for all lines",
		"untagged n:1 service on line 4 and line 9 with pbit 3",
		"Configure DUT with Network Side VSI with VLAN 4095 on Uplink 70",
	}
	for _, in := range inputs {
		s := Extract(in)
		if s.IsMultiLine != (len(s.Lines) > 1) {
			t.Errorf("Extract(%q): is_multi_line %v with lines %v", in, s.IsMultiLine, s.Lines)
		}
		if s.IsAllLines != (len(s.Lines) == entity.MaxLines) {
			t.Errorf("Extract(%q): is_all_lines %v with lines %v", in, s.IsAllLines, s.Lines)
		}
		if s.IsMultiService && s.ServiceCount < 2 {
			t.Errorf("Extract(%q): multi-service with count %d", in, s.ServiceCount)
		}
		if s.HasVLANTranslation == entity.False && s.IsUntagged {
			t.Errorf("Extract(%q): untagged without translation", in)
		}
		for _, v := range append(append([]int{}, s.UserVLANs...), s.NetworkVLANs...) {
			if !entity.ValidVLAN(v) {
				t.Errorf("Extract(%q): invalid VLAN %d", in, v)
			}
		}
		if len(s.Uplinks) == 0 || len(s.UserPBits) == 0 || len(s.NetworkPBits) == 0 {
			t.Errorf("Extract(%q): missing defaults in %+v", in, s)
		}
	}
}
