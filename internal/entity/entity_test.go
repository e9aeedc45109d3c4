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

package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	want := &Set{
		UserVLANs:        []int{},
		NetworkVLANs:     []int{},
		Lines:            []int{1},
		LineForwarderMap: map[int]ForwarderType{},
		Uplinks:          []int{1},
		UserPBits:        []int{0},
		NetworkPBits:     []int{0},
		ForwarderType:    NToOne,
		Protocols:        []Protocol{},
		ServiceCount:     1,
		ServiceType:      NToOne,
		ServicesPerLine:  map[int]int{},
		SpecificLines:    []int{},
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default(): did not get expected set, -want,+got:\n%s", diff)
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		desc string
		in   *Set
		want func(*Set)
	}{{
		desc: "out of range values dropped",
		in: &Set{
			UserVLANs:    []int{0, 100, 5000, 100},
			NetworkVLANs: []int{4094, 4095},
			Lines:        []int{17, 3, 0, 3},
			UserPBits:    []int{8, 3},
		},
		want: func(s *Set) {
			s.UserVLANs = []int{100}
			s.NetworkVLANs = []int{4094}
			s.Lines = []int{3}
			s.UserPBits = []int{3}
		},
	}, {
		desc: "vlans keep mention order, lines are sorted",
		in: &Set{
			UserVLANs: []int{300, 100, 300, 200},
			Lines:     []int{4, 2, 4},
			Uplinks:   []int{3, 1},
		},
		want: func(s *Set) {
			s.UserVLANs = []int{300, 100, 200}
			s.Lines = []int{2, 4}
			s.Uplinks = []int{1, 3}
			s.IsMultiLine = true
		},
	}, {
		desc: "derived line flags",
		in:   &Set{Lines: AllLines()},
		want: func(s *Set) {
			s.Lines = AllLines()
			s.IsMultiLine = true
			s.IsAllLines = true
		},
	}, {
		desc: "single service is not multi-service",
		in:   &Set{IsMultiService: true, ServiceCount: 1, ServicesPerLine: map[int]int{1: 1}},
		want: func(*Set) {},
	}, {
		desc: "without translation is never untagged",
		in:   &Set{IsUntagged: true, HasVLANTranslation: False},
		want: func(s *Set) { s.HasVLANTranslation = False },
	}, {
		desc: "pbit sweep",
		in:   &Set{AllPBitRange: true, UserPBits: []int{5}},
		want: func(s *Set) {
			s.AllPBitRange = true
			s.UserPBits = AllPBits()
			s.NetworkPBits = AllPBits()
		},
	}, {
		desc: "protocols ordered",
		in:   &Set{Protocols: []Protocol{PPPoE, IPv6, PPPoE}},
		want: func(s *Set) { s.Protocols = []Protocol{IPv6, PPPoE} },
	}, {
		desc: "service type follows forwarder",
		in:   &Set{ForwarderType: OneToOne},
		want: func(s *Set) {
			s.ForwarderType = OneToOne
			s.ServiceType = OneToOne
		},
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			want := Default()
			tt.want(want)
			got := tt.in
			got.Finalize()
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Finalize(): did not get expected set, -want,+got:\n%s", diff)
			}
		})
	}
}

func TestLinesOf(t *testing.T) {
	s := &Set{LineForwarderMap: map[int]ForwarderType{3: OneToOne, 1: OneToOne, 2: NToOne}}
	if diff := cmp.Diff([]int{1, 3}, s.LinesOf(OneToOne)); diff != "" {
		t.Errorf("LinesOf(1:1): -want,+got:\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, s.LinesOf(NToOne)); diff != "" {
		t.Errorf("LinesOf(N:1): -want,+got:\n%s", diff)
	}
}

func TestTristateJSON(t *testing.T) {
	tests := []struct {
		desc string
		in   Tristate
		want string
	}{
		{desc: "unset", in: Unset, want: "null"},
		{desc: "true", in: True, want: "true"},
		{desc: "false", in: False, want: "false"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("json.Marshal(%v): %v", tt.in, err)
			}
			if got := string(b); got != tt.want {
				t.Errorf("json.Marshal(%v): got %s, want %s", tt.in, got, tt.want)
			}
			var back Tristate
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("json.Unmarshal(%s): %v", b, err)
			}
			if back != tt.in {
				t.Errorf("json.Unmarshal(%s): got %v, want %v", b, back, tt.in)
			}
		})
	}
}

func TestServicePBit(t *testing.T) {
	var got []int
	for i := range 5 {
		got = append(got, ServicePBit(i))
	}
	if diff := cmp.Diff([]int{0, 2, 5, 0, 2}, got); diff != "" {
		t.Errorf("ServicePBit: -want,+got:\n%s", diff)
	}
}
