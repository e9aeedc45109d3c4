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

package vsi

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/openconfig/vsigen/internal/entity"
)

func entities(f func(s *entity.Set)) *entity.Set {
	s := entity.Default()
	f(s)
	s.Finalize()
	return s
}

func lines(l ...string) string {
	return strings.Join(append([]string{"Entity1 = DUT", "Entity1 Keywords ="}, l...), "\n")
}

func TestRender(t *testing.T) {
	tests := []struct {
		desc string
		in   *entity.Set
		want string
	}{{
		desc: "bare 1:1 single line",
		in:   entities(func(s *entity.Set) { s.ForwarderType = entity.OneToOne }),
		want: lines(
			"UserVSI-1 = VLAN=700, PBIT=0",
			"UserVSI-1 Parent = Line1",
			"NetworkVSI-1 = VLAN=700, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder = 1:1",
		),
	}, {
		desc: "N:1 single line",
		in:   entity.Default(),
		want: lines(
			"UserVSI-1 = VLAN=100, PBIT=0",
			"UserVSI-1 Parent = Line1",
			"NetworkVSI-1 = VLAN=1001, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder = N:1",
		),
	}, {
		desc: "N:1 on a higher line",
		in:   entities(func(s *entity.Set) { s.Lines = []int{3}; s.Uplinks = []int{2} }),
		want: lines(
			"UserVSI-1 = VLAN=101, PBIT=0",
			"UserVSI-1 Parent = Line3",
			"NetworkVSI-1 = VLAN=1003, PBIT=0",
			"NetworkVSI-1 Parent = Uplink2",
			"Forwarder = N:1",
		),
	}, {
		desc: "untagged",
		in:   entities(func(s *entity.Set) { s.IsUntagged = true }),
		want: lines(
			"UserVSI-1 = VLAN=No, PBIT=No",
			"UserVSI-1 Parent = Line1",
			"NetworkVSI-1 = VLAN=No, PBIT=No",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder = N:1",
		),
	}, {
		desc: "explicit vlans and pbits",
		in: entities(func(s *entity.Set) {
			s.Lines = []int{10}
			s.UserVLANs = []int{110}
			s.NetworkVLANs = []int{401}
			s.UserPBits = []int{5}
			s.NetworkPBits = []int{7}
		}),
		want: lines(
			"UserVSI-1 = VLAN=110, PBIT=5",
			"UserVSI-1 Parent = Line10",
			"NetworkVSI-1 = VLAN=401, PBIT=7",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder = N:1",
		),
	}, {
		desc: "1:1 with translation on a single line",
		in: entities(func(s *entity.Set) {
			s.ForwarderType = entity.OneToOne
			s.HasVLANTranslation = entity.True
		}),
		want: lines(
			"UserVSI-1 = VLAN=700, PBIT=0",
			"UserVSI-1 Parent = Line1",
			"NetworkVSI-1 = VLAN=1001, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder = 1:1",
		),
	}, {
		desc: "multi-line 1:1 transparent",
		in: entities(func(s *entity.Set) {
			s.ForwarderType = entity.OneToOne
			s.Lines = []int{2, 4}
		}),
		want: lines(
			"UserVSI-1 = VLAN=101, PBIT=0",
			"UserVSI-1 Parent = Line2",
			"UserVSI-2 = VLAN=102, PBIT=0",
			"UserVSI-2 Parent = Line4",
			"NetworkVSI-1 = VLAN=101, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder-1 1:1",
			"NetworkVSI-2 = VLAN=102, PBIT=0",
			"NetworkVSI-2 Parent = Uplink1",
			"Forwarder-2 1:1",
		),
	}, {
		desc: "1:1 on lines 5 and 13",
		in: entities(func(s *entity.Set) {
			s.ForwarderType = entity.OneToOne
			s.Lines = []int{5, 13}
		}),
		want: lines(
			"UserVSI-1 = VLAN=101, PBIT=0",
			"UserVSI-1 Parent = Line5",
			"UserVSI-2 = VLAN=102, PBIT=0",
			"UserVSI-2 Parent = Line13",
			"NetworkVSI-1 = VLAN=101, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder-1 1:1",
			"NetworkVSI-2 = VLAN=102, PBIT=0",
			"NetworkVSI-2 Parent = Uplink1",
			"Forwarder-2 1:1",
		),
	}, {
		desc: "multi-line 1:1 with translation",
		in: entities(func(s *entity.Set) {
			s.ForwarderType = entity.OneToOne
			s.HasVLANTranslation = entity.True
			s.Lines = []int{2, 4}
		}),
		want: lines(
			"UserVSI-1 = VLAN=101, PBIT=0",
			"UserVSI-1 Parent = Line2",
			"UserVSI-2 = VLAN=102, PBIT=0",
			"UserVSI-2 Parent = Line4",
			"NetworkVSI-1 = VLAN=1001, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder-1 1:1",
			"NetworkVSI-2 = VLAN=1002, PBIT=0",
			"NetworkVSI-2 Parent = Uplink1",
			"Forwarder-2 1:1",
		),
	}, {
		desc: "any two lines",
		in: entities(func(s *entity.Set) {
			s.Lines = entity.AnyLines()
			s.AnyLinesScenario = true
			s.UserVLANs = []int{300}
		}),
		want: lines(
			"UserVSI-1 = VLAN=201, PBIT=0",
			"UserVSI-1 Parent = Line5",
			"UserVSI-2 = VLAN=201, PBIT=0",
			"UserVSI-2 Parent = Line13",
			"NetworkVSI-1 = VLAN=2001, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder = N:1",
		),
	}, {
		desc: "three services on one line with different pbits",
		in: entities(func(s *entity.Set) {
			s.IsMultiService = true
			s.ServiceCount = 3
			s.ServiceType = entity.OneToOne
			s.ForwarderType = entity.OneToOne
			s.ServicesPerLine = map[int]int{1: 3}
			s.DifferentPBitPerService = true
		}),
		want: lines(
			"UserVSI-1 = VLAN=101, PBIT=0",
			"UserVSI-1 Parent = Line1",
			"NetworkVSI-1 = VLAN=101, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder-1 1:1",
			"UserVSI-2 = VLAN=102, PBIT=2",
			"UserVSI-2 Parent = Line1",
			"NetworkVSI-2 = VLAN=102, PBIT=2",
			"NetworkVSI-2 Parent = Uplink1",
			"Forwarder-2 1:1",
			"UserVSI-3 = VLAN=103, PBIT=5",
			"UserVSI-3 Parent = Line1",
			"NetworkVSI-3 = VLAN=103, PBIT=5",
			"NetworkVSI-3 Parent = Uplink1",
			"Forwarder 1:1",
		),
	}, {
		desc: "two services on two lines",
		in: entities(func(s *entity.Set) {
			s.IsMultiService = true
			s.ServiceCount = 2
			s.ServiceType = entity.NToOne
			s.Lines = []int{1, 2}
			s.ServicesPerLine = map[int]int{1: 2, 2: 2}
		}),
		want: lines(
			"UserVSI-1 = VLAN=101, PBIT=0",
			"UserVSI-1 Parent = Line1",
			"UserVSI-2 = VLAN=101, PBIT=0",
			"UserVSI-2 Parent = Line2",
			"NetworkVSI-1 = VLAN=101, PBIT=0",
			"NetworkVSI-1 Parent = Uplink1",
			"Forwarder-1 N:1",
			"UserVSI-3 = VLAN=102, PBIT=0",
			"UserVSI-3 Parent = Line1",
			"UserVSI-4 = VLAN=102, PBIT=0",
			"UserVSI-4 Parent = Line2",
			"NetworkVSI-2 = VLAN=102, PBIT=0",
			"NetworkVSI-2 Parent = Uplink1",
			"Forwarder-2 N:1",
		),
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := Render(Build(tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render(Build()): did not get expected text, -want,+got:\n%s", diff)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		desc string
		in   *entity.Set
		want Kind
	}{{
		desc: "default",
		in:   entity.Default(),
		want: SingleLine,
	}, {
		desc: "multi-line",
		in:   entities(func(s *entity.Set) { s.Lines = []int{1, 2} }),
		want: MultiLine,
	}, {
		desc: "all lines",
		in:   entities(func(s *entity.Set) { s.Lines = entity.AllLines() }),
		want: AllLines,
	}, {
		desc: "any lines",
		in:   entities(func(s *entity.Set) { s.Lines = entity.AnyLines(); s.AnyLinesScenario = true }),
		want: AnyLines,
	}, {
		desc: "discretized beats all lines",
		in: entities(func(s *entity.Set) {
			s.Lines = entity.AllLines()
			s.LineForwarderMap = map[int]entity.ForwarderType{1: entity.OneToOne}
		}),
		want: Discretized,
	}, {
		desc: "multi-service beats discretized",
		in: entities(func(s *entity.Set) {
			s.IsMultiService = true
			s.ServiceCount = 2
			s.LineForwarderMap = map[int]entity.ForwarderType{1: entity.OneToOne}
		}),
		want: MultiService,
	}}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify(): got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildAllLines(t *testing.T) {
	c := Build(entities(func(s *entity.Set) { s.Lines = entity.AllLines() }))
	if got, want := len(c.Users), entity.MaxLines; got != want {
		t.Fatalf("Build(all lines): got %d user VSIs, want %d", got, want)
	}
	for i, u := range c.Users {
		if u.VLAN != entity.UserVLANBase+i || u.Line != i+1 || u.Peer != 1 {
			t.Errorf("Build(all lines): user VSI %d = %+v", i+1, u)
		}
	}
	if len(c.Networks) != 1 || c.Networks[0].VLAN != entity.NetworkVLANBase {
		t.Errorf("Build(all lines): got network VSIs %+v, want one with VLAN %d", c.Networks, entity.NetworkVLANBase)
	}
	if diff := cmp.Diff([]Forwarder{{Label: "Forwarder", Type: entity.NToOne, Assign: true}}, c.Forwarders); diff != "" {
		t.Errorf("Build(all lines): forwarders -want,+got:\n%s", diff)
	}
}

func TestBuildDiscretized(t *testing.T) {
	c := Build(entities(func(s *entity.Set) {
		s.Lines = entity.AllLines()
		for l := 1; l <= 16; l++ {
			s.LineForwarderMap[l] = entity.NToOne
			if l <= 8 {
				s.LineForwarderMap[l] = entity.OneToOne
			}
		}
	}))
	if got, want := len(c.Networks), 9; got != want {
		t.Fatalf("Build(discretized): got %d network VSIs, want %d", got, want)
	}
	for _, u := range c.Users {
		n := c.PeerOf(u)
		if n == nil {
			t.Fatalf("Build(discretized): user VSI %d has no peer", u.Index)
		}
		wantVLAN := entity.NetworkVLANBase + u.Line
		if u.Line > 8 {
			wantVLAN = entity.NetworkVLANBase + 9
		}
		if n.VLAN != wantVLAN {
			t.Errorf("Build(discretized): line %d network VLAN %d, want %d", u.Line, n.VLAN, wantVLAN)
		}
	}
	want := Forwarder{Label: "Forwarder-9", Type: entity.NToOne}
	if got := c.Forwarders[len(c.Forwarders)-1]; got != want {
		t.Errorf("Build(discretized): last forwarder %v, want %v", got, want)
	}
}

func TestBuildPBitSweep(t *testing.T) {
	c := Build(entities(func(s *entity.Set) { s.AllPBitRange = true }))
	want := "UserVSI-1 = VLAN=100, PBIT=0,1,2,3,4,5,6,7"
	if got := Render(c); !strings.Contains(got, want) {
		t.Errorf("Render(): %q does not contain %q", got, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	sets := []*entity.Set{
		entity.Default(),
		entities(func(s *entity.Set) { s.ForwarderType = entity.OneToOne; s.Lines = []int{1, 5, 9} }),
		entities(func(s *entity.Set) { s.Lines = entity.AllLines(); s.AllPBitRange = true }),
		entities(func(s *entity.Set) {
			s.IsMultiService = true
			s.ServiceCount = 4
			s.DifferentPBitPerService = true
		}),
	}
	for _, s := range sets {
		want := Build(s)
		got := Parse(Render(want))
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Config{}, "Kind")); diff != "" {
			t.Errorf("Parse(Render(%v)): -want,+got:\n%s", want.Kind, diff)
		}
	}
}

func TestParseUntagged(t *testing.T) {
	c := Parse("UserVSI-1 = VLAN=No, PBIT=No\nUserVSI-1 Parent = Line4\nsomething else")
	want := []*VSI{{Index: 1, Untagged: true, Line: 4}}
	if diff := cmp.Diff(want, c.Users); diff != "" {
		t.Errorf("Parse(): -want,+got:\n%s", diff)
	}
}

func TestBuildNoTranslationStaysTagged(t *testing.T) {
	c := Build(entities(func(s *entity.Set) {
		s.ForwarderType = entity.OneToOne
		s.HasVLANTranslation = entity.False
		s.IsUntagged = true
		s.Lines = []int{3, 7}
	}))
	if got, want := len(c.Networks), 2; got != want {
		t.Fatalf("Build(): got %d network VSIs, want %d", got, want)
	}
	for _, u := range c.Users {
		n := c.PeerOf(u)
		if n == nil {
			t.Fatalf("Build(): user VSI %d has no peer", u.Index)
		}
		if u.Untagged || n.Untagged || u.VLAN != n.VLAN {
			t.Errorf("Build(): user VSI %+v and network VSI %+v, want the same tagged VLAN", u, n)
		}
	}
	if got := Render(c); strings.Contains(got, untaggedText) {
		t.Errorf("Render(): got %q, want no untagged VSIs", got)
	}
}

func TestRenderWithoutOrder(t *testing.T) {
	c := &Config{
		Users:      []*VSI{{Index: 1, VLAN: 10, PBits: []int{0}, Line: 1, Peer: 1}},
		Networks:   []*VSI{{Side: Network, Index: 1, VLAN: 20, PBits: []int{0}, Uplink: 1}},
		Forwarders: []Forwarder{{Label: "Forwarder", Type: entity.NToOne, Assign: true}},
	}
	want := lines(
		"UserVSI-1 = VLAN=10, PBIT=0",
		"UserVSI-1 Parent = Line1",
		"NetworkVSI-1 = VLAN=20, PBIT=0",
		"NetworkVSI-1 Parent = Uplink1",
		"Forwarder = N:1",
	)
	if diff := cmp.Diff(want, Render(c)); diff != "" {
		t.Errorf("Render(): -want,+got:\n%s", diff)
	}
}
