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

// Package vsi synthesizes the DUT configuration of a test procedure: the
// user-side and network-side VSIs and the forwarders that connect them.
//
// Build produces a structured Config from an entity set; Render turns it into
// the line-oriented configuration text and Parse reads such text back.
package vsi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openconfig/vsigen/internal/entity"
)

// Kind is the scenario a configuration is synthesized for.
type Kind int

const (
	SingleLine Kind = iota
	MultiLine
	AllLines
	AnyLines
	Discretized
	MultiService
)

var kindNames = map[Kind]string{
	SingleLine:   "single_line",
	MultiLine:    "multi_line",
	AllLines:     "all_lines",
	AnyLines:     "any_lines",
	Discretized:  "discretized",
	MultiService: "multi_service",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Classify returns the scenario of s. Multi-service takes precedence over
// discretized, which takes precedence over the multi-line kinds.
func Classify(s *entity.Set) Kind {
	switch {
	case s.IsMultiService:
		return MultiService
	case s.Discretized():
		return Discretized
	case s.AnyLinesScenario:
		return AnyLines
	case s.IsAllLines:
		return AllLines
	case s.IsMultiLine:
		return MultiLine
	}
	return SingleLine
}

// Side is the side of the DUT a VSI faces.
type Side int

const (
	User Side = iota
	Network
)

// VSI is a virtual service interface.
type VSI struct {
	Side Side
	// Index is the 1-based position among the VSIs of the same side.
	Index int
	VLAN  int
	// PBits holds one priority, or the full 0..7 sweep.
	PBits    []int
	Untagged bool
	// Line is the parent line of a user VSI.
	Line int
	// Uplink is the parent uplink of a network VSI.
	Uplink int
	// Peer is the index of the network VSI that forwards the traffic of a
	// user VSI, or 0 when unknown.
	Peer int
}

// Name returns the configuration name, e.g. "UserVSI-1".
func (v *VSI) Name() string {
	if v.Side == Network {
		return fmt.Sprintf("NetworkVSI-%d", v.Index)
	}
	return fmt.Sprintf("UserVSI-%d", v.Index)
}

// Parent returns the configuration parent, e.g. "Line5" or "Uplink1".
func (v *VSI) Parent() string {
	if v.Side == Network {
		return fmt.Sprintf("Uplink%d", v.Uplink)
	}
	return fmt.Sprintf("Line%d", v.Line)
}

// VLANText returns the VLAN as rendered, "No" when untagged.
func (v *VSI) VLANText() string {
	if v.Untagged {
		return untaggedText
	}
	return strconv.Itoa(v.VLAN)
}

// PBitText returns the PBITs as rendered, "No" when untagged.
func (v *VSI) PBitText() string {
	if v.Untagged {
		return untaggedText
	}
	return JoinPBits(v.PBits)
}

// JoinPBits renders priorities as a comma separated list.
func JoinPBits(p []int) string {
	s := make([]string, 0, len(p))
	for _, v := range p {
		s = append(s, strconv.Itoa(v))
	}
	return strings.Join(s, ",")
}

const untaggedText = "No"

// Forwarder connects user VSIs to a network VSI.
type Forwarder struct {
	// Label is "Forwarder" or "Forwarder-<n>".
	Label string
	Type  entity.ForwarderType
	// Assign renders the forwarder as "<label> = <type>" instead of
	// "<label> <type>".
	Assign bool
}

func (f Forwarder) String() string {
	if f.Assign {
		return fmt.Sprintf("%s = %s", f.Label, f.Type)
	}
	return fmt.Sprintf("%s %s", f.Label, f.Type)
}

// DeclKind names the list a Decl points into.
type DeclKind int

const (
	UserDecl DeclKind = iota
	NetworkDecl
	ForwarderDecl
)

// Decl is one declaration of the rendered configuration. Pos is the 0-based
// position in Users, Networks or Forwarders.
type Decl struct {
	Kind DeclKind
	Pos  int
}

// Config is the DUT configuration of a procedure.
type Config struct {
	Kind       Kind
	Users      []*VSI
	Networks   []*VSI
	Forwarders []Forwarder
	// Order is the declaration order used by Render. When empty, all user
	// VSIs are rendered first, then network VSIs, then forwarders.
	Order []Decl
}

func (c *Config) order() []Decl {
	if len(c.Order) > 0 {
		return c.Order
	}
	var out []Decl
	for i := range c.Users {
		out = append(out, Decl{Kind: UserDecl, Pos: i})
	}
	for i := range c.Networks {
		out = append(out, Decl{Kind: NetworkDecl, Pos: i})
	}
	for i := range c.Forwarders {
		out = append(out, Decl{Kind: ForwarderDecl, Pos: i})
	}
	return out
}

// PeerOf returns the network VSI forwarding the traffic of u, or nil.
func (c *Config) PeerOf(u *VSI) *VSI {
	if u.Peer < 1 || u.Peer > len(c.Networks) {
		return nil
	}
	return c.Networks[u.Peer-1]
}
