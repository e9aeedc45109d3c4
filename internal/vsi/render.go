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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/openconfig/vsigen/internal/entity"
)

// Render returns the configuration text of c in declaration order. Lines are
// separated by "\n" and there is no trailing newline.
func Render(c *Config) string {
	out := []string{
		"Entity1 = DUT",
		"Entity1 Keywords =",
	}
	for _, d := range c.order() {
		switch d.Kind {
		case UserDecl:
			out = append(out, vsiLines(c.Users[d.Pos])...)
		case NetworkDecl:
			out = append(out, vsiLines(c.Networks[d.Pos])...)
		case ForwarderDecl:
			out = append(out, c.Forwarders[d.Pos].String())
		}
	}
	return strings.Join(out, "\n")
}

func vsiLines(v *VSI) []string {
	return []string{
		fmt.Sprintf("%s = VLAN=%s, PBIT=%s", v.Name(), v.VLANText(), v.PBitText()),
		fmt.Sprintf("%s Parent = %s", v.Name(), v.Parent()),
	}
}

var (
	vsiRE       = regexp.MustCompile(`^(UserVSI|NetworkVSI)-(\d+) = VLAN=([^,\s]+), PBIT=(\S+)$`)
	parentRE    = regexp.MustCompile(`^(UserVSI|NetworkVSI)-(\d+) Parent = (?:Line|Uplink)(\d+)$`)
	forwarderRE = regexp.MustCompile(`^(Forwarder(?:-\d+)?)( = | )(1:1|N:1)$`)
)

// Parse reads configuration text as produced by Render. Unrecognized lines
// are ignored. The scenario kind is not recovered; declaration order is. Peers are inferred when
// there is a single network VSI or one per user VSI.
func Parse(text string) *Config {
	c := &Config{}
	vsis := map[string]*VSI{}
	get := func(kind, idx string) *VSI {
		key := kind + "-" + idx
		if v, ok := vsis[key]; ok {
			return v
		}
		v := &VSI{Index: atoi(idx)}
		if kind == "NetworkVSI" {
			v.Side = Network
			c.Order = append(c.Order, Decl{Kind: NetworkDecl, Pos: len(c.Networks)})
			c.Networks = append(c.Networks, v)
		} else {
			c.Order = append(c.Order, Decl{Kind: UserDecl, Pos: len(c.Users)})
			c.Users = append(c.Users, v)
		}
		vsis[key] = v
		return v
	}

	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if m := vsiRE.FindStringSubmatch(l); m != nil {
			v := get(m[1], m[2])
			if m[3] == untaggedText || m[4] == untaggedText {
				v.Untagged = true
				continue
			}
			v.VLAN = atoi(m[3])
			for _, p := range strings.Split(m[4], ",") {
				v.PBits = append(v.PBits, atoi(p))
			}
			continue
		}
		if m := parentRE.FindStringSubmatch(l); m != nil {
			v := get(m[1], m[2])
			if v.Side == Network {
				v.Uplink = atoi(m[3])
			} else {
				v.Line = atoi(m[3])
			}
			continue
		}
		if m := forwarderRE.FindStringSubmatch(l); m != nil {
			c.Order = append(c.Order, Decl{Kind: ForwarderDecl, Pos: len(c.Forwarders)})
			c.Forwarders = append(c.Forwarders, Forwarder{
				Label:  m[1],
				Type:   entity.ForwarderType(m[3]),
				Assign: m[2] == " = ",
			})
		}
	}

	switch {
	case len(c.Networks) == 1:
		for _, u := range c.Users {
			u.Peer = 1
		}
	case len(c.Networks) == len(c.Users):
		for i, u := range c.Users {
			u.Peer = i + 1
		}
	}
	return c
}

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
