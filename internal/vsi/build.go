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

	log "github.com/golang/glog"
	"github.com/openconfig/vsigen/internal/entity"
)

// builder accumulates the VSIs of one configuration.
type builder struct {
	set *entity.Set
	cfg *Config
}

// Build synthesizes the configuration described by s. s must be finalized.
func Build(s *entity.Set) *Config {
	b := &builder{set: s, cfg: &Config{Kind: Classify(s)}}
	log.V(2).Infof("vsi: building %s configuration for lines %v", b.cfg.Kind, s.Lines)
	switch b.cfg.Kind {
	case MultiService:
		b.multiService()
	case Discretized:
		b.discretized()
	case SingleLine:
		b.singleLine()
	default:
		b.multiLine()
	}
	return b.cfg
}

func (b *builder) addUser(line, vlan int, pbits []int) *VSI {
	v := &VSI{
		Side:     User,
		Index:    len(b.cfg.Users) + 1,
		VLAN:     vlan,
		PBits:    pbits,
		Untagged: b.set.IsUntagged,
		Line:     line,
	}
	b.cfg.Order = append(b.cfg.Order, Decl{Kind: UserDecl, Pos: len(b.cfg.Users)})
	b.cfg.Users = append(b.cfg.Users, v)
	return v
}

func (b *builder) addNetwork(vlan int, pbits []int) *VSI {
	v := &VSI{
		Side:     Network,
		Index:    len(b.cfg.Networks) + 1,
		VLAN:     vlan,
		PBits:    pbits,
		Untagged: b.set.IsUntagged,
		Uplink:   b.set.Uplinks[0],
	}
	b.cfg.Order = append(b.cfg.Order, Decl{Kind: NetworkDecl, Pos: len(b.cfg.Networks)})
	b.cfg.Networks = append(b.cfg.Networks, v)
	return v
}

func (b *builder) addForwarder(label string, t entity.ForwarderType, assign bool) {
	b.cfg.Order = append(b.cfg.Order, Decl{Kind: ForwarderDecl, Pos: len(b.cfg.Forwarders)})
	b.cfg.Forwarders = append(b.cfg.Forwarders, Forwarder{Label: label, Type: t, Assign: assign})
}

func numbered(i int) string {
	return fmt.Sprintf("Forwarder-%d", i)
}

// userPBits returns the priorities of the i-th user VSI.
func (b *builder) userPBits(i int) []int {
	if b.set.AllPBitRange {
		return entity.AllPBits()
	}
	return []int{at(b.set.UserPBits, i)}
}

func (b *builder) networkPBits(i int) []int {
	if b.set.AllPBitRange {
		return entity.AllPBits()
	}
	return []int{at(b.set.NetworkPBits, i)}
}

// at returns l[i], or l[0] when l is shorter. l must not be empty.
func at(l []int, i int) int {
	if i < len(l) {
		return l[i]
	}
	return l[0]
}

// explicit returns the i-th explicitly requested VLAN, if any.
func explicit(vlans []int, i int) (int, bool) {
	if len(vlans) == 0 {
		return 0, false
	}
	return at(vlans, i), true
}

func (b *builder) singleLine() {
	s := b.set
	line := s.Lines[0]

	uv, ok := explicit(s.UserVLANs, 0)
	switch {
	case ok:
	case s.ForwarderType == entity.OneToOne:
		uv = entity.OneToOneVLAN
	case line > 1:
		uv = entity.UserVLANBase
	default:
		uv = entity.SingleLineVLAN
	}

	nv, ok := explicit(s.NetworkVLANs, 0)
	switch {
	case ok:
	case s.ForwarderType == entity.OneToOne && s.HasVLANTranslation != entity.True:
		nv = uv
	default:
		nv = entity.NetworkVLANBase + line
	}

	b.addUser(line, uv, b.userPBits(0)).Peer = 1
	b.addNetwork(nv, b.networkPBits(0))
	b.addForwarder("Forwarder", s.ForwarderType, true)
}

// multiLine covers the multi-line, all-lines and any-lines scenarios.
func (b *builder) multiLine() {
	s := b.set
	anyLines := s.AnyLinesScenario

	for i, line := range s.Lines {
		uv, ok := explicit(s.UserVLANs, i)
		switch {
		case anyLines:
			uv = entity.AnyLinesUserVLAN
		case !ok:
			uv = entity.UserVLANBase + i
		}
		b.addUser(line, uv, b.userPBits(i))
	}

	if s.ForwarderType == entity.NToOne {
		nv, ok := explicit(s.NetworkVLANs, 0)
		switch {
		case anyLines:
			nv = entity.AnyLinesNetworkVLAN
		case !ok:
			nv = entity.NetworkVLANBase
		}
		b.addNetwork(nv, b.networkPBits(0))
		for _, u := range b.cfg.Users {
			u.Peer = 1
		}
		b.addForwarder("Forwarder", entity.NToOne, true)
		return
	}

	for i, u := range b.cfg.Users {
		nv, ok := explicit(s.NetworkVLANs, i)
		switch {
		case anyLines:
			nv = entity.AnyLinesNetworkVLAN
		case ok:
		case s.HasVLANTranslation == entity.True:
			nv = entity.TranslatedVLANBase + i
		default:
			nv = u.VLAN
		}
		u.Peer = b.addNetwork(nv, b.networkPBits(i)).Index
		b.addForwarder(numbered(i+1), entity.OneToOne, false)
	}
}

// discretized gives each 1:1 line its own network VSI and all N:1 lines one
// shared network VSI.
func (b *builder) discretized() {
	s := b.set
	for i, line := range s.Lines {
		uv, ok := explicit(s.UserVLANs, i)
		if !ok {
			uv = entity.UserVLANBase + i
		}
		b.addUser(line, uv, b.userPBits(i))
	}

	shared := 0
	for i, u := range b.cfg.Users {
		t, ok := s.LineForwarderMap[u.Line]
		if !ok {
			t = s.ForwarderType
		}
		if t == entity.OneToOne {
			n := b.addNetwork(entity.NetworkVLANBase+u.Line, b.networkPBits(i))
			u.Peer = n.Index
			b.addForwarder(numbered(n.Index), entity.OneToOne, false)
			continue
		}
		if shared == 0 {
			first := u.Line
			if group := s.LinesOf(entity.NToOne); len(group) > 0 {
				first = group[0]
			}
			n := b.addNetwork(entity.NetworkVLANBase+first, b.networkPBits(i))
			shared = n.Index
			b.addForwarder(numbered(n.Index), entity.NToOne, false)
		}
		u.Peer = shared
	}
}

// multiService creates service_count services on each target line. A single
// line gets one forwarder per service; several lines share one network VSI
// per service.
func (b *builder) multiService() {
	s := b.set
	count, t := s.ServiceCount, s.ServiceType

	userBase := entity.UserVLANBase
	if v, ok := explicit(s.UserVLANs, 0); ok && v+count-1 <= entity.MaxVLAN {
		userBase = v
	}
	networkBase := userBase
	if v, ok := explicit(s.NetworkVLANs, 0); ok && v+count-1 <= entity.MaxVLAN {
		networkBase = v
	}

	for idx := 0; idx < count; idx++ {
		pbits := b.servicePBits(idx)
		var users []*VSI
		for _, line := range s.Lines {
			users = append(users, b.addUser(line, userBase+idx, pbits))
		}
		n := b.addNetwork(networkBase+idx, pbits)
		for _, u := range users {
			u.Peer = n.Index
		}
		switch {
		case len(s.Lines) > 1 || idx < count-1:
			b.addForwarder(numbered(idx+1), t, false)
		default:
			b.addForwarder("Forwarder", t, false)
		}
	}
}

func (b *builder) servicePBits(idx int) []int {
	switch {
	case b.set.AllPBitRange:
		return entity.AllPBits()
	case b.set.DifferentPBitPerService:
		return []int{entity.ServicePBit(idx)}
	}
	return []int{b.set.UserPBits[0]}
}
