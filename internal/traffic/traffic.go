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

// Package traffic describes the test traffic that validates a DUT
// configuration: one packet per user VSI in each direction, sent by the test
// equipment on one side of the DUT and received on the other.
package traffic

import (
	"fmt"
	"strings"

	"github.com/openconfig/vsigen/internal/entity"
	"github.com/openconfig/vsigen/internal/vsi"
)

// Equipment is a traffic generator attached to one side of the DUT.
type Equipment struct {
	Entity int
	Role   string
}

var (
	// UserEqpt is attached to the DUT lines.
	UserEqpt = Equipment{Entity: 2, Role: "User Side Traffic Eqpt"}
	// NetworkEqpt is attached to the DUT uplinks.
	NetworkEqpt = Equipment{Entity: 3, Role: "Network Side Traffic Eqpt"}
)

// Packet describes the headers of one test packet.
type Packet struct {
	// Ordinal is the 1-based position of the packet in its direction.
	Ordinal  int
	Line     int
	SrcMAC   string
	DstMAC   string
	VLAN     int
	PBits    []int
	Untagged bool
	// Protocols are the headers following the L2 header.
	Protocols []entity.Protocol
}

// Direction is the traffic sent from one equipment to the other.
type Direction struct {
	Name       string
	Sender     Equipment
	Receiver   Equipment
	NumPackets int
	Packets    []*Packet
}

// Block is the bidirectional traffic of a configuration.
type Block struct {
	Upstream   *Direction
	Downstream *Direction
}

// Directions returns the upstream and downstream directions in order.
func (b *Block) Directions() []*Direction {
	return []*Direction{b.Upstream, b.Downstream}
}

const (
	userMAC    = "99:02:03:04:%s:11"
	networkMAC = "98:0A:0B:0C:%s:0C"
)

// macOctet renders the variable octet of the equipment MACs. Ordinals up to
// 99 read as the packet number; larger ones fall back to hex.
func macOctet(ordinal int) string {
	if ordinal <= 99 {
		return fmt.Sprintf("%02d", ordinal)
	}
	return fmt.Sprintf("%02X", ordinal%256)
}

// Build derives the traffic of c. Upstream packets carry the VLAN and PBIT of
// each user VSI; downstream packets carry those of the network VSI that
// forwards it.
func Build(s *entity.Set, c *vsi.Config) *Block {
	b := &Block{
		Upstream: &Direction{
			Name:       "Upstream",
			Sender:     UserEqpt,
			Receiver:   NetworkEqpt,
			NumPackets: entity.NumPackets,
		},
		Downstream: &Direction{
			Name:       "Downstream",
			Sender:     NetworkEqpt,
			Receiver:   UserEqpt,
			NumPackets: entity.NumPackets,
		},
	}
	for i, u := range c.Users {
		octet := macOctet(i + 1)
		user, network := fmt.Sprintf(userMAC, octet), fmt.Sprintf(networkMAC, octet)

		b.Upstream.Packets = append(b.Upstream.Packets, packet(i+1, u.Line, user, network, u, s))

		n := c.PeerOf(u)
		if n == nil {
			n = u
		}
		b.Downstream.Packets = append(b.Downstream.Packets, packet(i+1, u.Line, network, user, n, s))
	}
	return b
}

func packet(ordinal, line int, src, dst string, v *vsi.VSI, s *entity.Set) *Packet {
	return &Packet{
		Ordinal:   ordinal,
		Line:      line,
		SrcMAC:    src,
		DstMAC:    dst,
		VLAN:      v.VLAN,
		PBits:     v.PBits,
		Untagged:  s.IsUntagged || v.Untagged,
		Protocols: s.Protocols,
	}
}

// VLANText returns the VLAN as rendered, "No" when untagged.
func (p *Packet) VLANText() string {
	if p.Untagged {
		return "No"
	}
	return fmt.Sprint(p.VLAN)
}

// PBitText returns the PBITs as rendered, "No" when untagged.
func (p *Packet) PBitText() string {
	if p.Untagged {
		return "No"
	}
	return vsi.JoinPBits(p.PBits)
}

// Render returns the traffic text of b.
func Render(b *Block) string {
	var out []string
	for i, d := range b.Directions() {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, renderDirection(d)...)
	}
	return strings.Join(out, "\n")
}

func renderDirection(d *Direction) []string {
	out := []string{fmt.Sprintf("Test Eqpt - %s", d.Name)}
	out = append(out, equipment(d.Sender, "Generate", d.NumPackets)...)
	for _, p := range d.Packets {
		if len(d.Packets) > 1 {
			out = append(out, fmt.Sprintf("Packet Line%d L2 Header", p.Line))
		} else {
			out = append(out, "Packet L2 Header")
		}
		out = append(out,
			fmt.Sprintf("Src MAC = %s", p.SrcMAC),
			fmt.Sprintf("Dst MAC = %s", p.DstMAC),
			fmt.Sprintf("VLAN = %s, PBIT = %s", p.VLANText(), p.PBitText()),
		)
		for _, proto := range p.Protocols {
			switch proto {
			case entity.IPv6:
				out = append(out, "L3 Header = Ipv6")
			case entity.PPPoE:
				out = append(out, "Next Header = PPPoE")
			}
		}
	}
	return append(out, equipment(d.Receiver, "Recieve", d.NumPackets)...)
}

func equipment(e Equipment, verb string, n int) []string {
	return []string{
		fmt.Sprintf("Entity%d = %s", e.Entity, e.Role),
		fmt.Sprintf("Entity%d Keywords=", e.Entity),
		fmt.Sprintf("NumPackets To %s = %d", verb, n),
	}
}
