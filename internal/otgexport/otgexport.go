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

// Package otgexport converts test traffic into an Open Traffic Generator
// configuration so that it can be pushed to an OTG-compatible ATE.
package otgexport

import (
	"fmt"
	"strings"

	log "github.com/golang/glog"
	"github.com/open-traffic-generator/snappi/gosnappi"
	"github.com/openconfig/vsigen/internal/entity"
	"github.com/openconfig/vsigen/internal/packet"
	"github.com/openconfig/vsigen/internal/traffic"
)

// OTG port names of the two traffic equipments.
const (
	UserPort    = "user"
	NetworkPort = "network"

	// FrameSize is the fixed size of every generated frame.
	FrameSize = 128
)

/*
Flow holds the parameters of one OTG flow.

	top := gosnappi.NewConfig()
	f := &Flow{
		Name:          "upstream-line1-1",
		TxPort:        UserPort,
		RxPort:        NetworkPort,
		FrameSize:     FrameSize,
		PacketsToSend: 100,
		EthFlow:       &EthFlowParams{SrcMAC: "99:02:03:04:01:11", DstMAC: "98:0A:0B:0C:01:0C"},
		VLANFlow:      &VLANFlowParams{VLANID: 100, Priorities: []uint32{0}},
	}
	f.CreateFlow(top)
	f.AddEthHeader()
	f.AddVLANHeader()
*/
type Flow struct {
	Name          string
	TxPort        string
	RxPort        string
	FrameSize     uint32
	PacketsToSend uint32
	EthFlow       *EthFlowParams
	VLANFlow      *VLANFlowParams
	IPv6Flow      *IPv6FlowParams
	flow          gosnappi.Flow
}

// EthFlowParams is a struct to hold Ethernet traffic parameters.
type EthFlowParams struct {
	SrcMAC string
	DstMAC string
}

// VLANFlowParams is a struct to hold 802.1Q traffic parameters. Several
// priorities make the flow cycle through them.
type VLANFlowParams struct {
	VLANID     uint32
	Priorities []uint32
}

// IPv6FlowParams is a struct to hold IPv6 traffic parameters.
type IPv6FlowParams struct {
	IPv6Src  string
	IPv6Dst  string
	HopLimit uint32
}

// CreateFlow defines the Tx and Rx ports of the flow in top.
func (f *Flow) CreateFlow(top gosnappi.Config) {
	f.flow = top.Flows().Add().SetName(f.Name)
	f.flow.Metrics().SetEnable(true)
	f.flow.TxRx().Port().SetTxName(f.TxPort).SetRxNames([]string{f.RxPort})
	if f.FrameSize != 0 {
		f.flow.Size().SetFixed(f.FrameSize)
	}
	if f.PacketsToSend != 0 {
		f.flow.Duration().FixedPackets().SetPackets(f.PacketsToSend)
	}
}

// AddEthHeader adds an Ethernet header to the flow.
func (f *Flow) AddEthHeader() {
	eth := f.flow.Packet().Add().Ethernet()
	eth.Src().SetValue(f.EthFlow.SrcMAC)
	eth.Dst().SetValue(f.EthFlow.DstMAC)
}

// AddVLANHeader adds an 802.1Q header to the flow.
func (f *Flow) AddVLANHeader() {
	vlan := f.flow.Packet().Add().Vlan()
	vlan.Id().SetValue(f.VLANFlow.VLANID)
	if len(f.VLANFlow.Priorities) > 1 {
		vlan.Priority().SetValues(f.VLANFlow.Priorities)
	} else if len(f.VLANFlow.Priorities) == 1 {
		vlan.Priority().SetValue(f.VLANFlow.Priorities[0])
	}
}

// AddIPv6Header adds an IPv6 header to the flow.
func (f *Flow) AddIPv6Header() {
	ipv6Hdr := f.flow.Packet().Add().Ipv6()
	ipv6Hdr.Src().SetValue(f.IPv6Flow.IPv6Src)
	ipv6Hdr.Dst().SetValue(f.IPv6Flow.IPv6Dst)
	if f.IPv6Flow.HopLimit != 0 {
		ipv6Hdr.HopLimit().SetValue(f.IPv6Flow.HopLimit)
	}
}

// Flows returns one flow per packet of b.
func Flows(b *traffic.Block) []*Flow {
	var flows []*Flow
	for _, d := range b.Directions() {
		upstream := d.Sender == traffic.UserEqpt
		tx, rx := UserPort, NetworkPort
		if !upstream {
			tx, rx = rx, tx
		}
		for _, p := range d.Packets {
			f := &Flow{
				Name:          fmt.Sprintf("%s-line%d-%d", strings.ToLower(d.Name), p.Line, p.Ordinal),
				TxPort:        tx,
				RxPort:        rx,
				FrameSize:     FrameSize,
				PacketsToSend: uint32(d.NumPackets),
				EthFlow:       &EthFlowParams{SrcMAC: p.SrcMAC, DstMAC: p.DstMAC},
			}
			if !p.Untagged {
				v := &VLANFlowParams{VLANID: uint32(p.VLAN)}
				for _, pb := range p.PBits {
					v.Priorities = append(v.Priorities, uint32(pb))
				}
				f.VLANFlow = v
			}
			for _, proto := range p.Protocols {
				switch proto {
				case entity.IPv6:
					src, dst := packet.IPv6Addresses(p, upstream)
					f.IPv6Flow = &IPv6FlowParams{IPv6Src: src.String(), IPv6Dst: dst.String(), HopLimit: 64}
				case entity.PPPoE:
					log.Warningf("otgexport: flow %s: PPPoE session headers are not exported", f.Name)
				}
			}
			flows = append(flows, f)
		}
	}
	return flows
}

// Config returns the OTG configuration of b: two ports and one flow per
// packet.
func Config(b *traffic.Block) gosnappi.Config {
	top := gosnappi.NewConfig()
	top.Ports().Add().SetName(UserPort)
	top.Ports().Add().SetName(NetworkPort)
	for _, f := range Flows(b) {
		f.CreateFlow(top)
		f.AddEthHeader()
		if f.VLANFlow != nil {
			f.AddVLANHeader()
		}
		if f.IPv6Flow != nil {
			f.AddIPv6Header()
		}
	}
	return top
}

// JSON returns the OTG configuration of b in JSON.
func JSON(b *traffic.Block) (string, error) {
	js, err := Config(b).Marshal().ToJson()
	if err != nil {
		return "", fmt.Errorf("cannot marshal OTG config: %w", err)
	}
	return js, nil
}
