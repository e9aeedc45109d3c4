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

// Package packet renders traffic descriptions as Ethernet frames that can be
// replayed by a software traffic generator or inspected in a capture.
package packet

import (
	"fmt"
	"io"
	"net"
	"net/netip"
	"slices"
	"time"

	log "github.com/golang/glog"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/openconfig/vsigen/internal/entity"
	"github.com/openconfig/vsigen/internal/traffic"
)

const (
	// EthernetTypeTest is the local experimental EtherType used for frames
	// that carry no upper-layer protocol.
	EthernetTypeTest layers.EthernetType = 0x88b5
	// ipProtocolTest is the experimental IP protocol used under PPPoE when no
	// IPv6 header was requested.
	ipProtocolTest layers.IPProtocol = 253
	// SessionID is the PPPoE session of every frame.
	SessionID uint16 = 0x0001

	payloadSize = 32
	snapLen     = 65536
)

var (
	userPrefix    = netip.MustParseAddr("2001:db8:1::")
	networkPrefix = netip.MustParseAddr("2001:db8:2::")
	userIPv4      = net.IPv4(198, 18, 1, 0).To4()
	networkIPv4   = net.IPv4(198, 18, 2, 0).To4()
)

// Frame is a serialized packet and the descriptor it was built from.
type Frame struct {
	Packet *traffic.Packet
	// PBit is the priority of this frame, one of Packet.PBits.
	PBit int
	Data []byte
}

// Frames serializes every packet of d. A packet with a PBIT sweep yields one
// frame per priority.
func Frames(d *traffic.Direction) ([]*Frame, error) {
	upstream := d.Sender == traffic.UserEqpt
	var frames []*Frame
	for _, p := range d.Packets {
		pbits := p.PBits
		if p.Untagged || len(pbits) == 0 {
			pbits = []int{0}
		}
		for _, pbit := range pbits {
			hdrStack, err := headers(p, pbit, upstream)
			if err != nil {
				return nil, fmt.Errorf("packet %d of %s: %w", p.Ordinal, d.Name, err)
			}
			buf := gopacket.NewSerializeBuffer()
			opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
			if err := gopacket.SerializeLayers(buf, opts, hdrStack...); err != nil {
				return nil, fmt.Errorf("cannot serialize packet %d of %s: %w", p.Ordinal, d.Name, err)
			}
			frames = append(frames, &Frame{Packet: p, PBit: pbit, Data: buf.Bytes()})
		}
	}
	return frames, nil
}

// headers builds the header stack of p: Ethernet, an optional 802.1Q tag,
// optional PPPoE session and PPP headers, an optional IPv6 header and a
// fixed payload.
func headers(p *traffic.Packet, pbit int, upstream bool) ([]gopacket.SerializableLayer, error) {
	src, err := net.ParseMAC(p.SrcMAC)
	if err != nil {
		return nil, fmt.Errorf("invalid source MAC %q: %w", p.SrcMAC, err)
	}
	dst, err := net.ParseMAC(p.DstMAC)
	if err != nil {
		return nil, fmt.Errorf("invalid destination MAC %q: %w", p.DstMAC, err)
	}

	ipv6, pppoe := hasProtocol(p, entity.IPv6), hasProtocol(p, entity.PPPoE)
	next := EthernetTypeTest
	switch {
	case pppoe:
		next = layers.EthernetTypePPPoESession
	case ipv6:
		next = layers.EthernetTypeIPv6
	}

	eth := &layers.Ethernet{SrcMAC: src, DstMAC: dst, EthernetType: next}
	hdrStack := []gopacket.SerializableLayer{eth}
	if !p.Untagged {
		if !entity.ValidVLAN(p.VLAN) {
			return nil, fmt.Errorf("invalid VLAN %d", p.VLAN)
		}
		eth.EthernetType = layers.EthernetTypeDot1Q
		hdrStack = append(hdrStack, &layers.Dot1Q{
			Priority:       uint8(pbit),
			VLANIdentifier: uint16(p.VLAN),
			Type:           next,
		})
	}

	srcIP, dstIP := IPv6Addresses(p, upstream)
	if pppoe {
		ppp := &layers.PPP{PPPType: layers.PPPTypeIPv6}
		if !ipv6 {
			ppp.PPPType = layers.PPPTypeIPv4
		}
		hdrStack = append(hdrStack,
			&layers.PPPoE{Version: 1, Type: 1, Code: layers.PPPoECodeSession, SessionId: SessionID},
			ppp,
		)
		if !ipv6 {
			src4, dst4 := userIPv4, networkIPv4
			if !upstream {
				src4, dst4 = dst4, src4
			}
			hdrStack = append(hdrStack, &layers.IPv4{
				Version:  4,
				IHL:      5,
				TTL:      64,
				Protocol: ipProtocolTest,
				SrcIP:    src4,
				DstIP:    dst4,
			})
		}
	}
	if ipv6 {
		hdrStack = append(hdrStack, &layers.IPv6{
			Version:    6,
			HopLimit:   64,
			NextHeader: layers.IPProtocolNoNextHeader,
			SrcIP:      srcIP,
			DstIP:      dstIP,
		})
	}
	return append(hdrStack, gopacket.Payload(payload(p.Ordinal))), nil
}

func hasProtocol(p *traffic.Packet, proto entity.Protocol) bool {
	return slices.Contains(p.Protocols, proto)
}

// IPv6Addresses returns the source and destination addresses of p. Each
// side of the DUT has its own /64 and the packet ordinal selects the host.
func IPv6Addresses(p *traffic.Packet, upstream bool) (net.IP, net.IP) {
	user, network := address(userPrefix, p.Ordinal), address(networkPrefix, p.Ordinal)
	if upstream {
		return user, network
	}
	return network, user
}

// address returns the host address of the n-th packet within prefix.
func address(prefix netip.Addr, n int) net.IP {
	a := prefix.As16()
	a[14], a[15] = byte(n>>8), byte(n)
	return net.IP(a[:])
}

func payload(ordinal int) []byte {
	b := make([]byte, payloadSize)
	for i := range b {
		b[i] = byte(ordinal + i)
	}
	return b
}

// WritePCAP writes the frames of every direction of b to w as a pcap file
// with Ethernet link type. It returns the number of frames written.
func WritePCAP(w io.Writer, b *traffic.Block, start time.Time) (int, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(snapLen, layers.LinkTypeEthernet); err != nil {
		return 0, fmt.Errorf("cannot write pcap header: %w", err)
	}
	n := 0
	for _, d := range b.Directions() {
		frames, err := Frames(d)
		if err != nil {
			return n, err
		}
		for _, f := range frames {
			ci := gopacket.CaptureInfo{
				Timestamp:     start.Add(time.Duration(n) * time.Millisecond),
				CaptureLength: len(f.Data),
				Length:        len(f.Data),
			}
			if err := pw.WritePacket(ci, f.Data); err != nil {
				return n, fmt.Errorf("cannot write frame %d: %w", n+1, err)
			}
			n++
		}
	}
	log.V(1).Infof("packet: wrote %d frames", n)
	return n, nil
}
