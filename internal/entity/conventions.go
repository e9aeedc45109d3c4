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

// Numbering conventions of the generated configurations.
const (
	// MaxLines is the number of subscriber lines on the DUT.
	MaxLines = 16
	// MaxVLAN is the highest usable 802.1Q VLAN ID.
	MaxVLAN = 4094
	// MaxUplink is the highest uplink number accepted from a procedure.
	MaxUplink = 64
	// MaxPBit is the highest 802.1p priority.
	MaxPBit = 7
	// MaxServices bounds the number of services per line.
	MaxServices = 64

	// OneToOneVLAN is the VLAN of a bare single-line 1:1 service.
	OneToOneVLAN = 700
	// SingleLineVLAN is the VLAN of a single-line N:1 service on line 1.
	SingleLineVLAN = 100
	// UserVLANBase is the first VLAN of an incrementing per-line or
	// per-service user VLAN sequence.
	UserVLANBase = 101
	// NetworkVLANBase is the shared N:1 network VLAN and the base of the
	// 1000+line network band.
	NetworkVLANBase = 1000
	// TranslatedVLANBase is the first network VLAN of a multi-line 1:1 service
	// with VLAN translation.
	TranslatedVLANBase = 1001
	// AnyLinesUserVLAN and AnyLinesNetworkVLAN are used by "any 2 lines"
	// procedures.
	AnyLinesUserVLAN    = 201
	AnyLinesNetworkVLAN = 2001

	// NumPackets is the packet count of each traffic direction.
	NumPackets = 100
)

var (
	servicePBits = []int{0, 2, 5}
	anyLines     = []int{5, 13}
)

// ServicePBit returns the PBIT of the i-th (0-based) service when every
// service uses a different PBIT.
func ServicePBit(i int) int {
	return servicePBits[i%len(servicePBits)]
}

// AnyLines returns the lines used for an "any 2 lines" procedure.
func AnyLines() []int {
	return append([]int(nil), anyLines...)
}

// AllPBits returns the full PBIT sweep 0..7.
func AllPBits() []int {
	p := make([]int, 0, MaxPBit+1)
	for i := 0; i <= MaxPBit; i++ {
		p = append(p, i)
	}
	return p
}

// AllLines returns lines 1..MaxLines.
func AllLines() []int {
	l := make([]int, 0, MaxLines)
	for i := 1; i <= MaxLines; i++ {
		l = append(l, i)
	}
	return l
}

// ValidVLAN reports whether v is a usable VLAN ID.
func ValidVLAN(v int) bool { return v >= 1 && v <= MaxVLAN }

// ValidLine reports whether l is a DUT line number.
func ValidLine(l int) bool { return l >= 1 && l <= MaxLines }

// ValidUplink reports whether u is an accepted uplink number.
func ValidUplink(u int) bool { return u >= 1 && u <= MaxUplink }

// ValidPBit reports whether p is an 802.1p priority.
func ValidPBit(p int) bool { return p >= 0 && p <= MaxPBit }
