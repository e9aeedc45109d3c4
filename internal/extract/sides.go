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
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/openconfig/vsigen/internal/entity"
)

type side int

const (
	unknownSide side = iota
	userSide
	networkSide
)

var sideKeywords = []struct {
	re   *regexp.Regexp
	side side
}{
	{userSideRE, userSide},
	{networkSideRE, networkSide},
}

// mention is a number found in the text and the offset of its first digit.
type mention struct {
	value int
	pos   int
}

// mentions returns the distinct numbers captured by the first group of res,
// in order of first appearance. A group may hold a list such as "100, 200
// and 300".
func mentions(res []*regexp.Regexp, text string) []mention {
	var all []mention
	for _, re := range res {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			g := text[loc[2]:loc[3]]
			for _, d := range digitRE.FindAllStringIndex(g, -1) {
				all = append(all, mention{value: atoi(g[d[0]:d[1]]), pos: loc[2] + d[0]})
			}
		}
	}
	slices.SortStableFunc(all, func(a, b mention) int { return cmp.Compare(a.pos, b.pos) })

	var out []mention
	for _, m := range all {
		if !slices.ContainsFunc(out, func(o mention) bool { return o.value == m.value }) {
			out = append(out, m)
		}
	}
	return out
}

// sideAt classifies the number at pos by the side keywords of its clause,
// falling back to its sentence.
func sideAt(text string, pos int) side {
	start, end := clauseBounds(text, pos)
	if s := nearestSide(text[start:end], pos-start); s != unknownSide {
		return s
	}
	start, end = sentenceBounds(text, pos)
	return nearestSide(text[start:end], pos-start)
}

func clauseBounds(text string, pos int) (int, int) {
	start, end := 0, len(text)
	for _, loc := range clauseSepRE.FindAllStringIndex(text, -1) {
		switch {
		case loc[1] <= pos:
			start = loc[1]
		case loc[0] >= pos:
			return start, loc[0]
		}
	}
	return start, end
}

func sentenceBounds(text string, pos int) (int, int) {
	start, end := strings.LastIndexByte(text[:pos], '.')+1, len(text)
	if i := strings.IndexByte(text[pos:], '.'); i >= 0 {
		end = pos + i
	}
	return start, end
}

// nearestSide returns the side of the closest keyword before pos, or of the
// closest keyword after it when none precedes.
func nearestSide(seg string, pos int) side {
	best, bestDist := unknownSide, -1
	for _, kw := range sideKeywords {
		for _, loc := range kw.re.FindAllStringIndex(seg, -1) {
			if d := pos - loc[1]; loc[1] <= pos && (bestDist < 0 || d < bestDist) {
				best, bestDist = kw.side, d
			}
		}
	}
	if best != unknownSide {
		return best
	}
	for _, kw := range sideKeywords {
		for _, loc := range kw.re.FindAllStringIndex(seg, -1) {
			if d := loc[0] - pos; loc[0] >= pos && (bestDist < 0 || d < bestDist) {
				best, bestDist = kw.side, d
			}
		}
	}
	return best
}

// vlans collects VLAN mentions and assigns each to the user or network side.
// Unclassified VLANs of a transparent 1:1 service belong to both sides;
// otherwise they alternate to keep both lists balanced.
func (e *extraction) vlans() {
	ft, _ := countForwarder(e.text)
	transparent := ft == entity.OneToOne && e.set.HasVLANTranslation != entity.True
	s := e.set
	for _, m := range mentions(vlanPatterns, e.text) {
		if !entity.ValidVLAN(m.value) {
			continue
		}
		switch sideAt(e.text, m.pos) {
		case userSide:
			s.UserVLANs = append(s.UserVLANs, m.value)
		case networkSide:
			s.NetworkVLANs = append(s.NetworkVLANs, m.value)
		default:
			switch {
			case transparent:
				s.UserVLANs = append(s.UserVLANs, m.value)
				s.NetworkVLANs = append(s.NetworkVLANs, m.value)
			case len(s.UserVLANs) <= len(s.NetworkVLANs):
				s.UserVLANs = append(s.UserVLANs, m.value)
			default:
				s.NetworkVLANs = append(s.NetworkVLANs, m.value)
			}
		}
		e.found = true
	}
}

func (e *extraction) pbits() {
	s := e.set
	if matchAny(differentPBitREs, e.text) {
		s.DifferentPBitPerService = true
		e.found = true
	}
	if matchAny(allPBitREs, e.text) {
		s.AllPBitRange = true
		e.found = true
		return
	}
	for _, m := range mentions(pbitPatterns, e.text) {
		if !entity.ValidPBit(m.value) {
			continue
		}
		switch sideAt(e.text, m.pos) {
		case userSide:
			s.UserPBits = append(s.UserPBits, m.value)
		case networkSide:
			s.NetworkPBits = append(s.NetworkPBits, m.value)
		default:
			if len(s.UserPBits) <= len(s.NetworkPBits) {
				s.UserPBits = append(s.UserPBits, m.value)
			} else {
				s.NetworkPBits = append(s.NetworkPBits, m.value)
			}
		}
		e.found = true
	}
}
