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

// Package extract recovers network-configuration entities (VLANs, lines,
// PBITs, forwarder topology, protocols, service layout) from the free-form
// text of a test procedure.
//
// Extraction is a fixed cascade of rules over the normalized text. It never
// fails: text that matches nothing yields entity.Default().
package extract

import (
	"regexp"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/openconfig/vsigen/internal/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lineBreaks = strings.NewReplacer("&", " and ", "\r\n", " . ", "\n", " . ", "\r", " . ")

// Normalize lower-cases text, turns line breaks into sentence boundaries,
// strips punctuation other than ":,.-" and collapses whitespace.
func Normalize(text string) string {
	s := cases.Lower(language.Und).String(text)
	s = lineBreaks.Replace(s)
	s = stripRE.ReplaceAllString(s, " ")
	s = spaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// extraction holds the state of one pass over a procedure.
type extraction struct {
	text string
	set  *entity.Set
	// found is set once any rule recognizes something.
	found bool
	// vlansFixed is set when explicit user/network phrases assigned VLANs.
	vlansFixed bool
	// scoped is set when a service or discretization rule assigned lines.
	scoped bool
}

// Extract returns the entities described by text. The returned set is
// finalized; see entity.Set.Finalize.
func Extract(text string) *entity.Set {
	e := &extraction{
		text: Normalize(text),
		set:  &entity.Set{},
	}
	if e.text == "" {
		return entity.Default()
	}

	e.translation()
	e.explicitSides()
	if !e.services() {
		e.discretization()
	}
	if !e.scoped {
		e.lineScope()
	}
	e.uplinks()
	if !e.vlansFixed && !e.scoped {
		e.vlans()
	}
	e.pbits()
	e.forwarder()
	e.protocols()
	e.untagged()

	if !e.found {
		log.V(2).Infof("extract: nothing recognized in %q", e.text)
		return entity.Default()
	}
	e.set.Finalize()
	return e.set
}

func (e *extraction) translation() {
	if matchAny(withoutTranslationREs, e.text) {
		e.set.HasVLANTranslation = entity.False
		e.found = true
		return
	}
	if matchAny(withTranslationREs, e.text) {
		e.set.HasVLANTranslation = entity.True
		e.found = true
	}
}

func (e *extraction) explicitSides() {
	s := e.set
	if m := dualVLANRE.FindStringSubmatch(e.text); m != nil {
		s.UserVLANs = []int{atoi(m[1])}
		s.NetworkVLANs = []int{atoi(m[2])}
		s.BothUserNetworkMentioned = true
	} else if m := sameVLANRE.FindStringSubmatch(e.text); m != nil {
		v := atoi(m[1])
		s.UserVLANs = []int{v}
		s.NetworkVLANs = []int{v}
		s.BothUserNetworkMentioned = true
		s.ExplicitUserNetworkSameVLAN = true
	} else {
		n := networkServiceRE.FindStringSubmatch(e.text)
		u := userVLANRE.FindStringSubmatch(e.text)
		if n == nil && u == nil {
			return
		}
		if n != nil {
			s.NetworkVLANs = []int{atoi(n[1])}
		}
		if u != nil {
			s.UserVLANs = []int{atoi(u[1])}
		}
		s.BothUserNetworkMentioned = n != nil && u != nil
	}
	log.V(2).Infof("extract: explicit sides user=%v network=%v", s.UserVLANs, s.NetworkVLANs)
	e.vlansFixed = true
	e.found = true
}

func (e *extraction) protocols() {
	if ipv6RE.MatchString(e.text) {
		e.set.Protocols = append(e.set.Protocols, entity.IPv6)
		e.found = true
	}
	if pppoeRE.MatchString(e.text) {
		e.set.Protocols = append(e.set.Protocols, entity.PPPoE)
		e.found = true
	}
}

// untagged only applies when VLAN translation was not mentioned at all.
func (e *extraction) untagged() {
	if e.set.HasVLANTranslation.IsSet() {
		return
	}
	if matchAny(untaggedREs, e.text) {
		e.set.IsUntagged = true
		e.found = true
	}
}

// forwarder picks the topology mentioned most often. Ties go to N:1 unless
// the text asks for dedicated resources.
func (e *extraction) forwarder() {
	ft, found := countForwarder(e.text)
	e.found = e.found || found
	s := e.set
	switch {
	case s.IsMultiService:
		// The explicit service type, when given, was already recorded.
		if s.ServiceType == "" {
			s.ServiceType = ft
		}
		s.ForwarderType = s.ServiceType
	case s.Discretized():
		s.ForwarderType = dominant(s.LineForwarderMap, ft)
	default:
		s.ForwarderType = ft
	}
}

func countForwarder(text string) (entity.ForwarderType, bool) {
	ones := len(oneToOneRE.FindAllStringIndex(text, -1))
	ns := len(nToOneRE.FindAllStringIndex(text, -1))
	bias := biasRE.MatchString(text)
	switch {
	case ones > ns:
		return entity.OneToOne, true
	case ns > ones:
		return entity.NToOne, true
	case bias:
		return entity.OneToOne, true
	}
	return entity.NToOne, ones > 0
}

func dominant(m map[int]entity.ForwarderType, tie entity.ForwarderType) entity.ForwarderType {
	var ones, ns int
	for _, t := range m {
		if t == entity.OneToOne {
			ones++
		} else {
			ns++
		}
	}
	switch {
	case ones > ns:
		return entity.OneToOne
	case ns > ones:
		return entity.NToOne
	}
	return tie
}

func (e *extraction) uplinks() {
	for _, m := range uplinkRE.FindAllStringSubmatch(e.text, -1) {
		e.set.Uplinks = append(e.set.Uplinks, atoi(m[1]))
		e.found = true
	}
}

func matchAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// atoi converts a digit run matched by a pattern. Values too large for an
// int are reported as -1 and later dropped as out of range.
func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return v
}

func digits(s string) []int {
	var out []int
	for _, d := range digitRE.FindAllString(s, -1) {
		out = append(out, atoi(d))
	}
	return out
}
