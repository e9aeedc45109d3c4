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
	"slices"

	log "github.com/golang/glog"
	"github.com/openconfig/vsigen/internal/entity"
)

// services detects several services on one or more lines. When it matches,
// the lines are fixed and the generic line and VLAN rules are skipped.
func (e *extraction) services() bool {
	for _, re := range servicePatterns {
		m := re.FindStringSubmatch(e.text)
		if m == nil {
			continue
		}
		group := func(name string) string {
			if i := re.SubexpIndex(name); i >= 0 {
				return m[i]
			}
			return ""
		}

		count := serviceCount(group("count"))
		if count < 2 || count > entity.MaxServices {
			continue
		}
		var lines []int
		if group("all") != "" {
			lines = entity.AllLines()
		} else {
			for _, g := range []string{"line1", "line2"} {
				if l := atoi(group(g)); entity.ValidLine(l) && !slices.Contains(lines, l) {
					lines = append(lines, l)
				}
			}
		}
		if len(lines) == 0 {
			continue
		}

		s := e.set
		s.IsMultiService = true
		s.ServiceCount = count
		s.ServiceType = forwarderOf(group("type"))
		s.Lines = lines
		s.ServicesPerLine = map[int]int{}
		for _, l := range lines {
			s.ServicesPerLine[l] = count
		}
		if len(lines) > 1 && group("all") == "" {
			s.SpecificLines = lines
		}
		log.V(2).Infof("extract: %d services of type %q on lines %v", count, s.ServiceType, lines)
		e.scoped, e.found = true, true
		return true
	}
	return false
}

// discretization detects "first N lines one way, remaining lines the other"
// and maps every line of the DUT to its forwarder type.
func (e *extraction) discretization() {
	for _, re := range discretePatterns {
		m := re.FindStringSubmatch(e.text)
		if m == nil {
			continue
		}
		n := atoi(m[re.SubexpIndex("n")])
		if n < 1 || n >= entity.MaxLines {
			continue
		}
		first := forwarderOf(m[re.SubexpIndex("first")])
		rest := forwarderOf(m[re.SubexpIndex("rest")])

		s := e.set
		s.Lines = entity.AllLines()
		s.LineForwarderMap = map[int]entity.ForwarderType{}
		for _, l := range s.Lines {
			if l <= n {
				s.LineForwarderMap[l] = first
			} else {
				s.LineForwarderMap[l] = rest
			}
		}
		log.V(2).Infof("extract: lines 1-%d %s, remaining %s", n, first, rest)
		e.scoped, e.found = true, true
		return
	}
}

// lineScope resolves which lines the procedure applies to. Lines that are
// never mentioned default to line 1 in Finalize.
func (e *extraction) lineScope() {
	s := e.set
	switch {
	case matchAny(allLinesREs, e.text):
		s.Lines = entity.AllLines()
	case anyLinesRE.MatchString(e.text):
		s.Lines = entity.AnyLines()
		s.AnyLinesScenario = true
	default:
		lines, specific := explicitLines(e.text)
		if len(lines) == 0 {
			return
		}
		s.Lines = lines
		if specific {
			s.SpecificLines = lines
		}
	}
	e.found = true
}

// explicitLines returns the numbered lines of text and whether they were
// enumerated individually.
func explicitLines(text string) ([]int, bool) {
	if m := lineRangeRE.FindStringSubmatch(text); m != nil {
		lo, hi := atoi(m[1]), atoi(m[2])
		if entity.ValidLine(lo) && entity.ValidLine(hi) && lo < hi {
			return lineRange(lo, hi), false
		}
	}
	if m := lineListRE.FindStringSubmatch(text); m != nil {
		var lines []int
		for _, l := range digits(m[1]) {
			if entity.ValidLine(l) && !slices.Contains(lines, l) {
				lines = append(lines, l)
			}
		}
		if len(lines) > 0 {
			return lines, len(lines) > 1
		}
	}
	if m := firstLinesRE.FindStringSubmatch(text); m != nil {
		if n := atoi(m[1]); entity.ValidLine(n) {
			return lineRange(1, n), false
		}
	}
	if multipleLinesRE.MatchString(text) {
		return []int{1, 2}, false
	}

	var lines []int
	for _, re := range singleLineREs {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if l := atoi(m[1]); entity.ValidLine(l) && !slices.Contains(lines, l) {
				lines = append(lines, l)
			}
		}
	}
	return lines, len(lines) > 1
}

func lineRange(lo, hi int) []int {
	var lines []int
	for l := lo; l <= hi; l++ {
		lines = append(lines, l)
	}
	return lines
}

func serviceCount(s string) int {
	if n, ok := countWords[s]; ok {
		return n
	}
	return atoi(s)
}

func forwarderOf(s string) entity.ForwarderType {
	switch s {
	case "1:1":
		return entity.OneToOne
	case "n:1":
		return entity.NToOne
	}
	return ""
}
