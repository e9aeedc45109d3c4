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

import "regexp"

// All patterns operate on normalized text: lower case, single spaces, and no
// punctuation other than ":,.-".

func mustCompileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(e))
	}
	return res
}

var (
	stripRE = regexp.MustCompile(`[^\w\s:,.\-]+`)
	spaceRE = regexp.MustCompile(`\s+`)
	digitRE = regexp.MustCompile(`\d+`)
)

// VLAN translation markers. "without" is checked first since every without
// phrase also contains a with phrase.
var (
	withoutTranslationREs = mustCompileAll(
		`\bwithout (?:any )?vlan translations?\b`,
		`\bno vlan translations?\b`,
		`\bvlan translations? (?:is )?(?:disabled|not required|not needed)\b`,
	)
	withTranslationREs = mustCompileAll(
		`\b(?:with|using|enable|enabled|requires?) vlan translations?\b`,
		`\bvlan translations? (?:is )?(?:enabled|required)\b`,
		`\btranslated? (?:the )?vlans?\b`,
	)
)

// Explicit mentions of both VSI sides.
var (
	dualVLANRE       = regexp.MustCompile(`\buser vlan (\d+) and network services? on vlan (\d+)`)
	sameVLANRE       = regexp.MustCompile(`\buser and network services? on vlan (\d+)`)
	networkServiceRE = regexp.MustCompile(`\bnetwork services? on vlan (\d+)`)
	userVLANRE       = regexp.MustCompile(`\buser vlan (\d+)`)
)

const (
	countExpr = `(?P<count>\d+|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen)`
	typeExpr  = `(?P<type>1:1|n:1)`
	prepExpr  = `(?:per|for|on|of)`
)

var countWords = map[string]int{
	"two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7, "eight": 8,
	"nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16,
}

// servicePatterns detect several services on the same line(s), most specific
// first. Two-line forms must precede their one-line prefixes. Named groups:
// count, type (optional), line1, line2 (optional), all (optional).
var servicePatterns = mustCompileAll(
	`\b`+countExpr+` services? of type `+typeExpr+` `+prepExpr+` (?:the )?lines? (?P<line1>\d+) and (?:line )?(?P<line2>\d+)`,
	`\b`+countExpr+` `+typeExpr+` services? `+prepExpr+` (?:the )?lines? (?P<line1>\d+) and (?:line )?(?P<line2>\d+)`,
	`\b`+countExpr+` services? `+prepExpr+` (?:the )?lines? (?P<line1>\d+) and (?:line )?(?P<line2>\d+)`,
	`\b`+countExpr+` services? of type `+typeExpr+` `+prepExpr+` (?:the )?line (?P<line1>\d+)`,
	`\b`+countExpr+` `+typeExpr+` services? `+prepExpr+` (?:the )?line (?P<line1>\d+)`,
	`\b`+countExpr+` services? (?:of type )?`+typeExpr+` (?:for )?(?:the )?line (?P<line1>\d+)`,
	`\b`+countExpr+` services? `+prepExpr+` (?:the )?line (?P<line1>\d+)`,
	`\b`+countExpr+` (?:`+typeExpr+` )?services? (?:for|on|across) (?P<all>all|every) (?:the )?(?:16 |sixteen )?lines?`,
)

// discretePatterns split the 16 lines into a leading group and the rest.
// Named groups: n, first, rest.
var discretePatterns = mustCompileAll(
	`(?P<first>1:1|n:1) forwarders? (?:for|on) (?:the )?(?:first|initial) (?P<n>\d+) lines?.*?(?P<rest>1:1|n:1) forwarders? (?:for|on) (?:the )?(?:remaining|rest|next|last|other)`,
	`(?P<rest>1:1|n:1) forwarders? (?:for|on) (?:the )?(?:remaining|rest|last|other)(?: \d+)? lines?.*?(?P<first>1:1|n:1) forwarders? (?:for|on) (?:the )?(?:first|initial) (?P<n>\d+) lines?`,
	`\b(?:first|initial) (?P<n>\d+) lines?\b.*?(?P<first>1:1|n:1).*?\b(?:remaining|rest|next|last|other)\b.*?(?P<rest>1:1|n:1)`,
	`\b(?:remaining|rest|last|other)\b.*?(?P<rest>1:1|n:1).*?\b(?:first|initial) (?P<n>\d+) lines?\b.*?(?P<first>1:1|n:1)`,
)

// Line scope patterns.
var (
	allLinesREs = mustCompileAll(
		`\ball (?:the )?(?:16 |sixteen )?lines\b`,
		`\b(?:every|each) line\b`,
		`\b(?:16|sixteen) lines\b`,
	)
	anyLinesRE      = regexp.MustCompile(`\bany (?:2|two) lines\b`)
	lineRangeRE     = regexp.MustCompile(`\blines? ?(\d+) ?(?:to|through|-) ?(?:line ?)?(\d+)\b`)
	firstLinesRE    = regexp.MustCompile(`\b(?:first|initial) (\d+) lines\b`)
	lineListRE      = regexp.MustCompile(`\blines? ?(\d+(?:(?: ?, ?and | ?, ?| and )(?:line ?)?\d+)+)`)
	multipleLinesRE = regexp.MustCompile(`\b(?:multiple|several) lines\b`)
	singleLineREs   = mustCompileAll(
		`\bline ?number ?(\d+)`,
		`\blines? ?(\d+)`,
	)
	uplinkRE = regexp.MustCompile(`\buplinks? ?(\d+)`)
)

// vlanPatterns are tried in priority order; a value found by several
// patterns is reported once.
var vlanPatterns = mustCompileAll(
	`\bvlan identifier (\d+)`,
	`\bvlan id (\d+)`,
	`\bvlan-tag (\d+)`,
	`\bvlan tag (\d+)`,
	`\bvlans? ?(\d+(?:(?: ?, ?and | ?, ?| and )\d+)*)`,
	`\bidentifier (\d+)`,
	`\btag (\d+)`,
)

// PBIT patterns.
var (
	allPBitREs = mustCompileAll(
		`\ball (?:the )?(?:p-?bits?|priorit(?:y|ies))\b`,
		`\bp-?bits? (?:range )?0 ?(?:-|to) ?7\b`,
		`\bp-?bit range\b`,
	)
	differentPBitREs = mustCompileAll(
		`\b(?:different|distinct|unique) (?:p-?bits?|priorit(?:y|ies))\b`,
	)
	pbitPatterns = mustCompileAll(
		`\bp-?bits? ?(?:value )?(?:of )?(\d+)`,
		`\bpriority (?:bit )?(\d+)`,
		`\b(?:cos|pcp) ?(\d+)`,
	)
)

// Side keywords used to classify VLAN and PBIT mentions.
var (
	userSideRE    = regexp.MustCompile(`\b(?:user|upstream|customer|subscriber|line(?:s|\d+)?)\b`)
	networkSideRE = regexp.MustCompile(`\b(?:network|downstream|provider|nni|uplinks?\d*)\b`)
	clauseSepRE   = regexp.MustCompile(`[.,;]| and `)
)

// Forwarder, protocol and tagging markers.
var (
	oneToOneRE = regexp.MustCompile(`\b1:1\b|\bone[ -]to[ -]one\b`)
	nToOneRE   = regexp.MustCompile(`\bn:1\b|\bmany[ -]to[ -]one\b`)
	biasRE     = regexp.MustCompile(`\b(?:dedicated|individual|separate)\b`)

	ipv6RE  = regexp.MustCompile(`\bipv6\b|\bip v6\b|\binternet protocol version 6\b`)
	pppoeRE = regexp.MustCompile(`\bpppoe\b|\bppp over ethernet\b|\bppp-over-ethernet\b`)

	untaggedREs = mustCompileAll(
		`\buntagged\b`,
		`\bnon-tagged\b`,
		`\bno vlan\b`,
		`\bwithout (?:a |any )?vlan tags?\b`,
	)
)
