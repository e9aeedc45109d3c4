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

package procedure

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// minimalRE marks a heading whose procedure renders VSIs only.
var minimalRE = regexp.MustCompile(`(?i)\s*\[minimal\]\s*`)

// parseMarkdown splits src into one procedure per heading. Paragraphs, list
// items and code blocks below a heading make up the procedure text. Text
// before the first heading forms an unnamed procedure.
//
// Expected markdown format:
//
//	## Single line one to one
//
//	Configure a 1:1 VSI for line 3 with translation.
//
//	## Multi-line [minimal]
//
//	- lines 1 to 4
//	- user vlan 10, network vlan 20
func parseMarkdown(src []byte) ([]*Procedure, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		ps  []*Procedure
		cur = &Procedure{}
		sb  strings.Builder
	)
	flush := func() {
		cur.Text = sb.String()
		ps = append(ps, cur)
		sb.Reset()
	}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			flush()
			name := headingText(src, n)
			cur = &Procedure{
				Name:    strings.TrimSpace(minimalRE.ReplaceAllString(name, " ")),
				Minimal: minimalRE.MatchString(name),
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock, *ast.FencedCodeBlock, *ast.CodeBlock:
			writeLines(&sb, src, n)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	flush()
	return ps, nil
}

func headingText(src []byte, h *ast.Heading) string {
	if h.Lines().Len() == 0 {
		return ""
	}
	seg := h.Lines().At(0)
	return strings.TrimSpace(string(seg.Value(src)))
}

func writeLines(sb *strings.Builder, src []byte, n ast.Node) {
	l := n.Lines().Len()
	for i := 0; i != l; i++ {
		line := n.Lines().At(i)
		sb.WriteString(strings.TrimRight(string(line.Value(src)), "\n"))
		sb.WriteByte('\n')
	}
}
