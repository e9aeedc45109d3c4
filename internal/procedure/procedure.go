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

// Package procedure loads batches of natural language test procedures from
// plain text, Markdown and YAML documents.
package procedure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmpty is returned when the source document holds no data at all.
	ErrEmpty = errors.New("procedure: empty document")
	// ErrNoProcedure is returned when a document parses but holds no
	// procedure text.
	ErrNoProcedure = errors.New("procedure: no procedure found")
)

// Format is the layout of a procedure document.
type Format int

const (
	// Plain documents hold procedures separated by lines of "---".
	Plain Format = iota
	// Markdown documents hold one procedure per heading.
	Markdown
	// YAML documents hold a list of procedures.
	YAML
)

func (f Format) String() string {
	switch f {
	case Markdown:
		return "markdown"
	case YAML:
		return "yaml"
	default:
		return "plain"
	}
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "plain", "text", "txt":
		return Plain, nil
	case "markdown", "md":
		return Markdown, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return Plain, fmt.Errorf("procedure: unknown format %q", s)
}

// FormatOf guesses the format of the document at path from its extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return Markdown
	case ".yaml", ".yml":
		return YAML
	}
	return Plain
}

// Procedure is one natural language test procedure.
type Procedure struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Text    string `yaml:"text" json:"text"`
	Minimal bool   `yaml:"minimal" json:"minimal"`
}

// Load reads the document at path and returns its procedures.
func Load(path string) ([]*Procedure, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ps, err := Parse(FormatOf(path), b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// Parse returns the procedures of src. Procedures without an ID are given
// a random one, and unnamed procedures are named after their position.
func Parse(f Format, src []byte) ([]*Procedure, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, ErrEmpty
	}
	var (
		ps  []*Procedure
		err error
	)
	switch f {
	case Markdown:
		ps, err = parseMarkdown(src)
	case YAML:
		ps, err = parseYAML(src)
	default:
		ps = parsePlain(src)
	}
	if err != nil {
		return nil, err
	}

	var out []*Procedure
	for _, p := range ps {
		p.Text = strings.TrimSpace(p.Text)
		if p.Text == "" {
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("procedure-%d", len(out)+1)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoProcedure
	}
	return out, nil
}

var separatorRE = regexp.MustCompile(`(?m)^[ \t]*---[ \t]*$`)

func parsePlain(src []byte) []*Procedure {
	var ps []*Procedure
	for _, chunk := range separatorRE.Split(string(src), -1) {
		ps = append(ps, &Procedure{Text: chunk})
	}
	return ps
}

type batch struct {
	Procedures []*Procedure `yaml:"procedures"`
}

// parseYAML accepts either a top-level list of procedures or a mapping with
// a "procedures" list.
func parseYAML(src []byte) ([]*Procedure, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(src, &n); err != nil {
		return nil, fmt.Errorf("procedure: error parsing YAML: %v", err)
	}
	if len(n.Content) == 0 {
		return nil, ErrEmpty
	}
	root := n.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var ps []*Procedure
		if err := root.Decode(&ps); err != nil {
			return nil, fmt.Errorf("procedure: error decoding YAML: %v", err)
		}
		return ps, nil
	case yaml.MappingNode:
		var b batch
		if err := root.Decode(&b); err != nil {
			return nil, fmt.Errorf("procedure: error decoding YAML: %v", err)
		}
		return b.Procedures, nil
	}
	return nil, fmt.Errorf("procedure: YAML document must be a list or a mapping with a `procedures` list")
}
