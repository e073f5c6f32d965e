package query

import (
	"fmt"
	"strings"

	"github.com/simon200418/songindex/analysis"
	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/schema"
)

// Conjunction selects how top-level query units combine.
type Conjunction int

const (
	// Any matches documents matching at least one unit.
	Any Conjunction = iota
	// All matches documents matching every unit.
	All
)

// Parser turns raw query strings into query trees for one schema.
type Parser struct {
	schema *schema.Schema
	conj   Conjunction
}

// Option configures a Parser.
type Option func(*Parser)

// WithConjunction sets how query units combine. Default is Any.
func WithConjunction(c Conjunction) Option {
	return func(p *Parser) {
		p.conj = c
	}
}

// NewParser creates a parser for the given schema.
func NewParser(s *schema.Schema, opts ...Option) (*Parser, error) {
	if s == nil {
		return nil, ErrSchemaRequired
	}
	p := &Parser{schema: s}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse analyzes raw query text against the given target fields.
//
// Double-quoted runs parse as phrases; remaining text parses as individual
// terms. Each unit matches across all target fields. A blank query returns
// core.ErrEmptyQuery, as does a query whose every token is dropped by
// analysis. Unknown or non-searchable target fields return core.ErrConfig
// wrapped with the field name.
func (p *Parser) Parse(raw string, fields []string) (Node, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: blank query", core.ErrEmptyQuery)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no target fields", core.ErrConfig)
	}
	for _, field := range fields {
		if !p.schema.Searchable(field) {
			return nil, fmt.Errorf("%w: field %q is not searchable", core.ErrConfig, field)
		}
	}

	var units []Node
	for _, segment := range splitQuoted(raw) {
		terms := analysis.Terms(segment.text)
		if len(terms) == 0 {
			continue
		}
		if segment.phrase && len(terms) > 1 {
			units = append(units, p.fieldGroup(fields, func(field string) Node {
				return Phrase{Field: field, Terms: terms}
			}))
			continue
		}
		for _, term := range terms {
			term := term
			units = append(units, p.fieldGroup(fields, func(field string) Node {
				return Term{Field: field, Term: term}
			}))
		}
	}

	if len(units) == 0 {
		return nil, fmt.Errorf("%w: no searchable terms", core.ErrEmptyQuery)
	}
	if len(units) == 1 {
		return units[0], nil
	}
	if p.conj == All {
		return And{Children: units}, nil
	}
	return Or{Children: units}, nil
}

// fieldGroup builds one node per target field and joins them with Or. A
// unit matches when it matches in any field, regardless of the configured
// conjunction.
func (p *Parser) fieldGroup(fields []string, build func(field string) Node) Node {
	if len(fields) == 1 {
		return build(fields[0])
	}
	children := make([]Node, len(fields))
	for i, field := range fields {
		children[i] = build(field)
	}
	return Or{Children: children}
}

// segment is one run of query text, quoted or plain.
type segment struct {
	text   string
	phrase bool
}

// splitQuoted splits raw on double quotes. With balanced quotes the
// odd-indexed parts are inside quotes; with unbalanced quotes every part
// is treated as plain text.
func splitQuoted(raw string) []segment {
	parts := strings.Split(raw, `"`)
	balanced := len(parts)%2 == 1

	segments := make([]segment, 0, len(parts))
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		segments = append(segments, segment{
			text:   part,
			phrase: balanced && i%2 == 1,
		})
	}
	return segments
}
