// Package formula parses recorded model formulas of the shape
//
//	response ~ term1 + term2 + (slope | group) | zi_term1 + zi_term2
//
// into their structural parts. The part separators (~, top-level + and |,
// parenthesised random terms) are handled here; each individual term is plain
// expression syntax and its variables are recovered via namefix.
package formula

import (
	"fmt"
	"strings"

	"github.com/vk/modelprobe/internal/namefix"
)

// RandomTerm is one parenthesised grouping term, e.g. (1 | subject) or
// (dose | clinic).
type RandomTerm struct {
	// SlopeTerms are the left-hand terms varying by group; "1" for a pure
	// random intercept.
	SlopeTerms []string
	// GroupTerm is the grouping expression text to the right of the bar.
	GroupTerm string
}

// Formula is the parsed structure of a recorded model formula.
type Formula struct {
	Source       string
	ResponseTerm string
	FixedTerms   []string
	ZeroTerms    []string
	RandomTerms  []RandomTerm
}

// Parse splits src into its structural parts. It returns an error only for
// shape violations (no ~, unbalanced parentheses); individual terms are not
// validated here.
func Parse(src string) (*Formula, error) {
	tilde := indexTopLevel(src, '~')
	if tilde < 0 {
		return nil, fmt.Errorf("formula %q has no ~ separator", src)
	}
	lhs := strings.TrimSpace(src[:tilde])
	rhs := strings.TrimSpace(src[tilde+1:])
	if rhs == "" {
		return nil, fmt.Errorf("formula %q has an empty right-hand side", src)
	}

	f := &Formula{Source: src, ResponseTerm: lhs}

	parts, err := splitTopLevel(rhs, '|')
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", src, err)
	}
	if len(parts) > 2 {
		return nil, fmt.Errorf("formula %q has more than one top-level | separator", src)
	}

	if f.FixedTerms, f.RandomTerms, err = parseTerms(parts[0]); err != nil {
		return nil, fmt.Errorf("formula %q: %w", src, err)
	}
	if len(parts) == 2 {
		var ziRandom []RandomTerm
		if f.ZeroTerms, ziRandom, err = parseTerms(parts[1]); err != nil {
			return nil, fmt.Errorf("formula %q: %w", src, err)
		}
		// Random terms in the zero part group the same way as conditional ones.
		f.RandomTerms = append(f.RandomTerms, ziRandom...)
	}
	return f, nil
}

// parseTerms splits one formula part on top-level + and separates ordinary
// terms from parenthesised (slope | group) random terms. Bare intercept
// markers (1, 0) are dropped.
func parseTerms(part string) ([]string, []RandomTerm, error) {
	chunks, err := splitTopLevel(part, '+')
	if err != nil {
		return nil, nil, err
	}

	var terms []string
	var random []RandomTerm
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" || chunk == "1" || chunk == "0" {
			continue
		}
		if inner, ok := stripRandomParens(chunk); ok {
			rt, err := parseRandomTerm(inner)
			if err != nil {
				return nil, nil, err
			}
			random = append(random, rt)
			continue
		}
		terms = append(terms, chunk)
	}
	return terms, random, nil
}

// stripRandomParens reports whether chunk is a whole-term parenthesised
// grouping expression, and if so returns its inside.
func stripRandomParens(chunk string) (string, bool) {
	if !strings.HasPrefix(chunk, "(") || !strings.HasSuffix(chunk, ")") {
		return "", false
	}
	inner := chunk[1 : len(chunk)-1]
	if indexTopLevel(inner, '|') < 0 {
		return "", false
	}
	return inner, true
}

func parseRandomTerm(inner string) (RandomTerm, error) {
	bar := indexTopLevel(inner, '|')
	if bar < 0 {
		return RandomTerm{}, fmt.Errorf("random term (%s) lacks a | separator", inner)
	}
	group := strings.TrimSpace(inner[bar+1:])
	if group == "" {
		return RandomTerm{}, fmt.Errorf("random term (%s) has an empty group", inner)
	}
	slopes, err := splitTopLevel(inner[:bar], '+')
	if err != nil {
		return RandomTerm{}, err
	}
	rt := RandomTerm{GroupTerm: group}
	for _, s := range slopes {
		s = strings.TrimSpace(s)
		if s == "" || s == "1" || s == "0" {
			continue
		}
		rt.SlopeTerms = append(rt.SlopeTerms, s)
	}
	return rt, nil
}

// ResponseVars returns the variable names of the response term.
func (f *Formula) ResponseVars() []string {
	if f.ResponseTerm == "" {
		return nil
	}
	return namefix.Vars(f.ResponseTerm)
}

// FixedVars returns the distinct variables of the conditional fixed terms,
// in first-appearance order.
func (f *Formula) FixedVars() []string {
	return termVars(f.FixedTerms)
}

// ZeroVars returns the distinct variables of the zero-inflation terms.
func (f *Formula) ZeroVars() []string {
	return termVars(f.ZeroTerms)
}

// GroupVars returns the distinct grouping variables of the random terms.
func (f *Formula) GroupVars() []string {
	var terms []string
	for _, rt := range f.RandomTerms {
		terms = append(terms, rt.GroupTerm)
	}
	return termVars(terms)
}

// RandomSlopeVars returns the distinct variables appearing as random slopes.
func (f *Formula) RandomSlopeVars() []string {
	var terms []string
	for _, rt := range f.RandomTerms {
		terms = append(terms, rt.SlopeTerms...)
	}
	return termVars(terms)
}

func termVars(terms []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, term := range terms {
		for _, v := range namefix.Vars(term) {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// indexTopLevel returns the index of the first occurrence of sep outside any
// parentheses, brackets, or quotes, or -1.
func indexTopLevel(s string, sep byte) int {
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == sep && depth == 0:
			return i
		}
	}
	return -1
}

// splitTopLevel splits s on every top-level occurrence of sep. It rejects
// unbalanced parentheses because a misparsed split would silently merge
// terms.
func splitTopLevel(s string, sep byte) ([]string, error) {
	var parts []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in %q", s)
			}
		case c == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in %q", s)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts, nil
}
