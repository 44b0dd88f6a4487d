// Package selector decides which host-reported sources (disks, network
// interfaces, temperature sensors) are tracked, and which logical series each
// tracked source feeds.
package selector

import (
	"fmt"
	"strings"
)

// PredicateKind is the string comparison a rule applies.
type PredicateKind int

const (
	Equal PredicateKind = iota
	IEqual
	StartsWith
	EndsWith
	Contains
)

// String returns the config key for the predicate kind.
func (k PredicateKind) String() string {
	switch k {
	case Equal:
		return "equal"
	case IEqual:
		return "iequal"
	case StartsWith:
		return "starts_with"
	case EndsWith:
		return "ends_with"
	case Contains:
		return "contains"
	default:
		return "unknown"
	}
}

// Predicate is a single string test.
type Predicate struct {
	Kind    PredicateKind
	Pattern string
}

// Eval reports whether value satisfies the predicate.
func (p Predicate) Eval(value string) bool {
	switch p.Kind {
	case Equal:
		return value == p.Pattern
	case IEqual:
		return strings.EqualFold(value, p.Pattern)
	case StartsWith:
		return strings.HasPrefix(value, p.Pattern)
	case EndsWith:
		return strings.HasSuffix(value, p.Pattern)
	case Contains:
		return strings.Contains(value, p.Pattern)
	default:
		return false
	}
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s(%q)", p.Kind, p.Pattern)
}

// Field is the source attribute a rule inspects.
type Field int

const (
	FieldName Field = iota
	FieldMacAddress
	FieldMajorMinor
)

// String returns the config key for the field.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldMacAddress:
		return "mac_address"
	case FieldMajorMinor:
		return "major_minor"
	default:
		return "unknown"
	}
}

// Rule selects sources whose Field satisfies Predicate. Selected sources are
// averaged into the series named Group ("" is the category's default series).
type Rule struct {
	Field     Field
	Predicate Predicate
	Group     string
}

// Candidate is one raw source as reported by the host.
type Candidate struct {
	Name       string
	MacAddress string // network interfaces only
	MajorMinor string // block devices only, "MAJOR:MINOR"
}

func (c Candidate) value(f Field) string {
	switch f {
	case FieldMacAddress:
		return c.MacAddress
	case FieldMajorMinor:
		return c.MajorMinor
	default:
		return c.Name
	}
}

// Matches tests a rule against a bare source name. Rules on other fields
// never match a bare name.
func Matches(rule Rule, name string) bool {
	if rule.Field != FieldName {
		return false
	}
	return rule.Predicate.Eval(name)
}

// MatchesCandidate tests a rule against the field it inspects. An empty field
// value (a MAC the host did not report) never matches.
func MatchesCandidate(rule Rule, c Candidate) bool {
	v := c.value(rule.Field)
	if v == "" {
		return false
	}
	if rule.Field == FieldMajorMinor {
		return v == rule.Predicate.Pattern
	}
	return rule.Predicate.Eval(v)
}

// Set is the OR-combination of a category's rules. The zero Set matches
// nothing.
type Set struct {
	rules []Rule
}

// NewSet builds a Set from rules in configured order.
func NewSet(rules ...Rule) Set {
	return Set{rules: append([]Rule(nil), rules...)}
}

// Rules returns the configured rules.
func (s Set) Rules() []Rule {
	return s.rules
}

// Empty reports whether the set has no rules.
func (s Set) Empty() bool {
	return len(s.rules) == 0
}

// Match returns the group of the first rule the candidate satisfies.
func (s Set) Match(c Candidate) (string, bool) {
	for _, r := range s.rules {
		if MatchesCandidate(r, c) {
			return r.Group, true
		}
	}
	return "", false
}

// Groups returns the distinct groups the set can produce, in first-seen order.
func (s Set) Groups() []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range s.rules {
		if !seen[r.Group] {
			seen[r.Group] = true
			out = append(out, r.Group)
		}
	}
	return out
}

// Partition groups candidates by the series they feed. Unmatched candidates
// are dropped.
func (s Set) Partition(cs []Candidate) map[string][]Candidate {
	out := make(map[string][]Candidate)
	for _, c := range cs {
		if g, ok := s.Match(c); ok {
			out[g] = append(out[g], c)
		}
	}
	return out
}
