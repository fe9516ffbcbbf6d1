// Package rules defines ordered category rule sets and their matching policy.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Policy selects how a description resolves to a category.
type Policy string

const (
	// FirstMatch returns the first declared category with a matching pattern.
	FirstMatch Policy = "first-match"
	// BestScore returns the category with the most matching patterns,
	// earliest declared on ties.
	BestScore Policy = "best-score"
)

// ParsePolicy returns the Policy named s. Empty selects BestScore.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case FirstMatch:
		return FirstMatch, nil
	case BestScore, "":
		return BestScore, nil
	}
	return "", fmt.Errorf("%w %q (want %s or %s)", ErrUnknownPolicy, s, FirstMatch, BestScore)
}

// Rule set definition errors.
var (
	ErrEmptyCategoryName = errors.New("empty category name")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrUnknownPolicy     = errors.New("unknown policy")
	ErrEmptyRuleSetName  = errors.New("empty rule set name")
)

// CategorySpec is the uncompiled form of a category: a name and its patterns
// in declaration order.
type CategorySpec struct {
	Name     string
	Patterns []string
}

// Category is a compiled category.
type Category struct {
	Name     string
	Patterns []*regexp.Regexp
}

// RuleSet is an immutable ordered list of categories plus the matching policy
// its author wrote them for.
type RuleSet struct {
	name       string
	policy     Policy
	categories []Category
}

// ValidationError describes one problem in a rule set definition.
type ValidationError struct {
	Category string
	Pattern  string
	Err      error
}

func (e ValidationError) Error() string {
	switch {
	case e.Pattern != "":
		return fmt.Sprintf("category %q pattern %q: %v", e.Category, e.Pattern, e.Err)
	case e.Category != "":
		return fmt.Sprintf("category %q: %v", e.Category, e.Err)
	}
	return e.Err.Error()
}

func (e ValidationError) Unwrap() error { return e.Err }

// Validate checks a rule set definition without compiling it into a RuleSet.
func Validate(name string, policy Policy, specs []CategorySpec) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, ValidationError{Err: ErrEmptyRuleSetName})
	}
	if policy != FirstMatch && policy != BestScore {
		errs = append(errs, ValidationError{Err: fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)})
	}

	seen := make(map[string]bool)
	for _, spec := range specs {
		if strings.TrimSpace(spec.Name) == "" {
			errs = append(errs, ValidationError{Err: ErrEmptyCategoryName})
			continue
		}
		if seen[spec.Name] {
			errs = append(errs, ValidationError{Category: spec.Name, Err: ErrDuplicateCategory})
		}
		seen[spec.Name] = true

		for _, p := range spec.Patterns {
			if _, err := compile(p); err != nil {
				errs = append(errs, ValidationError{Category: spec.Name, Pattern: p, Err: fmt.Errorf("%w: %v", ErrInvalidPattern, err)})
			}
		}
	}
	return errs
}

// New compiles a rule set. Patterns are case-insensitive regular expressions
// searched anywhere in the description.
func New(name string, policy Policy, specs []CategorySpec) (*RuleSet, error) {
	if verrs := Validate(name, policy, specs); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		return nil, fmt.Errorf("rule set %q: %w", name, errors.Join(errs...))
	}

	categories := make([]Category, len(specs))
	for i, spec := range specs {
		patterns := make([]*regexp.Regexp, len(spec.Patterns))
		for j, p := range spec.Patterns {
			patterns[j], _ = compile(p)
		}
		categories[i] = Category{Name: spec.Name, Patterns: patterns}
	}

	return &RuleSet{name: name, policy: policy, categories: categories}, nil
}

// MustNew is New for rule sets known to be valid. Panics on error.
func MustNew(name string, policy Policy, specs []CategorySpec) *RuleSet {
	rs, err := New(name, policy, specs)
	if err != nil {
		panic(err)
	}
	return rs
}

func compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

// Name returns the rule set name (usually the account type).
func (rs *RuleSet) Name() string { return rs.name }

// Policy returns the matching policy the rule set was authored for.
func (rs *RuleSet) Policy() Policy { return rs.policy }

// Len returns the number of declared categories.
func (rs *RuleSet) Len() int { return len(rs.categories) }

// Category returns the i'th declared category.
func (rs *RuleSet) Category(i int) Category { return rs.categories[i] }

// Names returns the category names in declaration order.
func (rs *RuleSet) Names() []string {
	names := make([]string, len(rs.categories))
	for i, c := range rs.categories {
		names[i] = c.Name
	}
	return names
}

// Specs returns the uncompiled form of the rule set.
func (rs *RuleSet) Specs() []CategorySpec {
	specs := make([]CategorySpec, len(rs.categories))
	for i, c := range rs.categories {
		patterns := make([]string, len(c.Patterns))
		for j, re := range c.Patterns {
			patterns[j] = strings.TrimPrefix(re.String(), "(?i)")
		}
		specs[i] = CategorySpec{Name: c.Name, Patterns: patterns}
	}
	return specs
}

// Declares reports whether name is a declared category.
func (rs *RuleSet) Declares(name string) bool {
	for _, c := range rs.categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
