// Package accounts maps account types to their rule sets and routes export
// files to an account type by name.
package accounts

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spendtrack-dev/spendtrack/internal/config"
	"github.com/spendtrack-dev/spendtrack/internal/rules"
)

var (
	// ErrUnknownAccount means no profile is registered under the name.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrNoRoute means no profile's match strings occur in the file name.
	ErrNoRoute = errors.New("no account matches file")
)

// Profile is one account type and the rule set its exports are classified with.
type Profile struct {
	Name  string
	Match []string // lowercase file name substrings
	Rules *rules.RuleSet
}

// Service provides lookup and file routing over account profiles.
type Service struct {
	profiles []Profile
	byName   map[string]int
}

// NewService creates an empty Service.
func NewService() *Service {
	return &Service{byName: make(map[string]int)}
}

// Register adds a profile. Names are case-insensitive and must be unique.
func (s *Service) Register(p Profile) error {
	key := strings.ToLower(p.Name)
	if _, ok := s.byName[key]; ok {
		return fmt.Errorf("duplicate account %q", p.Name)
	}
	if p.Rules == nil {
		return fmt.Errorf("account %q has no rule set", p.Name)
	}
	match := make([]string, len(p.Match))
	for i, m := range p.Match {
		match[i] = strings.ToLower(m)
	}
	p.Match = match
	s.byName[key] = len(s.profiles)
	s.profiles = append(s.profiles, p)
	return nil
}

// All returns the profiles in registration order.
func (s *Service) All() []Profile {
	return s.profiles
}

// Get returns the profile named name.
func (s *Service) Get(name string) (Profile, error) {
	i, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownAccount, name)
	}
	return s.profiles[i], nil
}

// Exists reports whether a profile is registered under name.
func (s *Service) Exists(name string) bool {
	_, ok := s.byName[strings.ToLower(name)]
	return ok
}

// Route picks the profile for an export file from its base name, without
// extension: the first registered profile with a match string contained in
// it, case-insensitively.
func (s *Service) Route(path string) (Profile, error) {
	base := filepath.Base(path)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	for _, p := range s.profiles {
		for _, m := range p.Match {
			if m != "" && strings.Contains(stem, m) {
				return p, nil
			}
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrNoRoute, base)
}

// Load builds a Service from the configured accounts, compiling every rule set.
func Load(cfg *config.Config) (*Service, error) {
	svc := NewService()
	for _, a := range cfg.Accounts {
		policy, err := rules.ParsePolicy(a.Policy)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Name, err)
		}
		rs, err := rules.New(a.Name, policy, a.Specs())
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Name, err)
		}
		if err := svc.Register(Profile{Name: a.Name, Match: a.Match, Rules: rs}); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// Default returns a Service with the built-in account types.
func Default() *Service {
	svc, err := Load(config.Default())
	if err != nil {
		panic("built-in accounts: " + err.Error())
	}
	return svc
}
