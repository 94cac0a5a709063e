package suggest

import (
	"fmt"
	"strings"
)

// DefaultThreshold is the largest Distance that still yields a suggestion.
const DefaultThreshold = 2.0

// Suggestion is a proposed correction for an email address.
type Suggestion struct {
	LocalPart       string `json:"localPart"`
	SuggestedDomain string `json:"suggestedDomain"`
}

// Address joins the local part and the suggested domain.
func (s Suggestion) Address() string {
	return s.LocalPart + "@" + s.SuggestedDomain
}

// Text renders the prompt shown to the user. The template receives the full
// suggested address through a single %s verb; templates without a verb are
// followed by the address.
func (s Suggestion) Text(template string) string {
	tmpl := strings.TrimSpace(template)
	if tmpl == "" {
		return s.Address()
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, s.Address())
	}
	return tmpl + " " + s.Address()
}

// Suggester holds the provider list and closeness threshold.
type Suggester struct {
	domains   []string
	threshold float64
}

// Option configures a Suggester.
type Option func(*Suggester)

// WithDomains replaces the provider list. Order matters for ties.
func WithDomains(domains ...string) Option {
	return func(s *Suggester) {
		s.domains = append([]string(nil), domains...)
	}
}

// WithThreshold overrides the closeness threshold.
func WithThreshold(threshold float64) Option {
	return func(s *Suggester) {
		s.threshold = threshold
	}
}

// New constructs a Suggester using the built-in domains unless overridden.
func New(options ...Option) *Suggester {
	s := &Suggester{
		domains:   Domains(),
		threshold: DefaultThreshold,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var defaultSuggester = New()

// Suggest runs the default Suggester.
func Suggest(address string) (Suggestion, bool) {
	return defaultSuggester.Suggest(address)
}

// Suggest splits address at the first '@' and returns the closest known
// domain when it is within the threshold and differs from the typed domain.
// Comparison is case-sensitive. Addresses without a domain part never yield a
// suggestion.
func (s *Suggester) Suggest(address string) (Suggestion, bool) {
	local, typed, found := strings.Cut(address, "@")
	if !found || typed == "" || s == nil || len(s.domains) == 0 {
		return Suggestion{}, false
	}

	best := ""
	bestDistance := 0.0
	for i, domain := range s.domains {
		d := Distance(domain, typed)
		if i == 0 || d < bestDistance {
			best, bestDistance = domain, d
		}
	}

	if bestDistance > s.threshold || best == typed {
		return Suggestion{}, false
	}
	return Suggestion{LocalPart: local, SuggestedDomain: best}, true
}
