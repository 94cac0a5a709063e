package suggest_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-formval/pkg/suggest"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abcd", 4},
		{"gmail.com", "gmail.com", 0},
		{"gmail.com", "gmial.com", 2},
		{"gmail.com", "gmail.con", 1},
		{"gmail.com", "gmai.com", 1.5},
		{"hotmail.com", "hotmial.com", 2},
		{"hotmail.com", "hotmail.co", 0.5},
		{"yahoo.com", "yaho.com", 1.5},
		{"googlemail.com", "gmial.com", 10.5},
		{"aab", "ab", 1.5},
		{"abc", "bca", 2},
		// lookahead resyncs on a later 'c' and loses the tail
		{"abc.com", "abx.com", 2},
		{"abd.com", "abx.com", 1},
	}
	for _, tc := range cases {
		if got := suggest.Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%q, %q): want %v, got %v", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestDistanceIsAsymmetric(t *testing.T) {
	if got := suggest.Distance("ab", "bab"); got != 2.5 {
		t.Fatalf("Distance(ab, bab): want 2.5, got %v", got)
	}
	if got := suggest.Distance("bab", "ab"); got != 1.5 {
		t.Fatalf("Distance(bab, ab): want 1.5, got %v", got)
	}
}

func TestDistanceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("identical strings score zero", prop.ForAll(
		func(s string) bool {
			return suggest.Distance(s, s) == 0
		},
		gen.AlphaString(),
	))

	properties.Property("empty side scores the other length", prop.ForAll(
		func(s string) bool {
			return suggest.Distance(s, "") == float64(len(s)) && suggest.Distance("", s) == float64(len(s))
		},
		gen.AlphaString(),
	))

	properties.Property("score never exceeds the mean length", prop.ForAll(
		func(a, b string) bool {
			return suggest.Distance(a, b) <= float64(len(a)+len(b))/2 || a == "" || b == ""
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
