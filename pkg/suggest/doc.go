// Package suggest proposes corrections for mistyped email domains. The typed
// domain is compared against a fixed list of common providers with Distance, a
// linear-scan similarity heuristic with a short resynchronising lookahead. It
// is order-sensitive and not symmetric; callers relying on its exact scores
// (the suggestion threshold is 2) must not substitute a true edit distance.
package suggest
