// Package canon rewrites raw model identifiers to the canonical vocabulary
// used by the leaderboard and reconciles result rows against it.
package canon

import (
	"fmt"
	"regexp"
)

// Rule maps a raw-name pattern to a canonical replacement. The pattern is
// matched against the full name: implicit ^ and $ anchors are added at
// compile time so a rule can never fire on a substring.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRule compiles a rule, wrapping the pattern in full-string anchors.
func NewRule(pattern, replacement string) (Rule, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return Rule{}, fmt.Errorf("compile rule %q: %w", pattern, err)
	}
	return Rule{Pattern: re, Replacement: replacement}, nil
}

// MustRule is NewRule for the compiled-in rule set; it panics on an
// invalid pattern.
func MustRule(pattern, replacement string) Rule {
	r, err := NewRule(pattern, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRules returns the compiled-in rule set for this benchmark's model
// spellings. Order matters: rules are evaluated first-match-wins, so the
// dated or more specific spellings sit above their generic fallbacks.
func DefaultRules() []Rule {
	return []Rule{
		MustRule(`Claude-4-Sonnet`, "Claude-Sonnet-4"),
		MustRule(`Claude-4-Opus`, "Claude-Opus-4"),
		MustRule(`(?i)claude-3[.-]5-sonnet(-\d{8})?`, "Claude-3.5-Sonnet"),
		MustRule(`(?i)claude-3[.-]7-sonnet(-\d{8})?`, "Claude-3.7-Sonnet"),
		MustRule(`(?i)gpt-4o-mini(-\d{4}-\d{2}-\d{2})?`, "GPT-4o-mini"),
		MustRule(`(?i)gpt-4o(-\d{4}-\d{2}-\d{2})?`, "GPT-4o"),
		MustRule(`(?i)gpt-4[.-]1(-\d{4}-\d{2}-\d{2})?`, "GPT-4.1"),
		MustRule(`(?i)o3-mini(-high|-low)?`, "o3-mini"),
		MustRule(`(?i)deepseek[-_]v3(-\d{4})?`, "DeepSeek-V3"),
		MustRule(`(?i)deepseek[-_]r1(-\d{4})?`, "DeepSeek-R1"),
		MustRule(`(?i)gemini-1[.-]5-pro(-\d{3})?`, "Gemini-1.5-Pro"),
		MustRule(`(?i)gemini-2[.-]0-flash(-\d{3})?`, "Gemini-2.0-Flash"),
		MustRule(`(?i)qwen-?2[.-]5-coder(-\d+b)?(-instruct)?`, "Qwen2.5-Coder"),
		MustRule(`(?i)llama-?3[.-]1-405b(-instruct)?`, "Llama-3.1-405B"),
		MustRule(`(?i)llama-?3[.-]3-70b(-instruct)?`, "Llama-3.3-70B"),
	}
}
