package canon

import "github.com/EJ-L/code-treat-data/internal/table"

// Canonicalize rewrites one raw model name using an ordered rule list.
//
// Rules are evaluated in declaration order and the first full-string match
// wins; remaining rules are skipped. Rules are not mutually exclusive by
// construction, so reordering the list changes behavior. A name matching
// no rule passes through unchanged: unmapped names are expected and are
// filtered downstream by the reconciler.
func Canonicalize(name string, rules []Rule) string {
	for _, rule := range rules {
		if rule.Pattern.MatchString(name) {
			return rule.Replacement
		}
	}
	return name
}

// CanonicalizeRows rewrites the given column of every row in place.
func CanonicalizeRows(rows []table.Row, column string, rules []Rule) {
	for _, row := range rows {
		row[column] = Canonicalize(row[column], rules)
	}
}
