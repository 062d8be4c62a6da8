// Package filters turns GraphQL filter and orderBy arguments into gorm
// scopes. Every filter is a struct of optional fields; a nil field adds no
// predicate and all non-nil fields AND together.
package filters

import "strings"

// likeEscape is the ESCAPE character used by every LIKE predicate. It is
// not special in any supported dialect's string literals.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// containsPattern matches s anywhere in a lower-cased column.
func containsPattern(s string) string {
	return "%" + escapeLike(strings.ToLower(s)) + "%"
}

// prefixPattern matches columns starting with s.
func prefixPattern(s string) string {
	return escapeLike(s) + "%"
}

// hasText reports whether a text filter constrains anything. An empty
// string matches like an absent field.
func hasText(s *string) bool {
	return s != nil && *s != ""
}
