package db

import "strings"

// LikeEscape is the escape character used with ContainsPattern.
// Queries must declare it: `name LIKE ? ESCAPE '\'`.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching s literally anywhere in the value.
func ContainsPattern(s string) string {
	return "%" + likeReplacer.Replace(s) + "%"
}
