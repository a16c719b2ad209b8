package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and transliterates a title to ASCII, joining the
// alphanumeric runs with single hyphens.
func Slugify(title string) string {
	ascii := strings.ToLower(unidecode.Unidecode(title))
	return strings.Trim(nonSlugChars.ReplaceAllString(ascii, "-"), "-")
}

// SplitList splits a comma-separated string, trimming whitespace and
// dropping empty entries. Order and duplicates are preserved.
func SplitList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			items = append(items, v)
		}
	}
	return items
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a lowercase LIKE pattern matching keyword as a
// literal substring. Use with `ESCAPE '\'`.
func ContainsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}

// ParsePosition converts a 1-based position to a slice index. ok is false
// for anything outside 1..length, including non-integers.
func ParsePosition(raw string, length int) (int, bool) {
	pos, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || pos < 1 || pos > length {
		return 0, false
	}
	return pos - 1, true
}
