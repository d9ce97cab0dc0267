package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var turkishLower = cases.Lower(language.Turkish)

// FoldTurkish lower-cases s with Turkish rules (İ→i, I→ı) and collapses
// runs of whitespace into single spaces.
func FoldTurkish(s string) string {
	return strings.Join(strings.Fields(turkishLower.String(s)), " ")
}

var turkishUpper = cases.Upper(language.Turkish)

// Initials renders "ayşe demir" as "A. D." using Turkish casing.
func Initials(names ...string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		fields := strings.Fields(name)
		if len(fields) == 0 {
			continue
		}
		first := []rune(fields[0])[:1]
		parts = append(parts, turkishUpper.String(string(first))+".")
	}
	return strings.Join(parts, " ")
}
