package roster

import (
	"strings"
	"unicode"
)

// Professional titles and name suffixes are dropped during normalization so
// filings that style the same person differently still collapse onto one
// canonical key.
var droppedTitles = map[string]struct{}{
	"dr": {}, "mr": {}, "mrs": {}, "ms": {}, "prof": {}, "professor": {},
	"rev": {}, "hon": {}, "esq": {},
}

var droppedSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {},
	"phd": {}, "md": {}, "mba": {}, "jd": {}, "edd": {}, "dds": {},
	"cpa": {}, "rn": {},
}

// NormalizeName converts a raw person name into its canonical form:
// titles and suffixes stripped, punctuation removed, whitespace collapsed,
// each remaining word title-cased. Normalizing an already-normalized name
// returns the same string. An empty result means the name was unusable.
func NormalizeName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		lower := strings.ToLower(f)
		if _, ok := droppedTitles[lower]; ok {
			continue
		}
		if _, ok := droppedSuffixes[lower]; ok {
			continue
		}
		out = append(out, titleCaseWord(lower))
	}

	return strings.Join(out, " ")
}

func titleCaseWord(lower string) string {
	runes := []rune(lower)
	if len(runes) == 0 {
		return lower
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// NormalizeOrgKey produces the node key used for organizations that have
// no registry identifier, such as funding recipients matched by name only.
func NormalizeOrgKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}
