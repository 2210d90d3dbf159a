package naming

import (
	"path/filepath"
	"strings"
)

// ParsedName holds the keys derived from one ROM filename.
type ParsedName struct {
	TitleKey   string
	VariantTag string
	HasVariant bool
	ROMName    string
	Region     Region
}

// ParseFilename derives every naming key from basename (extension included).
func ParseFilename(basename string) ParsedName {
	tag, ok := VariantTag(basename)
	return ParsedName{
		TitleKey:   TitleKey(basename),
		VariantTag: tag,
		HasVariant: ok,
		ROMName:    ROMName(basename),
		Region:     DetectRegion(basename),
	}
}

// TitleKey returns the lowercased, trimmed text before the first "(".
// Without any "(" the final extension is dropped first, so "A.rom" and
// "A (Rev 1).rom" share the key "a". A name without "." is used whole.
func TitleKey(basename string) string {
	if i := strings.Index(basename, "("); i >= 0 {
		return strings.ToLower(strings.TrimSpace(basename[:i]))
	}
	stem := strings.TrimSuffix(basename, filepath.Ext(basename))
	if strings.TrimSpace(stem) == "" {
		stem = basename
	}
	return strings.ToLower(strings.TrimSpace(stem))
}

// VariantTag returns the lowercased text between the first "(" and the next
// ")". ok is false when the name has no complete parenthetical group.
func VariantTag(basename string) (tag string, ok bool) {
	open := strings.Index(basename, "(")
	if open < 0 {
		return "", false
	}
	end := strings.Index(basename[open+1:], ")")
	if end < 0 {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(basename[open+1 : open+1+end])), true
}

// ROMName returns the text before the first "." with case preserved. Dat
// catalogs key their records by this name.
func ROMName(basename string) string {
	if i := strings.Index(basename, "."); i >= 0 {
		return basename[:i]
	}
	return basename
}
