// Package pattern parses the user-supplied pattern and BIOS lists and
// evaluates case-insensitive substring membership against them.
//
// A pattern list is written "*text1* *text2*"; each token is wrapped in
// asterisks and the inner text may contain spaces ("*Rev 1*"). A BIOS list
// is a plain list of words ("neogeo pgm").
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrBadFormat is returned for a malformed pattern or BIOS list.
var ErrBadFormat = errors.New("badly formatted list")

var (
	reList  = regexp.MustCompile(`^(\*[^*]+\*\s*)+$`)
	reToken = regexp.MustCompile(`\*[^*]+\*`)
	reWord  = regexp.MustCompile(`\w+`)
)

// ParseList returns the lowercased inner text of every "*text*" token in
// raw, in order, duplicates preserved.
func ParseList(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if !reList.MatchString(s) {
		return nil, fmt.Errorf("%w: %q (shall be like \"*pattern1* *pattern2*\")", ErrBadFormat, raw)
	}
	tokens := reToken.FindAllString(s, -1)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, strings.ToLower(strings.Trim(tok, "*")))
	}
	return out, nil
}

// ParseBIOSList returns the lowercased words of raw.
func ParseBIOSList(raw string) ([]string, error) {
	words := reWord.FindAllString(raw, -1)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %q (shall be like \"BIOS1 BIOS2\")", ErrBadFormat, raw)
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out, nil
}

// FirstPresent returns the first pattern contained in s.
func FirstPresent(s string, patterns []string) (string, bool) {
	lower := strings.ToLower(s)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return p, true
		}
	}
	return "", false
}

// FirstMissing returns the first pattern not contained in s.
func FirstMissing(s string, patterns []string) (string, bool) {
	lower := strings.ToLower(s)
	for _, p := range patterns {
		if !strings.Contains(lower, strings.ToLower(p)) {
			return p, true
		}
	}
	return "", false
}

// Contains reports whether name equals one of list, ignoring case.
func Contains(list []string, name string) bool {
	for _, item := range list {
		if strings.EqualFold(item, name) {
			return true
		}
	}
	return false
}
