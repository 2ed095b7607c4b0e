package urls

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\S+`)

type found struct {
	at   int
	text string
}

// Candidates finds every URL anywhere in text, including URLs inside markup
// or JSON. Tokens that carry a scheme or "www." marker but hold no matching
// URL are kept as malformed candidates so they can be reported instead of
// silently dropped. Results are de-duplicated in first-seen order.
func Candidates(text string) []string {
	matches := urlFinder.FindAllStringIndex(text, -1)

	all := make([]found, 0, len(matches))
	for _, m := range matches {
		all = append(all, found{at: m[0], text: text[m[0]:m[1]]})
	}
	for _, tok := range tokenPattern.FindAllStringIndex(text, -1) {
		if overlaps(matches, tok) {
			continue
		}
		if c, ok := malformed(text[tok[0]:tok[1]]); ok {
			all = append(all, found{at: tok[0], text: c})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].at < all[j].at })

	seen := make(map[string]struct{}, len(all))
	var out []string
	for _, f := range all {
		if _, dup := seen[f.text]; dup {
			continue
		}
		seen[f.text] = struct{}{}
		out = append(out, f.text)
	}
	return out
}

// ReadFile returns the URL candidates found anywhere in the file at path
func ReadFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading url file: %w", err)
	}
	return Candidates(string(content)), nil
}

// matches never cross whitespace, so any overlap means the token holds a URL
func overlaps(matches [][]int, tok []int) bool {
	for _, m := range matches {
		if m[0] < tok[1] && m[1] > tok[0] {
			return true
		}
	}
	return false
}

func malformed(token string) (string, bool) {
	if loc := schemePattern.FindStringIndex(token); loc != nil {
		token = token[loc[0]:]
	} else if !strings.Contains(strings.ToLower(token), "www.") {
		return "", false
	}

	token = trim(token)
	if token == "" {
		return "", false
	}
	return token, true
}
