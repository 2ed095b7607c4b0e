package urls

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
)

var (
	// ErrInvalidURL is returned for strings that are not well-formed web addresses
	ErrInvalidURL = errors.New("invalid url")
	// ErrNotYouTube is returned when only youtube links are accepted
	ErrNotYouTube = errors.New("not a youtube url")
)

const urlExpr = `(http|https)://([\w_-]+(?:(?:\.[\w_-]+)+))([\w.,@?^=%&:/~+#-]*[\w@?^=%&/~+#-])?`

var (
	urlPattern    = regexp.MustCompile(`^` + urlExpr + `$`)
	urlFinder     = regexp.MustCompile(urlExpr)
	schemePattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.-]*://`)
)

const (
	leadingPunct  = `("'<[`
	trailingPunct = `.,;:!?)"'>]`
)

// Validate checks that raw is a well-formed http(s) URL and returns it trimmed
func Validate(raw string) (string, error) {
	candidate := trim(raw)
	if candidate == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !urlPattern.MatchString(candidate) {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	return candidate, nil
}

// AnyValid reports whether at least one candidate passes Validate
func AnyValid(candidates []string) bool {
	for _, c := range candidates {
		if _, err := Validate(c); err == nil {
			return true
		}
	}
	return false
}

// IsYouTube reports whether rawURL points at a YouTube host
func IsYouTube(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be", host == "youtube.com", host == "youtube-nocookie.com":
		return true
	case strings.HasSuffix(host, ".youtube.com"), strings.HasSuffix(host, ".youtube-nocookie.com"):
		return true
	}
	return false
}

// VideoID returns the YouTube video id of rawURL, or "" for playlists and other sites
func VideoID(rawURL string) string {
	if !IsYouTube(rawURL) {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	if q.Get("list") != "" && q.Get("v") == "" {
		return ""
	}

	id, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return ""
	}
	return id
}

func trim(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, leadingPunct)
	return strings.TrimRight(s, trailingPunct)
}
