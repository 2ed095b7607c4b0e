package utils

import (
	"path/filepath"
	"strings"
)

// DefaultTemplate names output files after the source title
const DefaultTemplate = "%(title)s.%(ext)s"

// OutputTemplate joins the output directory with the yt-dlp file name template
func OutputTemplate(dir, template string) string {
	if dir == "" {
		dir = "."
	}
	if template == "" {
		template = DefaultTemplate
	}
	return filepath.Join(dir, template)
}

// AudioTitle returns the file name of an output path without its extension
func AudioTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
