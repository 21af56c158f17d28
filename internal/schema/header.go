package schema

import (
	"regexp"
	"strings"
)

var (
	cidArtifactRe = regexp.MustCompile(`\(cid:\d+\)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9 ]`)
)

// NormalizeHeader cleans one raw header cell for alias matching: lower-case,
// strip extraction glyph artifacts like "(cid:9)", collapse whitespace, and
// drop everything that is not alphanumeric or a space.
func NormalizeHeader(cell string) string {
	if cell == "" {
		return ""
	}
	h := strings.ToLower(strings.TrimSpace(cell))
	h = cidArtifactRe.ReplaceAllString(h, " ")
	h = whitespaceRe.ReplaceAllString(h, " ")
	h = nonAlnumRe.ReplaceAllString(h, "")
	return strings.TrimSpace(h)
}

// DetectColumnMap matches each cell of a candidate header row against the
// bank's aliases and records the index of every role it finds. The result
// may be partial; an unmatched role just means this was not the header row,
// so no error is ever returned.
func DetectColumnMap(headerRow []string, bs BankSchema) ColumnMap {
	colMap := make(ColumnMap)
	for idx, cell := range headerRow {
		if cell == "" {
			continue
		}
		normalized := NormalizeHeader(cell)
		for role, aliases := range bs {
			for _, alias := range aliases {
				if normalized == alias {
					colMap[role] = idx
					break
				}
			}
		}
	}
	return colMap
}
