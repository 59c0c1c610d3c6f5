package ranking

import "regexp"

// Evaluators are free-text generators, not structured-output APIs, so
// extraction is lossy-but-safe: designated section first, whole-text scan
// second, empty result last. Output is advisory; nothing downstream depends
// on it for correctness.

// sectionRe captures the body of a "FINAL RANKING" section: everything
// after the header line up to the first blank line or end of text.
var sectionRe = regexp.MustCompile(`(?is)FINAL RANKING[:：]?\s*\n(.*?)(?:\n\n|\z)`)

// labelRe matches draft label tokens ("Draft-A", "Draft-B", …, including
// the multi-letter labels past "Draft-Z").
var labelRe = regexp.MustCompile(LabelPrefix + `([A-Z]+)\b`)

// ExtractRanking parses an evaluator's verdict into an ordered list of
// label tokens, most-preferred first. Duplicates keep their first
// occurrence. Malformed or empty text yields an empty slice, never an
// error.
func ExtractRanking(text string) []string {
	section := text
	if m := sectionRe.FindStringSubmatch(text); m != nil {
		section = m[1]
	}

	matches := labelRe.FindAllStringSubmatch(section, -1)
	seen := make(map[string]bool, len(matches))
	var ordered []string
	for _, m := range matches {
		label := LabelPrefix + m[1]
		if seen[label] {
			continue
		}
		seen[label] = true
		ordered = append(ordered, label)
	}
	return ordered
}
