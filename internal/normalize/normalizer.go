// Package normalize turns a raw user question into a canonical form and
// splits it into sub-questions. Both operations are total: they never raise
// on any input, including the empty string.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lexforge/ragengine/internal/domain"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// synonymEntry is a (surface form, canonical) pair, sorted longest-first so
// that longer phrases are substituted before their substrings.
type synonymEntry struct {
	surface   string
	canonical string
}

var synonymTable = buildSynonymTable()

func buildSynonymTable() []synonymEntry {
	var entries []synonymEntry
	for canonical, forms := range domain.Synonyms {
		for _, form := range forms {
			entries = append(entries, synonymEntry{surface: form, canonical: canonical})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return len(entries[i].surface) > len(entries[j].surface)
	})
	return entries
}

// Normalize lowercases, collapses whitespace, trims, and rewrites recognized
// domain synonyms to their canonical form. It is idempotent:
// Normalize(Normalize(q)) == Normalize(q).
func Normalize(query string) string {
	q := strings.ToLower(query)
	q = whitespaceRe.ReplaceAllString(q, " ")
	q = strings.TrimSpace(q)

	for _, e := range synonymTable {
		q = replaceWholeWord(q, e.surface, e.canonical)
	}

	q = whitespaceRe.ReplaceAllString(q, " ")
	return strings.TrimSpace(q)
}

// replaceWholeWord substitutes occurrences of old with new only where old is
// not adjacent to other word characters, so "ped" does not match inside a
// larger word.
func replaceWholeWord(s, old, new string) string {
	if old == "" || old == new {
		return s
	}
	pattern := `(^|[^a-z0-9])` + regexp.QuoteMeta(old) + `($|[^a-z0-9])`
	re := regexp.MustCompile(pattern)
	for {
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return s
		}
		prefix := s[loc[2]:loc[3]]
		suffix := s[loc[4]:loc[5]]
		s = s[:loc[0]] + prefix + new + suffix + s[loc[1]:]
	}
}

var subQuestionSplitRe = regexp.MustCompile(`,|;|\band\b`)

// SplitSubQuestions splits a (normalized or raw) query into sub-questions.
// It never returns an empty slice: a query with no separators and no
// question mark comes back as a single element with one appended. Fragments
// shorter than 4 characters after trimming are dropped.
func SplitSubQuestions(query string) []string {
	q := strings.TrimSpace(query)
	if q == "" {
		return []string{"?"}
	}

	parts := splitOnMultipleQuestionMarks(q)
	var fragments []string
	for _, p := range parts {
		fragments = append(fragments, subQuestionSplitRe.Split(p, -1)...)
	}

	var out []string
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if len(f) < 4 {
			continue
		}
		if !strings.HasSuffix(f, "?") {
			f += "?"
		}
		out = append(out, f)
	}

	if len(out) == 0 {
		q = strings.TrimSpace(q)
		if !strings.HasSuffix(q, "?") {
			q += "?"
		}
		return []string{q}
	}
	return out
}

// splitOnMultipleQuestionMarks splits on "?" but keeps each resulting
// fragment as its own candidate sub-question, dropping empty trailing pieces
// from a trailing "?".
func splitOnMultipleQuestionMarks(q string) []string {
	if !strings.Contains(q, "?") {
		return []string{q}
	}
	raw := strings.Split(q, "?")
	var out []string
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return []string{q}
	}
	return out
}
