package dedupe

import (
	"strings"

	"github.com/govcongiants/encore/pkg/report"
)

// Reconcile is the second pass over the merged map. Records whose date was
// only inferred from the reporting period are often re-listings of content
// the export already carries under its real date (a July report re-listing
// April posts); this pass finds those originals by title prefix and
// collapses the pair. It returns the number of pairs collapsed.
//
// The properly-dated candidate snapshot is built before the pass begins and
// removals are applied to the map as they are decided, never while
// iterating a live view.
func (e *Engine) Reconcile() int {
	type candidate struct {
		key Key
		rec *report.Record
	}

	var dated []candidate
	for _, k := range e.keys {
		rec, ok := e.records[k]
		if !ok {
			continue
		}
		if rec.DateSource == report.DateSourceProvided || rec.DateSource == report.DateSourceYouTube {
			dated = append(dated, candidate{key: k, rec: rec})
		}
	}

	removed := make(map[Key]bool)
	merged := 0

	for _, k := range e.keys {
		if removed[k] {
			continue
		}
		inferred, ok := e.records[k]
		if !ok || inferred.DateSource != report.DateSourceInferred {
			continue
		}
		title := cleanTitle(inferred.Title)
		if title == "" {
			continue
		}

		var best *candidate
		for i := range dated {
			c := &dated[i]
			if removed[c.key] {
				continue
			}
			if !strings.EqualFold(c.rec.Channel, inferred.Channel) {
				continue
			}
			if !e.titlesMatch(title, cleanTitle(c.rec.Title)) {
				continue
			}
			// First match wins unless a later candidate agrees on
			// content type and the current best does not.
			if best == nil {
				best = c
			} else if c.rec.Type == inferred.Type && best.rec.Type != inferred.Type {
				best = c
			}
		}
		if best == nil {
			continue
		}

		if inferred.ImpressionsValue() >= best.rec.ImpressionsValue() {
			// The inferred copy carries the real engagement numbers:
			// it adopts the candidate's date and the candidate goes.
			inferred.DateRaw = best.rec.DateRaw
			inferred.DateISO = best.rec.DateISO
			inferred.Month = report.MonthKey(best.rec.DateISO)
			inferred.DateSource = best.rec.DateSource.Matched()
			if inferred.Link == "" && best.rec.Link != "" {
				inferred.Link = best.rec.Link
			}
			removed[best.key] = true
			e.remove(best.key)
		} else {
			// The properly-dated copy is authoritative; the inferred
			// re-listing goes.
			removed[k] = true
			e.remove(k)
		}
		merged++
	}

	return merged
}

// titlesMatch reports whether two cleaned titles share enough of a prefix
// to be the same content under different truncations. Titles below the
// minimum length never match.
func (e *Engine) titlesMatch(a, b string) bool {
	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	if shorter < e.rules.TitleMinLen {
		return false
	}
	prefix := shorter
	if prefix > e.rules.TitlePrefixLen {
		prefix = e.rules.TitlePrefixLen
	}
	return a[:prefix] == b[:prefix]
}

// cleanTitle lowercases, trims, and strips trailing periods so ellipsized
// truncations compare equal to their originals.
func cleanTitle(t string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(t)), ".")
}
