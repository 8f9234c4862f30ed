package document

import "sort"

// SectionStats aggregates record counts for one top-level section.
type SectionStats struct {
	ContentCount   int      `json:"content_count"`
	TableCount     int      `json:"table_count"`
	ImageCount     int      `json:"image_count"`
	ReferenceCount int      `json:"reference_count"`
	Subsections    []string `json:"subsections"`
}

// unknownSection groups records emitted before any main header appeared.
const unknownSection = "Unknown"

// SectionSummary derives per-section counts from a finished Document. It is
// a pure second-pass read: calling it repeatedly on the same Document always
// yields the same result.
func (d *Document) SectionSummary() map[string]SectionStats {
	sections := make(map[string]*SectionStats)
	subsections := make(map[string]map[string]bool)

	tally := func(records []Record, incr func(*SectionStats)) {
		for _, rec := range records {
			parent := rec.ParentSection
			if parent == "" {
				parent = unknownSection
			}
			stats, ok := sections[parent]
			if !ok {
				stats = &SectionStats{}
				sections[parent] = stats
				subsections[parent] = make(map[string]bool)
			}
			incr(stats)
			if rec.Subsection != "" {
				subsections[parent][rec.Subsection] = true
			}
		}
	}

	tally(d.Content, func(s *SectionStats) { s.ContentCount++ })
	tally(d.Tables, func(s *SectionStats) { s.TableCount++ })
	tally(d.Images, func(s *SectionStats) { s.ImageCount++ })
	tally(d.References, func(s *SectionStats) { s.ReferenceCount++ })

	out := make(map[string]SectionStats, len(sections))
	for name, stats := range sections {
		subs := make([]string, 0, len(subsections[name]))
		for sub := range subsections[name] {
			subs = append(subs, sub)
		}
		sort.Strings(subs)
		stats.Subsections = subs
		out[name] = *stats
	}
	return out
}
