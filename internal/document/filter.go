package document

import "strings"

// Filtered is the Document-shaped subset returned by FilterBySection: the
// same four buckets, no metadata.
type Filtered struct {
	Content    []Record `json:"content"`
	Tables     []Record `json:"tables"`
	Images     []Record `json:"images"`
	References []Record `json:"references"`
}

// FilterBySection returns every record whose hierarchy snapshot contains
// name as a case-insensitive substring. Records without a hierarchy snapshot
// match on ParentSection instead. The receiver is not mutated.
func (d *Document) FilterBySection(name string) *Filtered {
	needle := strings.ToLower(name)

	match := func(rec Record) bool {
		if len(rec.SectionHierarchy) > 0 {
			for _, section := range rec.SectionHierarchy {
				if strings.Contains(strings.ToLower(section), needle) {
					return true
				}
			}
			return false
		}
		return rec.ParentSection != "" &&
			strings.Contains(strings.ToLower(rec.ParentSection), needle)
	}

	keep := func(records []Record) []Record {
		out := []Record{}
		for _, rec := range records {
			if match(rec) {
				out = append(out, rec)
			}
		}
		return out
	}

	return &Filtered{
		Content:    keep(d.Content),
		Tables:     keep(d.Tables),
		Images:     keep(d.Images),
		References: keep(d.References),
	}
}
