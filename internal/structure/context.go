package structure

// SectionContext tracks the active section hierarchy during a single
// processing run. Exactly one instance exists per run; only the tracker
// transitions mutate it, in item order. The hierarchy path is always empty,
// [main], or [main, subsection]. A dangling subsection appears alone only
// when no main section has been seen yet.
type SectionContext struct {
	mainSection  string
	subsection   string
	hierarchy    []string
	inReferences bool
}

// applyHeader runs the tracker transition for a classified header.
func (s *SectionContext) applyHeader(v Verdict) {
	if !v.IsHeader {
		return
	}
	if v.IsMain {
		s.mainSection = v.Text
		s.subsection = ""
		s.hierarchy = []string{v.Text}
		// Replaces the prior value: a later non-references main header
		// turns the flag back off.
		s.inReferences = v.IsReferences
		return
	}

	s.subsection = v.Text
	if s.mainSection != "" {
		s.hierarchy = []string{s.mainSection, v.Text}
	} else {
		s.hierarchy = []string{v.Text}
	}
}

// MainSection returns the current main section title, "" if none yet.
func (s *SectionContext) MainSection() string { return s.mainSection }

// Subsection returns the current subsection title, "" if none.
func (s *SectionContext) Subsection() string { return s.subsection }

// InReferences reports whether the run is inside a references region.
func (s *SectionContext) InReferences() bool { return s.inReferences }

// Hierarchy returns a snapshot copy of the hierarchy path. Records hold the
// copy, so later transitions never retroactively change emitted records.
func (s *SectionContext) Hierarchy() []string {
	if len(s.hierarchy) == 0 {
		return []string{}
	}
	out := make([]string, len(s.hierarchy))
	copy(out, s.hierarchy)
	return out
}
