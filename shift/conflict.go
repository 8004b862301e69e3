package shift

// =============================================================================
// CONFLICT DETECTOR - Overlap gate applied at registration time
// =============================================================================

// Candidate is an interval about to be registered (or edited in place).
type Candidate struct {
	ID       string // set when editing, so the entry does not conflict with itself
	PersonID string
	Date     Date
	Start    Clock
	End      *Clock
}

// CandidateFor builds the candidate describing an existing entry.
func CandidateFor(e Entry) Candidate {
	return Candidate{ID: e.ID, PersonID: e.PersonID, Date: e.Date, Start: e.Start, End: e.End}
}

// FindConflict returns the first entry in existing whose [start, end) range
// intersects the candidate's, or nil. Entries of other people, of other
// dates, still open, or carrying the candidate's own ID are skipped. An open
// candidate never conflicts.
func FindConflict(c Candidate, existing []Entry) *Entry {
	if c.End == nil {
		return nil
	}
	cs, ce := span(c.Start, *c.End)

	for i := range existing {
		e := existing[i]
		if e.PersonID != c.PersonID || !e.Date.Equal(c.Date) || e.End == nil {
			continue
		}
		if c.ID != "" && e.ID == c.ID {
			continue
		}
		es, ee := span(e.Start, *e.End)
		if overlaps(cs, ce, es, ee) {
			return &existing[i]
		}
	}
	return nil
}

// CheckConflict wraps FindConflict into a *ConflictError.
func CheckConflict(c Candidate, existing []Entry) error {
	if hit := FindConflict(c, existing); hit != nil {
		return &ConflictError{Candidate: c, Existing: *hit}
	}
	return nil
}

func overlaps(cs, ce, es, ee int) bool {
	startInside := cs >= es && cs < ee
	endInside := ce > es && ce <= ee
	contains := cs <= es && ce >= ee
	return startInside || endInside || contains
}
