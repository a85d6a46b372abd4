package availability

import "refugio/models"

// SelectionState names the phase of a guest's two-click range pick.
type SelectionState string

const (
	SelectionEmpty    SelectionState = "empty"
	SelectionPartial  SelectionState = "partialStart"
	SelectionComplete SelectionState = "complete"
)

// Selection is the guest's in-progress or completed range pick. It is a
// value: transitions return a new Selection and never write anywhere.
type Selection struct {
	From models.DateOnly `json:"from"`
	To   models.DateOnly `json:"to"`
}

func (s Selection) State() SelectionState {
	switch {
	case s.From.IsZero():
		return SelectionEmpty
	case s.To.IsZero():
		return SelectionPartial
	default:
		return SelectionComplete
	}
}

// SelectDate applies one date click against the current index.
//
// A blocked click on an empty or completed selection is rejected with
// ErrDateUnavailable and the selection is returned unchanged. From a partial
// pick, the click and the existing anchor form a candidate range: if that
// range crosses any blocked day, the click becomes the new anchor, since the
// candidate could never be completed. Otherwise the pick completes with
// sorted bounds. A valid click on
// a completed selection discards it and anchors a fresh pick.
func (s Selection) SelectDate(q Queries, clicked models.DateOnly) (Selection, error) {
	if !q.Ready() {
		return s, ErrNotReady
	}
	if s.State() == SelectionPartial {
		from, to := s.From, clicked
		if to.Before(from) {
			from, to = to, from
		}
		if q.HasConflict(from, to) {
			return Selection{From: clicked}, nil
		}
		return Selection{From: from, To: to}, nil
	}
	if q.IsBlocked(clicked) {
		return s, ErrDateUnavailable
	}
	return Selection{From: clicked}, nil
}

// Revalidate re-checks a completed selection after an index rebuild. A range
// that now crosses a blocked day collapses back to its start date; everything
// else passes through unchanged.
func (s Selection) Revalidate(q Queries) Selection {
	if s.State() == SelectionComplete && q.HasConflict(s.From, s.To) {
		return Selection{From: s.From}
	}
	return s
}
