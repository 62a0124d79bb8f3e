package allocate

import "github.com/sells-group/field-allocator/internal/model"

// Roster is the mutable officer set owned by an Engine for the duration of
// a run. Nothing else may modify it while a run is in progress.
type Roster struct {
	officers []model.Officer
}

// NewRoster copies officers into a new Roster, preserving order.
func NewRoster(officers []model.Officer) *Roster {
	r := &Roster{officers: make([]model.Officer, len(officers))}
	copy(r.officers, officers)
	return r
}

// Len returns the number of officers.
func (r *Roster) Len() int {
	return len(r.officers)
}

// Officer returns the officer at position i.
func (r *Roster) Officer(i int) model.Officer {
	return r.officers[i]
}

// Officers returns a copy of the current officer states.
func (r *Roster) Officers() []model.Officer {
	out := make([]model.Officer, len(r.officers))
	copy(out, r.officers)
	return out
}

// dispatch moves officer i to loc and marks it busy.
func (r *Roster) dispatch(i int, loc model.Coordinate) {
	r.officers[i].Location = loc
	r.officers[i].Active = false
}
