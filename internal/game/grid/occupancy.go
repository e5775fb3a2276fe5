package grid

// Occupancy is the set of tiles considered impassable for one planning pass.
// It is built fresh for each pass and never shared between passes.
type Occupancy map[Pos]struct{}

// BuildOccupancy unions the static blockers with the given occupant positions.
//
// Postcondition: every element of static and occupants is in the returned set.
func BuildOccupancy(static []Pos, occupants []Pos) Occupancy {
	occ := make(Occupancy, len(static)+len(occupants))
	for _, p := range static {
		occ[p] = struct{}{}
	}
	for _, p := range occupants {
		occ[p] = struct{}{}
	}
	return occ
}

// Blocked reports whether p is in the set.
func (o Occupancy) Blocked(p Pos) bool {
	_, ok := o[p]
	return ok
}

// Add marks p as blocked.
func (o Occupancy) Add(p Pos) { o[p] = struct{}{} }

// Remove clears p.
func (o Occupancy) Remove(p Pos) { delete(o, p) }

// Clone returns an independent copy.
func (o Occupancy) Clone() Occupancy {
	cp := make(Occupancy, len(o))
	for p := range o {
		cp[p] = struct{}{}
	}
	return cp
}
