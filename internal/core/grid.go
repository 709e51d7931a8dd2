package core

// Position is an integer cell coordinate inside a space.
type Position struct {
	X int
	Y int
}

// Grid is the engine-facing projection of a space: fixed dimensions plus
// the set of cells blocked by static elements. It is immutable for the
// lifetime of a Room; catalog edits after a Room opens are not reflected.
type Grid struct {
	Width     int
	Height    int
	Obstacles map[Position]struct{}
}

// InBounds reports whether p lies inside [0,width) x [0,height).
func (g Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Blocked reports whether p is covered by a static obstacle.
func (g Grid) Blocked(p Position) bool {
	_, ok := g.Obstacles[p]
	return ok
}
