package core

// ValidMove reports whether a movement request is acceptable: the target
// must be in bounds, free of static obstacles, and at most one cell away
// from the current position on each axis. Co-location with other users is
// allowed, so occupancy is not checked here.
func ValidMove(current, requested Position, g Grid) bool {
	if !g.InBounds(requested) {
		return false
	}
	if g.Blocked(requested) {
		return false
	}

	dx := requested.X - current.X
	dy := requested.Y - current.Y
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}
	return true
}
