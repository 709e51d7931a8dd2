package http

import (
	"context"
	"fmt"

	"github.com/vovakirdan/gridspace-server/internal/core"
	"github.com/vovakirdan/gridspace-server/internal/store"
)

// buildGrid projects a persisted space onto the engine's grid: dimensions
// plus every cell covered by a placed element whose catalog entry is
// static. The grid is built once at join time; later catalog edits are
// not visible to an already-open room.
func buildGrid(ctx context.Context, st store.SpaceStore, spaceID string) (core.Grid, error) {
	space, err := st.GetSpaceByID(ctx, spaceID)
	if err != nil {
		return core.Grid{}, fmt.Errorf("get space: %w", err)
	}

	placed, err := st.ListSpaceElements(ctx, spaceID)
	if err != nil {
		return core.Grid{}, fmt.Errorf("list space elements: %w", err)
	}

	obstacles := make(map[core.Position]struct{})
	for _, p := range placed {
		if !p.Element.Static {
			continue
		}
		for dy := 0; dy < p.Element.Height; dy++ {
			for dx := 0; dx < p.Element.Width; dx++ {
				obstacles[core.Position{X: p.X + dx, Y: p.Y + dy}] = struct{}{}
			}
		}
	}

	return core.Grid{
		Width:     space.Width,
		Height:    space.Height,
		Obstacles: obstacles,
	}, nil
}
