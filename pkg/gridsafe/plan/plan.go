// Package plan finds shortest routes through the proven-safe region.
// The planner never considers a cell the classifier has not labeled
// Safe; under the closed-world policy "unproven" means "not to be
// entered".
package plan

import (
	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
)

// Shortest runs breadth-first search from start over the subgraph of
// cells accepted by passable, looking for any cell accepted by goal.
// The start cell itself is always traversable (the agent stands on it).
//
// The returned path starts at start and ends at the chosen goal cell.
// When several goal cells lie at the same minimal distance, the lowest
// (row, column) cell wins, so planning is deterministic. The second
// return is false when no goal cell is reachable.
func Shortest(start grid.Cell, width, height int, passable, goal func(grid.Cell) bool) ([]grid.Cell, bool) {
	dist := map[grid.Cell]int{start: 0}
	parent := map[grid.Cell]grid.Cell{}

	queue := []grid.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors(width, height) {
			if _, seen := dist[n]; seen || !passable(n) {
				continue
			}
			dist[n] = dist[cur] + 1
			parent[n] = cur
			queue = append(queue, n)
		}
	}

	best, found := grid.Cell{}, false
	for c, d := range dist {
		if !goal(c) {
			continue
		}
		if !found || d < dist[best] || (d == dist[best] && c.Less(best)) {
			best, found = c, true
		}
	}
	if !found {
		return nil, false
	}

	path := []grid.Cell{best}
	for best != start {
		best = parent[best]
		path = append(path, best)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
