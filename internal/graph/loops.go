package graph

import (
	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/random"
)

// AugmentLoops picks up to want edges from candidates that are not in tree
// and are no longer than maxLength. Candidates are drawn uniformly without
// replacement; a rejected edge does not count against want. Returning fewer
// than want edges is not an error.
func AugmentLoops(candidates, tree geom.EdgeSet, points []geom.Point, want int, maxLength float64, rng random.Source) []geom.EdgeKey {
	// Sorted so a seeded source always sees the same candidate order.
	pool := candidates.Difference(tree)

	loops := make([]geom.EdgeKey, 0, want)
	for len(loops) < want && len(pool) > 0 {
		i := rng.UniformInt(0, len(pool))
		k := pool[i]
		pool = append(pool[:i], pool[i+1:]...)

		if points[k.A].Dist(points[k.B]) > maxLength {
			continue
		}
		loops = append(loops, k)
	}
	return loops
}
