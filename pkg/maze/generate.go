package maze

import (
	"github.com/lance6716/perfect-maze/pkg/util"
	"github.com/pingcap/errors"
)

// ErrInvalidSize is returned when the grid order is not positive.
var ErrInvalidSize = errors.New("maze size must be positive")

// Rand is the source of randomness used by Generate. *math/rand.Rand
// satisfies it.
type Rand interface {
	// Intn returns a uniform random number in [0, n).
	Intn(n int) int
}

// Maze is the result of one generation run.
type Maze struct {
	// Size is the grid order N.
	Size int
	// Removed holds the render coordinates of every removed wall, plus the
	// entrance and the exit.
	Removed CoordSet
	// Passages are the removed walls in removal order.
	Passages []Wall
	// Draws is the number of random draws the run took.
	Draws int
}

// Generate builds a perfect maze on an n x n grid. Walls are drawn uniformly
// from the candidate pool; a wall is removed only if the two cells it separates
// are not connected yet. A wall found redundant stays in the pool and may be
// drawn again. The run stops once cell 0 reaches the last cell and n*n-1
// unions have succeeded.
func Generate(n int, rnd Rand) (*Maze, error) {
	if n < 1 {
		return nil, errors.Annotatef(ErrInvalidSize, "got %d", n)
	}
	return removeWalls(n, EnumerateWalls(n), rnd)
}

func removeWalls(n int, walls []Wall, rnd Rand) (*Maze, error) {
	size := n * n
	m := &Maze{
		Size:     n,
		Removed:  make(CoordSet, size+1),
		Passages: make([]Wall, 0, size-1),
	}
	m.Removed.Add(Entrance(n))
	m.Removed.Add(Exit(n))

	uf := newUnionFind(size)
	last := size - 1
	// misses counts redundant draws since the last removal.
	misses := 0
	for !uf.equivalent(0, last) || uf.merged() < last {
		if misses >= len(walls) {
			if !hasRemovableWall(uf, walls) {
				return nil, util.WrapInvariantViolation(errors.Errorf(
					"no removable candidate wall left after %d of %d unions on a %dx%d grid",
					uf.merged(), last, n, n,
				))
			}
			misses = 0
		}

		idx := rnd.Intn(len(walls))
		m.Draws++
		w := walls[idx]
		if uf.equivalent(w.First, w.Second) {
			misses++
			continue
		}
		misses = 0

		lastIdx := len(walls) - 1
		walls[idx] = walls[lastIdx]
		walls = walls[:lastIdx]

		uf.union(w.First, w.Second)
		m.Removed.Add(w.Coord)
		m.Passages = append(m.Passages, w)
	}
	return m, nil
}

// hasRemovableWall reports whether any wall in the pool still separates two
// components. It is only consulted after as many consecutive redundant draws as
// the pool holds.
func hasRemovableWall(uf *unionFind, walls []Wall) bool {
	for _, w := range walls {
		if !uf.equivalent(w.First, w.Second) {
			return true
		}
	}
	return false
}
