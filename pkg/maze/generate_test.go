package maze

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lance6716/perfect-maze/pkg/util"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays draws, reduced into the requested range. Once the
// script is used up it falls back to a seeded source, or loops over the script
// when there is none.
type scriptedRand struct {
	draws    []int
	next     int
	fallback *rand.Rand
}

func (r *scriptedRand) Intn(n int) int {
	if r.next >= len(r.draws) && r.fallback != nil {
		return r.fallback.Intn(n)
	}
	d := r.draws[r.next%len(r.draws)]
	r.next++
	return d % n
}

// requireSpanningTree replays the removed walls through a fresh union-find and
// checks every one joins two separate components, ending with one tree.
func requireSpanningTree(t *testing.T, m *Maze) {
	n := m.Size
	require.Len(t, m.Passages, n*n-1)
	require.Equal(t, n*n+1, m.Removed.Len())
	require.True(t, m.Removed.Contains(Entrance(n)))
	require.True(t, m.Removed.Contains(Exit(n)))

	uf := newUnionFind(n * n)
	for _, w := range m.Passages {
		require.True(t, m.Removed.Contains(w.Coord))
		require.True(t, uf.union(w.First, w.Second), "wall %v closes a cycle", w)
	}
	root := uf.find(0)
	for i := range n * n {
		require.Equal(t, root, uf.find(i))
	}
}

func TestGenerateN2(t *testing.T) {
	m, err := Generate(2, &scriptedRand{draws: []int{0}})
	require.NoError(t, err)
	require.Equal(t, 3, m.Draws)
	require.Equal(t, []Wall{
		{First: 0, Second: 1, Coord: Coord{Row: 1, Col: 2}},
		{First: 2, Second: 3, Coord: Coord{Row: 2, Col: 2}},
		{First: 1, Second: 3, Coord: Coord{Row: 1, Col: 3}},
	}, m.Passages)
	require.Equal(t, []Coord{{1, 0}, {1, 2}, {1, 3}, {2, 2}, {2, 4}}, m.Removed.Sorted())
	requireSpanningTree(t, m)
}

func TestGenerateRedrawsRedundantWalls(t *testing.T) {
	// walls of a 3x3 grid in enumeration order:
	// 0:0-1 1:0-3 2:1-2 3:1-4 4:2-5 5:3-4 6:3-6 7:4-5 8:4-7 9:5-8 10:6-7 11:7-8
	// 0 removes 0-1, 1 removes 0-3, 5 removes 3-4, then 3 hits 1-4 which is
	// redundant and must stay in the pool.
	rnd := &scriptedRand{
		draws:    []int{0, 1, 5, 3, 3},
		fallback: rand.New(rand.NewSource(1)),
	}
	m, err := Generate(3, rnd)
	require.NoError(t, err)
	require.Equal(t, []Wall{
		{First: 0, Second: 1, Coord: Coord{Row: 1, Col: 2}},
		{First: 0, Second: 3, Coord: Coord{Row: 1, Col: 1}},
		{First: 3, Second: 4, Coord: Coord{Row: 2, Col: 2}},
	}, m.Passages[:3])
	require.GreaterOrEqual(t, m.Draws, 10)
	require.False(t, m.Removed.Contains(Coord{Row: 1, Col: 3}))
	requireSpanningTree(t, m)
}

func TestGenerateN1(t *testing.T) {
	m, err := Generate(1, &scriptedRand{draws: []int{0}})
	require.NoError(t, err)
	require.Empty(t, m.Passages)
	require.Zero(t, m.Draws)
	require.Equal(t, []Coord{Entrance(1), Exit(1)}, m.Removed.Sorted())
}

func TestGenerateN3(t *testing.T) {
	seed := time.Now().UnixNano()
	t.Logf("seed: %d", seed)
	m, err := Generate(3, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	require.Len(t, m.Passages, 8)
	requireSpanningTree(t, m)
}

func TestGenerateInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Generate(n, &scriptedRand{draws: []int{0}})
		require.Equal(t, ErrInvalidSize, errors.Cause(err))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		a, err := Generate(10, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		b, err := Generate(10, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		require.Equal(t, a, b, "seed: %d", seed)
	}
}

func TestGeneratePerfectMaze(t *testing.T) {
	seed := time.Now().UnixNano()
	t.Logf("seed: %d", seed)
	rnd := rand.New(rand.NewSource(seed))

	for n := 2; n <= 20; n++ {
		m, err := Generate(n, rnd)
		require.NoError(t, err)
		requireSpanningTree(t, m)
		requireUniquePaths(t, m)
	}
}

// requireUniquePaths checks that a walk over passages from cell 0 reaches each
// cell exactly once, so there is exactly one simple path between any two
// cells.
func requireUniquePaths(t *testing.T, m *Maze) {
	n := m.Size
	adj := make([][]int, n*n)
	for _, w := range m.Passages {
		adj[w.First] = append(adj[w.First], w.Second)
		adj[w.Second] = append(adj[w.Second], w.First)
	}

	parent := make([]int, n*n)
	for i := range parent {
		parent[i] = noParent
	}
	visited := make([]bool, n*n)
	visited[0] = true
	queue := []int{0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if next == parent[cur] {
				continue
			}
			require.False(t, visited[next], "cell %d reached twice", next)
			visited[next] = true
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	for i, v := range visited {
		require.True(t, v, "cell %d unreachable", i)
	}
}

func TestRemoveWallsExhaustedPool(t *testing.T) {
	// every wall is removable but there are too few of them
	walls := []Wall{newWall(0, 1, 2)}
	_, err := removeWalls(2, walls, &scriptedRand{draws: []int{0}})
	require.True(t, util.IsInvariantViolation(err))
	require.ErrorContains(t, err, "no removable candidate wall left after 1 of 3 unions")

	// cell 8 of a 3x3 grid is only reachable through 5-8 and 7-8, without them
	// the pool ends up holding only redundant walls
	var kept []Wall
	for _, w := range EnumerateWalls(3) {
		if w.Second != 8 {
			kept = append(kept, w)
		}
	}
	_, err = removeWalls(3, kept, rand.New(rand.NewSource(1)))
	require.True(t, util.IsInvariantViolation(err))
	require.ErrorContains(t, err, "no removable candidate wall left after 7 of 8 unions")
}
