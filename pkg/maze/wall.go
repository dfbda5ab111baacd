package maze

import (
	"cmp"
	"maps"
	"slices"
)

// Coord is a position in the rendered character grid. Row 0 is the top
// border, and cell i is drawn on row i/N+1.
type Coord struct {
	Row int
	Col int
}

// CoordSet is a set of render coordinates where the wall glyph is replaced by
// open space.
type CoordSet map[Coord]struct{}

// Add puts c into the set.
func (s CoordSet) Add(c Coord) {
	s[c] = struct{}{}
}

// Contains reports whether c is in the set.
func (s CoordSet) Contains(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of coordinates in the set.
func (s CoordSet) Len() int {
	return len(s)
}

// Sorted returns the coordinates ordered by row and then column.
func (s CoordSet) Sorted() []Coord {
	return slices.SortedFunc(maps.Keys(s), func(a, b Coord) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
}

// Wall is the boundary between two grid-adjacent cells. Second is either
// First+1 (a right wall) or First+N (a bottom wall).
type Wall struct {
	First  int
	Second int
	Coord  Coord
}

func newWall(first, second, n int) Wall {
	col := (second % n) * 2
	if second-first == n {
		col++
	}
	return Wall{
		First:  first,
		Second: second,
		Coord:  Coord{Row: first/n + 1, Col: col},
	}
}

// IsRight reports whether w separates a cell from its right neighbour.
func (w Wall) IsRight() bool {
	return w.Second-w.First == 1
}

// EnumerateWalls returns every internal wall of an n x n grid, which is
// 2*n*(n-1) walls. Cells in the last column have no right wall and cells in
// the last row have no bottom wall.
func EnumerateWalls(n int) []Wall {
	if n < 2 {
		return nil
	}
	size := n * n
	walls := make([]Wall, 0, 2*n*(n-1))
	for i := 0; i < size-1; i++ {
		lastCol := (i+1)%n == 0
		lastRow := i >= size-n
		if !lastCol {
			walls = append(walls, newWall(i, i+1, n))
		}
		if !lastRow {
			walls = append(walls, newWall(i, i+n, n))
		}
	}
	return walls
}

// Entrance is the opening on the left of cell 0.
func Entrance(n int) Coord {
	return Coord{Row: 1, Col: 0}
}

// Exit is the opening on the right of the last cell.
func Exit(n int) Coord {
	return Coord{Row: n, Col: 2 * n}
}
