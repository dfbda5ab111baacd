package maze

// noParent marks a root. It must not collide with cell 0.
const noParent = -1

// unionFind tracks which cells are already connected by removed walls. Cells
// are identified by their row-major index.
type unionFind struct {
	parent      []int
	mergedCount int
}

func newUnionFind(size int) *unionFind {
	parent := make([]int, size)
	for i := range parent {
		parent[i] = noParent
	}
	return &unionFind{parent: parent}
}

// find follows parent links without compressing the path, so it never mutates
// the forest.
func (u *unionFind) find(x int) int {
	for u.parent[x] != noParent {
		x = u.parent[x]
	}
	return x
}

// union merges the trees of x and y and reports whether they were disjoint.
// The smaller root is always attached under the larger root, so the root of a
// fully merged forest is the last cell.
func (u *unionFind) union(x, y int) bool {
	rootX := u.find(x)
	rootY := u.find(y)
	if rootX == rootY {
		return false
	}

	if rootX > rootY {
		u.parent[rootY] = rootX
	} else {
		u.parent[rootX] = rootY
	}
	u.mergedCount++
	return true
}

func (u *unionFind) equivalent(x, y int) bool {
	return u.find(x) == u.find(y)
}

// merged returns the number of successful unions.
func (u *unionFind) merged() int {
	return u.mergedCount
}
