// Package render draws a generated maze as text. The grid has N+1 rows and
// 2N+1 columns: row 0 is the top border, and cell i sits on row i/N+1 at
// column 2*(i%N)+1, where its glyph is the bottom wall.
package render

import (
	"io"
	"os"
	"strings"

	"github.com/lance6716/perfect-maze/pkg/maze"
	"github.com/pingcap/errors"
)

const (
	blank          = ' '
	verticalWall   = '|'
	horizontalWall = '_'
)

// Glyph returns the character drawn at (row, col) for a maze whose removed
// walls are open.
func Glyph(row, col int, open maze.CoordSet) byte {
	if open.Contains(maze.Coord{Row: row, Col: col}) {
		return blank
	}
	if col%2 == 1 {
		return horizontalWall
	}
	if row == 0 {
		return blank
	}
	return verticalWall
}

// Lines renders m into its text rows without line endings. It does not modify
// m, so rendering the same maze twice gives the same lines.
func Lines(m *maze.Maze) []string {
	n := m.Size
	width := 2*n + 1
	lines := make([]string, 0, n+1)
	buf := make([]byte, width)
	for row := 0; row <= n; row++ {
		for col := range width {
			buf[col] = Glyph(row, col, m.Removed)
		}
		lines = append(lines, string(buf))
	}
	return lines
}

// Text renders m with lineEnding after every row.
func Text(m *maze.Maze, lineEnding string) string {
	var b strings.Builder
	for _, line := range Lines(m) {
		b.WriteString(line)
		b.WriteString(lineEnding)
	}
	return b.String()
}

// Print writes m to w, one row per line.
func Print(w io.Writer, m *maze.Maze) error {
	_, err := io.WriteString(w, Text(m, "\n"))
	return errors.Trace(err)
}

// SaveToText appends m to the file at path with CRLF line endings, creating
// the file if needed.
func SaveToText(path string, m *maze.Maze) error {
	if path == "" {
		return errors.New("empty output path")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return errors.Annotatef(err, "open %s", path)
	}
	_, err = file.WriteString(Text(m, "\r\n"))
	if err != nil {
		file.Close()
		return errors.Annotatef(err, "write maze to %s", path)
	}
	return errors.Annotatef(file.Close(), "close %s", path)
}
