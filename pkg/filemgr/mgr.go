package filemgr

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pingcap/errors"
)

const (
	mazeSubDir = "maze"
	mazeExt    = ".txt"
)

// Manager owns a folder and organizes the mazes written by a batch run. Every
// maze is stored as <workDir>/maze/<name>.txt.
type Manager struct {
	workDir string
}

// NewManager creates a new Manager instance on the given work directory.
func NewManager(workDir string) *Manager {
	return &Manager{workDir: workDir}
}

// WriteMaze writes the rendered maze to its file, replacing an older one with
// the same name.
func (m *Manager) WriteMaze(name string, content []byte) error {
	dir := filepath.Join(m.workDir, mazeSubDir)
	if err := os.MkdirAll(dir, 0776); err != nil {
		return errors.Trace(err)
	}
	return m.atomicWrite(m.MazePath(name), content)
}

// MazePath returns the path of the maze file with the given name.
func (m *Manager) MazePath(name string) string {
	return filepath.Join(m.workDir, mazeSubDir, name+mazeExt)
}

func (m *Manager) atomicWrite(path string, content []byte) error {
	// there's a little chance that rand.Int conflicts
	tmpFile := path + ".tmp" + strconv.Itoa(rand.Int())
	if err := os.WriteFile(tmpFile, content, 0666); err != nil {
		return errors.Annotatef(err, "write %s", tmpFile)
	}
	return errors.Annotatef(os.Rename(tmpFile, path), "rename %s to %s", tmpFile, path)
}
