package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// MediaDir implements ports.MediaResolver over image{id}.jpg files.
type MediaDir struct {
	Dir string
}

// NewMediaDir creates a resolver rooted at dir.
func NewMediaDir(dir string) MediaDir {
	return MediaDir{Dir: dir}
}

// Resolve returns the image path for a question id, or "" when there is no
// such file. Id 0 is the welcome image.
func (m MediaDir) Resolve(questionID int) string {
	if m.Dir == "" {
		return ""
	}
	path := filepath.Join(m.Dir, fmt.Sprintf("image%d.jpg", questionID))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}
