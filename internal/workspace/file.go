package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// LoadFile reads the folder list of a VS Code style .code-workspace file.
// Relative folder paths are resolved against the file's directory; folders
// without a "name" are named after their last path element.
func LoadFile(path string) ([]Folder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workspace file %s: %w", path, err)
	}
	return ParseFile(path, data)
}

// ParseFile parses workspace file contents. path is only used to resolve
// relative folders.
func ParseFile(path string, data []byte) ([]Folder, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing workspace file %s: invalid JSON", path)
	}

	baseDir := filepath.Dir(path)
	var folders []Folder

	gjson.GetBytes(data, "folders").ForEach(func(_, entry gjson.Result) bool {
		folderPath := entry.Get("path").String()
		if folderPath == "" {
			return true
		}
		if !filepath.IsAbs(folderPath) {
			folderPath = filepath.Join(baseDir, folderPath)
		}

		if f, err := NewFolder(folderPath, entry.Get("name").String()); err == nil {
			folders = append(folders, f)
		}
		return true
	})

	return folders, nil
}
