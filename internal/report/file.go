package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// artifactDirPerm is the permission for created artifact directories.
const artifactDirPerm = 0750

// ArtifactPath returns the artifact file path for one group, of the form
// <outputDir>/<label>_genera_<regionSlug>.json.
func ArtifactPath(outputDir, label, regionSlug string) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_genera_%s.json", label, regionSlug))
}

// CreateFile creates the artifact file at path, creating parent directories
// as needed. The caller owns closing the returned file.
func CreateFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, artifactDirPerm); err != nil {
			return nil, fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create artifact %q: %w", path, err)
	}
	return f, nil
}
