package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Extract materializes the embedded skeleton into outputDir. Templates are
// written as-is: stubs stay inert and tokens stay unsubstituted until a
// configure run. The destination must be empty or absent.
func Extract(outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existing, err := os.ReadDir(outputDir)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	var files []string
	err = fs.WalkDir(skeletonFS, "skeleton", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("skeleton", path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		outPath := filepath.Join(outputDir, rel)

		if d.IsDir() {
			return os.MkdirAll(outPath, 0755)
		}

		data, err := fs.ReadFile(skeletonFS, path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
