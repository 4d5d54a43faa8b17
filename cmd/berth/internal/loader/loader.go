package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DeclarationLoadResult is one file's load outcome. Err is set when the
// file could not be read; parsing happens downstream.
type DeclarationLoadResult struct {
	Path string
	Data []byte
	Err  error
}

// collectYAMLFiles returns a list of YAML file paths from the given path.
// If path is a file, it returns a single-element slice.
// If path is a directory, it returns all .yaml and .yml files in the directory (non-recursive).
func collectYAMLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil, fmt.Errorf("file %q must have a .yaml or .yml extension", path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// LoadDeclarationsDetailed loads declaration files from a file or
// directory, returning per-file results (including read errors) so callers
// can continue on failure. Only errors accessing the path itself are
// returned directly.
func LoadDeclarationsDetailed(path string) ([]DeclarationLoadResult, error) {
	files, err := collectYAMLFiles(path)
	if err != nil {
		return nil, err
	}

	results := make([]DeclarationLoadResult, 0, len(files))
	for _, file := range files {
		data, loadErr := loadFile(file)
		results = append(results, DeclarationLoadResult{Path: file, Data: data, Err: loadErr})
	}

	return results, nil
}

// LoadDeclaration loads exactly one declaration file.
func LoadDeclaration(path string) ([]byte, error) {
	return loadFile(path)
}

// loadFile reads a YAML file and returns its content as a byte slice.
func loadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path %q is a directory, provide a path to a declaration file (.yaml or .yml)", path)
	}

	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("file %q must have a .yaml or .yml extension", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return content, nil
}
