package dicom

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions are the file extensions treated as DICOM when none are configured.
var DefaultExtensions = []string{".dcm"}

// ExcludedNames are filenames to skip
var ExcludedNames = map[string]bool{
	"DICOMDIR":                true,
	".DS_Store":               true,
	"Thumbs.db":               true,
	"desktop.ini":             true,
	".redactor-progress.json": true,
	"errors.log":              true,
}

// ExcludedExtensions are file extensions never sniffed for DICOM content
var ExcludedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".xml":  true,
	".txt":  true,
	".md":   true,
	".log":  true,
	".csv":  true,
	".zip":  true,
	".tar":  true,
	".gz":   true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
	".tmp":  true,
}

// ExcludedDirs are directory names to skip entirely
var ExcludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	".idea":        true,
	".vscode":      true,
}

// FinderOptions controls which files FindDicomFiles selects.
type FinderOptions struct {
	// Extensions are matched case-insensitively. Empty means DefaultExtensions.
	Extensions []string
	// SniffMagic also accepts files without a matching extension that carry
	// the "DICM" marker at offset 128.
	SniffMagic bool
	// Include and Exclude are doublestar globs matched against the path
	// relative to the root and against the base name.
	Include []string
	Exclude []string
	// SkipDirs are directories pruned from the walk (e.g. the output folder).
	SkipDirs []string
}

// FindDicomFiles finds all DICOM files under root, recursively.
func FindDicomFiles(root string, opts FinderOptions) ([]string, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	wanted := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		wanted[e] = true
	}

	skip := make(map[string]bool, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		if abs, err := filepath.Abs(d); err == nil {
			skip[abs] = true
		}
	}

	var files []string
	seenFiles := make(map[string]bool)

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files we can't access
		}

		if d.IsDir() {
			if path != root && ExcludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && skip[abs] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || ExcludedNames[d.Name()] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = d.Name()
		}
		rel = filepath.ToSlash(rel)

		if len(opts.Include) > 0 && !matchAnyGlob(rel, opts.Include) {
			return nil
		}
		if matchAnyGlob(rel, opts.Exclude) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		isDicom := wanted[ext]
		if !isDicom && opts.SniffMagic && !ExcludedExtensions[ext] {
			isDicom = hasDicomMagicBytes(path)
		}

		if isDicom && !seenFiles[path] {
			files = append(files, path)
			seenFiles[path] = true
		}

		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func matchAnyGlob(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, pathBase(rel)); ok {
			return true
		}
	}
	return false
}

func pathBase(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

// hasDicomMagicBytes checks if a file has the DICOM magic bytes ("DICM" at offset 128)
func hasDicomMagicBytes(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	header := make([]byte, 132)
	if _, err := io.ReadFull(file, header); err != nil {
		return false
	}

	return string(header[128:132]) == "DICM"
}
