package batch

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/fingervision/ridgemark/internal/utils"
)

// discoverImageFiles expands file and directory arguments into a sorted,
// deduplicated list of supported image paths.
func discoverImageFiles(args []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := discoverInDirectory(arg, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				if _, dup := seen[f]; !dup {
					seen[f] = struct{}{}
					files = append(files, f)
				}
			}
			continue
		}
		if utils.IsSupportedImage(arg) && shouldIncludeFile(arg, includePatterns, excludePatterns) {
			if _, dup := seen[arg]; !dup {
				seen[arg] = struct{}{}
				files = append(files, arg)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func discoverInDirectory(dir string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string
	walk := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if utils.IsSupportedImage(path) && shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, err
	}
	return files, nil
}

func shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	if matchesAnyPattern(path, excludePatterns) {
		return false
	}
	if len(includePatterns) == 0 {
		return true
	}
	return matchesAnyPattern(path, includePatterns)
}

func matchesAnyPattern(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, p := range patterns {
		if ok, err := filepath.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}
