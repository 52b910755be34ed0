package batch

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"mkvnorm/internal/logging"
	"mkvnorm/internal/outcome"
)

// Containers returns the container files under root, sorted by path.
// Hidden entries and files that already carry the output suffix are ignored.
// extensions are lowercase and dot-prefixed; empty means ".mkv".
//
// Only a failure to read root itself is returned. Unreadable entries below
// root are logged and skipped.
func Containers(fsys afero.Fs, root string, extensions []string, suffix string, logger *slog.Logger) ([]string, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if len(extensions) == 0 {
		extensions = []string{".mkv"}
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, outcome.Wrap(outcome.ErrDiscoveryIO, "batch", "stat root", root, err)
	}
	if !info.IsDir() {
		if isCandidate(filepath.Base(root), allowed, suffix) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var found []string
	err = afero.Walk(fsys, root, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logging.WarnWithContext(logger, "directory skipped", "discovery_entry_skipped",
				logging.String("path", path),
				logging.Error(outcome.Wrap(outcome.ErrDiscoveryIO, "batch", "walk", path, walkErr)),
				logging.String(logging.FieldErrorHint, "check permissions on the skipped entry"),
				logging.String(logging.FieldImpact, "containers below this entry are not processed"),
			)
			// A nil info means lstat failed; SkipDir there would skip the parent.
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		name := info.Name()
		if path != root && strings.HasPrefix(name, ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if isCandidate(name, allowed, suffix) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, outcome.Wrap(outcome.ErrDiscoveryIO, "batch", "walk", root, err)
	}
	sort.Strings(found)
	return found, nil
}

func isCandidate(name string, allowed map[string]struct{}, suffix string) bool {
	ext := filepath.Ext(name)
	if _, ok := allowed[strings.ToLower(ext)]; !ok {
		return false
	}
	if suffix != "" && strings.HasSuffix(strings.TrimSuffix(name, ext), suffix) {
		return false
	}
	return true
}
