package merge

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/agents"
)

// Report lists what a merge did, with destination paths.
type Report struct {
	Copied  []string
	Skipped []string // destination already existed
	Failed  []Failure
}

// Failure is a path that could not be merged.
type Failure struct {
	Path string
	Err  error
}

// Merger copies source trees into destination trees.
type Merger struct {
	// IsGeneric reports whether a directory name should be remapped to the
	// target directory. Defaults to agents.IsGenericFolder.
	IsGeneric func(name string) bool

	// Excludes are doublestar patterns matched against the slash-separated
	// path relative to the merge source. Empty means every file is merged.
	Excludes []string

	Logger *slog.Logger
}

// New returns a Merger using the agent table. It excludes nothing.
func New(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{
		IsGeneric: agents.IsGenericFolder,
		Logger:    logger,
	}
}

// MergeInto copies every file under src into dst, remapping generic
// assistant folders to dst/targetDirName. Files that already exist at the
// destination are left untouched and reported as skipped. Per-file failures
// do not stop the walk; they are collected in the report and joined into the
// returned error.
func (m *Merger) MergeInto(src, dst, targetDirName string) (*Report, error) {
	r := &Report{}
	if err := m.mergeDir(src, dst, targetDirName, "", r); err != nil {
		return r, err
	}

	if len(r.Failed) > 0 {
		errs := make([]error, 0, len(r.Failed))
		for _, f := range r.Failed {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
		}
		return r, errors.Join(errs...)
	}
	return r, nil
}

// mergeDir merges src into dst. rel is src relative to the merge root, in
// slash form, used for exclusion matching.
func (m *Merger) mergeDir(src, dst, target, rel string, r *Report) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		if rel == "" {
			return fmt.Errorf("creating %s: %w", dst, err)
		}
		r.Failed = append(r.Failed, Failure{Path: dst, Err: err})
		return nil
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("reading %s: %w", src, err)
		}
		r.Failed = append(r.Failed, Failure{Path: src, Err: err})
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		childRel := path.Join(rel, name)
		if m.excluded(childRel) {
			m.logger().Debug("excluded from merge", "path", childRel)
			continue
		}

		srcPath := filepath.Join(src, name)

		switch {
		case entry.IsDir():
			dstPath := filepath.Join(dst, name)
			if m.isGeneric(name) {
				dstPath = filepath.Join(dst, target)
			}
			// Nested failures are recorded in the report.
			_ = m.mergeDir(srcPath, dstPath, target, childRel, r)

		case entry.Type().IsRegular():
			dstPath := filepath.Join(dst, name)
			copied, err := copyFileExclusive(srcPath, dstPath)
			switch {
			case err != nil:
				r.Failed = append(r.Failed, Failure{Path: dstPath, Err: err})
			case copied:
				r.Copied = append(r.Copied, dstPath)
			default:
				m.logger().Info("skipped existing file", "path", dstPath)
				r.Skipped = append(r.Skipped, dstPath)
			}

		default:
			// Symlinks and special files are not merged.
			m.logger().Debug("skipped non-regular file", "path", srcPath)
		}
	}
	return nil
}

func (m *Merger) isGeneric(name string) bool {
	if m.IsGeneric == nil {
		return agents.IsGenericFolder(name)
	}
	return m.IsGeneric(name)
}

// ValidatePatterns reports the first malformed doublestar pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

func (m *Merger) excluded(rel string) bool {
	for _, pattern := range m.Excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (m *Merger) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

// copyFileExclusive copies src to dst only if dst does not exist. It reports
// false with a nil error when dst was already present.
func copyFileExclusive(src, dst string) (bool, error) {
	if _, err := os.Lstat(dst); err == nil {
		return false, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return false, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return false, err
	}
	if err := out.Close(); err != nil {
		return false, err
	}
	return true, nil
}
