package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"tsdoc/internal/source"
)

// CheckResult compares a file on disk with freshly generated content.
type CheckResult struct {
	UpToDate bool
	// Diff is a unified diff from the current content to the generated one;
	// empty when UpToDate.
	Diff string
}

// Check compares previous with generated ignoring '\r' and surrounding
// whitespace, so a checkout with CRLF line endings is not reported stale.
func Check(previous, generated []byte) CheckResult {
	a := strings.TrimSpace(source.NormalizeNewlines(string(previous)))
	b := strings.TrimSpace(source.NormalizeNewlines(string(generated)))
	if a == b {
		return CheckResult{UpToDate: true}
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a + "\n"),
		B:        difflib.SplitLines(b + "\n"),
		FromFile: "current",
		ToFile:   "generated",
		Context:  3,
	})
	if err != nil {
		diff = fmt.Sprintf("(diff unavailable: %v)\n", err)
	}
	return CheckResult{Diff: diff}
}

// CheckFile runs Check against the file at path. A missing file is stale.
func CheckFile(path string, generated []byte) (CheckResult, error) {
	// #nosec G304 -- path is provided by the caller
	previous, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Check(nil, generated), nil
		}
		return CheckResult{}, fmt.Errorf("check %s: %w", path, err)
	}
	return Check(previous, generated), nil
}

// WriteFile replaces path with content atomically: the content goes to a
// temporary file in the same directory which is then renamed over path.
func WriteFile(path string, content []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	// атомарная замена
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
