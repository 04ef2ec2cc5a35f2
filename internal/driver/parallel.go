package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"tsdoc/internal/diag"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// ListFiles returns the sorted list of files under dir whose name ends with
// one of exts (DefaultExtensions when empty). Hidden directories and
// node_modules are skipped.
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок
	slices.Sort(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ParseDir parses every matching file under dir in parallel. Results are
// returned in ListFiles order. A file that cannot be read yields a result
// with an IO diagnostic instead of failing the run; the error is reserved
// for walking problems and cancellation.
func ParseDir(ctx context.Context, dir string, p *parser.Parser, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагрузка: FileSet не потокобезопасен на запись
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[i] = loadErr
			continue
		}
		fileIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		opts.Progress.emit(ProgressEvent{Path: path, Status: StatusQueued})
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))
	fingerprint := p.Registry().Fingerprint()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.Progress.emit(ProgressEvent{Path: path, Status: StatusWorking})

			if loadErr, failed := loadErrors[i]; failed {
				log := diag.NewLog(opts.MaxDiagnostics)
				log.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: path, Log: log}
				opts.Progress.emit(ProgressEvent{Path: path, Status: StatusError, Err: loadErr})
				return nil
			}

			file := fileSet.Get(fileIDs[i])
			key := CacheKey(file.Hash, fingerprint, opts.AllComments, opts.MaxDiagnostics)
			if cached, ok := opts.Cache.lookup(key, file); ok {
				results[i] = *cached
				opts.Progress.emit(ProgressEvent{Path: path, Status: StatusDone, Cached: true})
				return nil
			}

			res := ParseSource(gctx, p, file, opts)
			opts.Cache.store(key, res)
			results[i] = *res

			status := StatusDone
			if res.HasErrors() {
				status = StatusError
			}
			opts.Progress.emit(ProgressEvent{Path: path, Status: status})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
