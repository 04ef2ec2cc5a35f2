// Package driver runs the doc comment parser over source files: it finds the
// comments of each file, parses them against one registry and collects the
// diagnostics, optionally in parallel and through an on-disk cache.
package driver

import (
	"context"
	"fmt"
	"strconv"

	"tsdoc/internal/comments"
	"tsdoc/internal/diag"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
	"tsdoc/internal/trace"
)

// DefaultExtensions are the file suffixes ParseDir picks up when
// Options.Extensions is empty.
var DefaultExtensions = []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}

// Options configures a driver run.
type Options struct {
	Extensions     []string
	Jobs           int // 0 = GOMAXPROCS
	MaxDiagnostics int
	// AllComments also parses plain /* */ comments.
	AllComments bool
	Cache       *DiskCache
	Progress    ProgressFunc
}

// CommentResult is one parsed comment of a file.
type CommentResult struct {
	Owner   string
	Comment comments.Comment
	Result  *parser.Result
}

// FileResult collects everything the driver learned about one file.
// A result restored from the cache carries diagnostics only.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Comments []CommentResult
	Log      *diag.Log
	Cached   bool
	// Count is the number of comments, also known for cached results.
	Count int
}

// HasErrors reports whether the file produced any error diagnostic.
func (r *FileResult) HasErrors() bool { return r.Log.HasErrors() }

// ParseSource parses every doc comment of file. Diagnostics of all comments
// are merged into Result.Log in source order. When the registry enables
// support checking, undefined and unsupported tags are escalated to errors.
func ParseSource(ctx context.Context, p *parser.Parser, file *source.File, opts Options) *FileResult {
	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "parse "+file.Path)

	log := diag.NewLog(opts.MaxDiagnostics)
	res := &FileResult{Path: file.Path, FileID: file.ID, Log: log}

	// незакрытый комментарий сообщает сам парсер, поэтому без Reporter
	list := comments.Extract(file.Buf.Range(), comments.Options{IncludePlain: opts.AllComments})
	for i, c := range list {
		_, cs := trace.StartSpan(ctx, trace.ScopeComment, "comment #"+strconv.Itoa(i+1))
		pr, err := p.ParseRange(c.Range)
		if err != nil {
			cs.End(err.Error())
			continue
		}
		log.Merge(pr.Log)
		res.Comments = append(res.Comments, CommentResult{Owner: c.OwnerName(), Comment: c, Result: pr})
		cs.WithExtra("owner", c.OwnerName()).End(fmt.Sprintf("%d diagnostics", pr.Log.Len()))
	}
	res.Count = len(res.Comments)

	if p.Registry().StrictSupport() {
		log.Escalate(diag.DocUnsupportedTag, diag.SevError)
		log.Escalate(diag.DocTagNotSupported, diag.SevError)
	}
	span.WithExtra("comments", strconv.Itoa(res.Count)).End(fmt.Sprintf("%d diagnostics", log.Len()))
	return res
}

// ParseFile loads path into fileSet and parses it. Only the read can fail.
func ParseFile(ctx context.Context, fileSet *source.FileSet, path string, p *parser.Parser, opts Options) (*FileResult, error) {
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ParseSource(ctx, p, fileSet.Get(id), opts), nil
}
