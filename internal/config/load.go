package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"tsdoc/internal/diag"
	"tsdoc/internal/source"
	"tsdoc/internal/tags"
)

// FileNames are the configuration file names FindConfigFile looks for, in
// order of preference.
var FileNames = []string{"tsdoc.json", "tsdoc.toml", "tsdoc.yaml", "tsdoc.yml"}

// LoadOptions controls Load and LoadBytes.
type LoadOptions struct {
	// FileSet receives every loaded file so diagnostics can be mapped to
	// lines. A fresh one is used when nil.
	FileSet *source.FileSet
	// MaxDiagnostics caps the log (0 — без ограничений).
	MaxDiagnostics int
}

// Config is a loaded configuration: the registry it describes plus what
// went wrong while building it.
//
// Problems inside the files (syntax, unknown kinds, extends cycles) are
// diagnostics, not errors. A consumer decides whether HasErrors is fatal.
type Config struct {
	// Path is the root file; Files lists every loaded file, extended files
	// before the files that extend them.
	Path  string
	Files []string
	// Registry is unsealed; parser.New seals it.
	Registry *tags.Registry
	Log      *diag.Log
	FileSet  *source.FileSet
}

// HasErrors reports whether any error diagnostic was produced.
func (c *Config) HasErrors() bool { return c.Log.HasErrors() }

// Load reads the configuration file at path and everything it extends.
// An error is returned only when path itself cannot be read.
func Load(path string, opts LoadOptions) (*Config, error) {
	l := newLoader(opts)
	id, err := l.fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return l.run(l.fs.Get(id)), nil
}

// LoadBytes loads a configuration from memory. name picks the format and
// anchors relative "extends" paths.
func LoadBytes(name string, content []byte, opts LoadOptions) (*Config, error) {
	if name == "" {
		return nil, errors.New("load config: empty file name")
	}
	l := newLoader(opts)
	id := l.fs.AddVirtual(name, source.NormalizeContent(content))
	return l.run(l.fs.Get(id)), nil
}

// FindConfigFile walks from startDir up to the file system root and returns
// the first configuration file found.
func FindConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

type loadedFile struct {
	path string
	buf  *source.Buffer
	file File
}

type loader struct {
	fs    *source.FileSet
	log   *diag.Log
	rep   diag.Reporter
	stack []string
	seen  map[string]bool
	files []loadedFile
}

func newLoader(opts LoadOptions) *loader {
	fileSet := opts.FileSet
	if fileSet == nil {
		fileSet = source.NewFileSet()
	}
	log := diag.NewLog(opts.MaxDiagnostics)
	return &loader{
		fs:   fileSet,
		log:  log,
		rep:  diag.Dedup(diag.LogReporter{Log: log}),
		seen: make(map[string]bool),
	}
}

func (l *loader) run(root *source.File) *Config {
	l.visit(root)
	reg := l.build()
	cfg := &Config{
		Path:     root.Path,
		Registry: reg,
		Log:      l.log,
		FileSet:  l.fs,
	}
	for _, f := range l.files {
		cfg.Files = append(cfg.Files, f.path)
	}
	return cfg
}

func fileKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(path)
}

// visit декодирует файл, затем рекурсивно его extends; сам файл добавляется
// после своих родителей, чтобы его определения побеждали.
func (l *loader) visit(f *source.File) {
	key := fileKey(f.Path)
	l.seen[key] = true
	l.stack = append(l.stack, key)
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()

	format := FormatOf(f.Path)
	decoded, err := Decode([]byte(f.Buf.Text()), format)
	if err != nil {
		r := f.Buf.Range().Collapse()
		var se *SyntaxError
		if errors.As(err, &se) && se.Len > 0 {
			r = f.Buf.Range().Sub(min(se.Offset, f.Buf.Len()), min(se.Offset+se.Len, f.Buf.Len()))
		}
		diag.Errorf(l.rep, diag.CfgSyntax, r, "%s: %v", f.Path, err)
		return
	}

	for _, ext := range decoded.Extends {
		at := locate(f.Buf, ext)
		target := ext
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(f.Path), target)
		}
		tkey := fileKey(target)
		if slices.Contains(l.stack, tkey) {
			diag.Errorf(l.rep, diag.CfgExtendsCycle, at,
				"extends cycle: %s", strings.Join(append(slices.Clone(l.stack), tkey), " -> "))
			continue
		}
		if l.seen[tkey] {
			// общий предок двух веток уже загружен
			continue
		}
		id, err := l.fs.Load(target)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				diag.Errorf(l.rep, diag.CfgExtendsNotFound, at, "extended config %q not found", ext)
			} else {
				diag.Errorf(l.rep, diag.IOLoadFileError, at, "cannot read %q: %v", ext, err)
			}
			continue
		}
		l.visit(l.fs.Get(id))
	}
	l.files = append(l.files, loadedFile{path: f.Path, buf: f.Buf, file: decoded})
}

// build folds the loaded files into one registry. noStandardTags is taken
// from the last file that sets it.
func (l *loader) build() *tags.Registry {
	noStandard := false
	for _, f := range l.files {
		if f.file.NoStandardTags != nil {
			noStandard = *f.file.NoStandardTags
		}
	}
	reg := tags.NewRegistry(tags.Options{NoStandardTags: noStandard})

	for _, f := range l.files {
		for i, td := range f.file.TagDefinitions {
			l.addDefinition(reg, f, i, td)
		}
	}

	// поддержка применяется после всех определений: файл может включать
	// тег, определённый в файле, который он расширяет
	support := make(map[string]bool)
	where := make(map[string]source.TextRange)
	var order []string
	for _, f := range l.files {
		for name, ok := range f.file.SupportForTags {
			key := tags.NameKey(name)
			if _, dup := support[key]; !dup {
				order = append(order, name)
			}
			support[key] = ok
			where[key] = locate(f.buf, name)
		}
	}
	slices.SortFunc(order, func(a, b string) int { return strings.Compare(tags.NameKey(a), tags.NameKey(b)) })
	for _, name := range order {
		key := tags.NameKey(name)
		at := where[key]
		if err := tags.ValidateTagName(name); err != nil {
			diag.Errorf(l.rep, diag.CfgInvalidTagName, at, "supportForTags: %v", err)
			continue
		}
		if _, ok := reg.TryGetDefinition(name); !ok {
			diag.Errorf(l.rep, diag.CfgUnknownSupportTag, at,
				"supportForTags refers to the undefined tag %q", name)
			continue
		}
		if err := reg.SetSupport(name, support[key]); err != nil {
			diag.Errorf(l.rep, diag.CfgInvalidTagName, at, "%v", err)
		}
	}
	return reg
}

func (l *loader) addDefinition(reg *tags.Registry, f loadedFile, i int, td TagDefinition) {
	at := locate(f.buf, td.TagName)
	if td.TagName == "" {
		diag.Errorf(l.rep, diag.CfgMissingField, f.buf.Range().Collapse(),
			"%s: tagDefinitions[%d] has no tagName", f.path, i)
		return
	}
	if td.SyntaxKind == "" {
		diag.Errorf(l.rep, diag.CfgMissingField, at,
			"tag definition %q has no syntaxKind", td.TagName)
		return
	}
	kind, ok := tags.ParseSyntaxKind(td.SyntaxKind)
	if !ok {
		diag.Errorf(l.rep, diag.CfgUnknownSyntaxKind, locate(f.buf, td.SyntaxKind),
			"unknown syntaxKind %q for %s; expected block, modifier or inline", td.SyntaxKind, td.TagName)
		return
	}
	if err := tags.ValidateTagName(td.TagName); err != nil {
		diag.Errorf(l.rep, diag.CfgInvalidTagName, at, "%v", err)
		return
	}

	def := tags.Definition{TagName: td.TagName, SyntaxKind: kind, AllowMultiple: td.AllowMultiple}
	prev, exists := reg.TryGetDefinition(def.TagName)
	if exists && prev.TagName == def.TagName && prev.SyntaxKind == def.SyntaxKind && prev.AllowMultiple == def.AllowMultiple {
		// то же определение: стандартный уровень сохраняется
		return
	}
	if err := reg.AddDefinitions(def); err != nil {
		diag.Errorf(l.rep, diag.CfgInvalidTagName, at, "%v", err)
		return
	}
	if exists {
		diag.Warnf(l.rep, diag.CfgReplacedDefinition, at,
			"%s (%s) replaces the earlier definition %s (%s)", def.TagName, def.SyntaxKind, prev.TagName, prev.SyntaxKind)
	}
}

// locate returns the range of the first quoted occurrence of text in buf,
// then the first bare one, then the empty range at the start.
func locate(buf *source.Buffer, text string) source.TextRange {
	whole := buf.Range()
	if text == "" {
		return whole.Collapse()
	}
	content := buf.Text()
	for _, needle := range []string{`"` + text + `"`, text} {
		if i := strings.Index(content, needle); i >= 0 {
			off := strings.Index(needle, text)
			return whole.Sub(i+off, i+off+len(text))
		}
	}
	return whole.Collapse()
}
