// Package config loads and generates tag configuration files.
//
// A configuration file declares custom tag definitions, optionally extends
// other configuration files, may drop the standard tag set, and may switch
// on strict support checking. Three encodings are accepted: JSON with
// comments and trailing commas (".json", the canonical one), TOML and YAML.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// SchemaURL is written to the "$schema" field of generated JSON files.
// Loaders ignore the field.
const SchemaURL = "https://developer.microsoft.com/json-schemas/tsdoc/v0/tsdoc.schema.json"

// File is the decoded content of one configuration file.
type File struct {
	Schema         string          `json:"$schema,omitempty" toml:"$schema" yaml:"$schema"`
	Extends        []string        `json:"extends,omitempty" toml:"extends" yaml:"extends"`
	NoStandardTags *bool           `json:"noStandardTags,omitempty" toml:"noStandardTags" yaml:"noStandardTags"`
	TagDefinitions []TagDefinition `json:"tagDefinitions,omitempty" toml:"tagDefinitions" yaml:"tagDefinitions"`
	SupportForTags map[string]bool `json:"supportForTags,omitempty" toml:"supportForTags" yaml:"supportForTags"`
}

// TagDefinition is one record of "tagDefinitions".
type TagDefinition struct {
	TagName       string `json:"tagName" toml:"tagName" yaml:"tagName"`
	SyntaxKind    string `json:"syntaxKind" toml:"syntaxKind" yaml:"syntaxKind"`
	AllowMultiple bool   `json:"allowMultiple,omitempty" toml:"allowMultiple" yaml:"allowMultiple"`
}

// Format is a configuration file encoding.
type Format uint8

const (
	// FormatJSONC is JSON with comments; the canonical format.
	FormatJSONC Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// Ext returns the file extension of the format, with the dot.
func (f Format) Ext() string {
	switch f {
	case FormatTOML:
		return ".toml"
	case FormatYAML:
		return ".yaml"
	default:
		return ".json"
	}
}

// ParseFormat accepts "json", "jsonc", "toml", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json", "jsonc":
		return FormatJSONC, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSONC, fmt.Errorf("unknown config format %q", s)
}

// FormatOf picks the format from the file extension; anything unknown is
// read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSONC
	}
}

// SyntaxError is a decoding failure. Offset and Len locate the problem in
// the file when the decoder reports it; Len is 0 otherwise.
type SyntaxError struct {
	Format Format
	Offset int
	Len    int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Format, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Decode parses content in the given format. Unknown fields are errors in
// every format.
func Decode(content []byte, format Format) (File, error) {
	var f File
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(content), &f)
		if err != nil {
			se := &SyntaxError{Format: format, Err: err}
			var pe toml.ParseError
			if errors.As(err, &pe) {
				se.Offset, se.Len = pe.Position.Start, pe.Position.Len
			}
			return File{}, se
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return File{}, &SyntaxError{Format: format, Err: fmt.Errorf("unknown field %q", undecoded[0].String())}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, &SyntaxError{Format: format, Err: err}
		}
	default:
		std, err := hujson.Standardize(content)
		if err != nil {
			return File{}, &SyntaxError{Format: format, Err: err}
		}
		dec := json.NewDecoder(bytes.NewReader(std))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			se := &SyntaxError{Format: format, Err: err}
			// Standardize сохраняет смещения: комментарии заменяются пробелами
			var syn *json.SyntaxError
			if errors.As(err, &syn) {
				se.Offset, se.Len = max(0, int(syn.Offset)-1), 1
			}
			return File{}, se
		}
	}
	return f, nil
}
