package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Mode selects where events go.
type Mode uint8

const (
	ModeStream Mode = iota // write as they happen
	ModeRing               // keep the last RingSize in memory
	ModeBoth
)

var modeNames = []string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m Mode) String() string { return nameOf(modeNames, int(m)) }

// ParseMode accepts stream, ring and both.
func ParseMode(s string) (Mode, error) {
	i, ok := lookupName(modeNames, s)
	if !ok {
		return ModeStream, fmt.Errorf("invalid trace mode: %q (expected: %s)", s, strings.Join(modeNames, "|"))
	}
	return Mode(i), nil
}

// Config describes the tracer built by New.
type Config struct {
	Level  Level
	Mode   Mode
	Format Format
	// OutputPath is a file name, "-" or "" for stderr, or "stdout".
	OutputPath string
	// Output overrides OutputPath when set.
	Output    io.Writer
	RingSize  int
	Heartbeat time.Duration // 0 disables
}

const defaultRingSize = 4096

// New builds the tracer described by cfg. LevelOff gives Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}

	var stream *StreamTracer
	if cfg.Mode != ModeRing {
		w, closer, format, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream = NewStreamTracer(w, cfg.Level, format)
		stream.closer = closer
	}

	switch cfg.Mode {
	case ModeStream:
		return stream, nil
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	default:
		return NewMultiTracer(stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
}

// openOutput resolves the stream destination. FormatAuto picks NDJSON for
// files ending in .ndjson or .jsonl and text otherwise.
func openOutput(cfg Config) (io.Writer, io.Closer, Format, error) {
	format := cfg.Format
	if cfg.Output != nil {
		return cfg.Output, nil, format, nil
	}
	switch cfg.OutputPath {
	case "", "-", "stderr":
		return os.Stderr, nil, format, nil
	case "stdout":
		return os.Stdout, nil, format, nil
	}
	if format == FormatAuto && (strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl")) {
		format = FormatNDJSON
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, nil, format, fmt.Errorf("trace output: %w", err)
	}
	return f, f, format, nil
}
