package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tsdoc/internal/trace"
)

// traceFlags are the persistent --trace* flags.
type traceFlags struct {
	output    string
	level     string
	mode      string
	format    string
	ringSize  int
	heartbeat time.Duration
}

func readTraceFlags(flags *pflag.FlagSet) (traceFlags, error) {
	var (
		tf   traceFlags
		errs [6]error
	)
	tf.output, errs[0] = flags.GetString("trace")
	tf.level, errs[1] = flags.GetString("trace-level")
	tf.mode, errs[2] = flags.GetString("trace-mode")
	tf.format, errs[3] = flags.GetString("trace-format")
	tf.ringSize, errs[4] = flags.GetInt("trace-ring-size")
	tf.heartbeat, errs[5] = flags.GetDuration("trace-heartbeat")
	for _, err := range errs {
		if err != nil {
			return tf, fmt.Errorf("failed to read trace flags: %w", err)
		}
	}
	return tf, nil
}

// config turns the flags into a tracer configuration. enabled is false when
// neither an output nor a level was asked for.
func (tf traceFlags) config() (cfg trace.Config, enabled bool, err error) {
	level, err := trace.ParseLevel(tf.level)
	if err != nil {
		return cfg, false, err
	}
	if level == trace.LevelOff {
		if tf.output == "" {
			return cfg, false, nil
		}
		// --trace без уровня означает фазы
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(tf.mode)
	if err != nil {
		return cfg, false, err
	}
	format, err := trace.ParseFormat(tf.format)
	if err != nil {
		return cfg, false, err
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
		Heartbeat:  tf.heartbeat,
	}, true, nil
}

// setupTracing installs the tracer requested on the command line into the
// command context and opens the driver span named after the command. The
// returned cleanup ends that span and, when the command failed, prints the
// events kept in memory.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	tf, err := readTraceFlags(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	cfg, enabled, err := tf.config()
	if err != nil {
		return nil, err
	}
	if !enabled {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(bool) {}, nil
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx, span := trace.StartSpan(trace.WithTracer(cmd.Context(), tracer), trace.ScopeDriver, cmd.Name())
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	heartbeat := trace.StartHeartbeat(tracer, cfg.Heartbeat)

	stderr := cmd.ErrOrStderr()
	return func(failed bool) {
		heartbeat.Stop()
		if failed {
			span.End("failed")
			dumpRing(stderr, tracer, cfg.Format)
		} else {
			span.End("ok")
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(stderr, "trace: close error: %v\n", err)
		}
	}, nil
}

// dumpRing prints the events kept in memory, if the tracer keeps any.
func dumpRing(w io.Writer, tracer trace.Tracer, format trace.Format) {
	ring := trace.RingOf(tracer)
	if ring == nil {
		return
	}
	fmt.Fprintln(w, "trace: last events before failure:")
	if err := ring.Dump(w, format); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
