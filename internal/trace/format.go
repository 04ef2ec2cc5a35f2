package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Format is the stream encoding.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

var formatNames = []string{FormatAuto: "auto", FormatText: "text", FormatNDJSON: "ndjson"}

func (f Format) String() string { return nameOf(formatNames, int(f)) }

// ParseFormat accepts auto, text, ndjson and json; empty means auto.
func ParseFormat(s string) (Format, error) {
	if strings.TrimSpace(s) == "" {
		return FormatAuto, nil
	}
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatNDJSON, nil
	}
	i, ok := lookupName(formatNames, s)
	if !ok {
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: %s)", s, strings.Join(formatNames, "|"))
	}
	return Format(i), nil
}

func writeEvent(w *bufio.Writer, ev *Event, format Format) error {
	if format == FormatNDJSON {
		return writeNDJSON(w, ev)
	}
	_, err := w.WriteString(textLine(ev))
	return err
}

var kindMarks = []string{KindSpanBegin: "→", KindSpanEnd: "←", KindPoint: "•", KindHeartbeat: "♥"}

// textLine renders one event:
//
//	15:04:05.000 #12 g7 file    → src/a.ts
//	15:04:05.004 #13 g7 file    ← src/a.ts (2 comments) [comments=2]
func textLine(ev *Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d g%d %-7s %s %s",
		ev.Time.Format("15:04:05.000"), ev.Seq, ev.GID, ev.Scope, nameOf(kindMarks, int(ev.Kind)), ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&b, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		b.WriteString(" [")
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%s", k, ev.Extra[k])
		}
		b.WriteByte(']')
	}
	b.WriteByte('\n')
	return b.String()
}

type jsonEvent struct {
	Time   string            `json:"time"`
	Seq    uint64            `json:"seq"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	Span   uint64            `json:"span,omitempty"`
	Parent uint64            `json:"parent,omitempty"`
	GID    int64             `json:"gid"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

func writeNDJSON(w *bufio.Writer, ev *Event) error {
	data, err := json.Marshal(jsonEvent{
		Time:   ev.Time.Format(time.RFC3339Nano),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.SpanID,
		Parent: ev.ParentID,
		GID:    ev.GID,
		Name:   ev.Name,
		Detail: ev.Detail,
		Extra:  ev.Extra,
	})
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
