package driver

import (
	"encoding/json"
	"fmt"

	"tsdoc/internal/diag"
	"tsdoc/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimings adds an informational ObsTimings diagnostic carrying the
// timer report as a JSON note. The entry is added even if log is full.
func AppendTimings(log *diag.Log, kind, path string, report observ.Report) {
	if log == nil {
		return
	}
	if kind == "" {
		kind = "run"
	}
	payload := timingPayload{Kind: kind, Path: path, TotalMS: report.TotalMS, Phases: report.Phases}

	msg := fmt.Sprintf("timings (%s): total %.2f ms", kind, payload.TotalMS)
	if path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Notes:    []diag.Note{{Msg: string(data)}},
	}
	if log.Add(entry) {
		return
	}
	overflow := diag.NewLog(1)
	overflow.Add(entry)
	log.Merge(overflow)
}
