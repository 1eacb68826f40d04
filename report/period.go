// Package report implements period calculation and report rendering
// for work-log entries.
package report

import (
	"fmt"

	"github.com/fastrep/fastrep/model"
)

// Mode identifies how a report period is derived.
type Mode string

const (
	ModeWeekly   Mode = "weekly"
	ModeBiweekly Mode = "biweekly"
	ModeMonthly  Mode = "monthly"
	ModeCustom   Mode = "custom"
)

// ParseMode validates a mode string.
// ModeCustom is derived, never parsed: custom periods come from explicit dates.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWeekly, ModeBiweekly, ModeMonthly:
		return Mode(s), nil
	}
	return "", model.NewValidationError(fmt.Sprintf("unknown report mode: %q", s))
}

// Period is a resolved inclusive date range plus its originating mode.
// It is derived, never persisted.
type Period struct {
	Start model.Date `json:"start"`
	End   model.Date `json:"end"`
	Mode  Mode       `json:"mode"`
}

// ComputeRange resolves a report period. Pure date arithmetic, no I/O.
//
// When both explicitStart and explicitEnd are given they take precedence
// over mode and the period is tagged ModeCustom. Otherwise the period is
// derived from mode and ref:
//
//	weekly    [ref-6d, ref]
//	biweekly  [ref-13d, ref]
//	monthly   the full calendar month containing ref
func ComputeRange(mode Mode, ref model.Date, explicitStart, explicitEnd *model.Date) (Period, error) {
	if explicitStart != nil && explicitEnd != nil {
		if explicitStart.After(*explicitEnd) {
			return Period{}, model.NewValidationError(fmt.Sprintf(
				"start date %s is after end date %s", explicitStart, explicitEnd))
		}
		return Period{Start: *explicitStart, End: *explicitEnd, Mode: ModeCustom}, nil
	}
	if explicitStart != nil || explicitEnd != nil {
		return Period{}, model.NewValidationError("custom range requires both start and end dates")
	}

	switch mode {
	case ModeWeekly:
		return Period{Start: ref.AddDays(-6), End: ref, Mode: ModeWeekly}, nil
	case ModeBiweekly:
		return Period{Start: ref.AddDays(-13), End: ref, Mode: ModeBiweekly}, nil
	case ModeMonthly:
		return Period{Start: ref.FirstOfMonth(), End: ref.LastOfMonth(), Mode: ModeMonthly}, nil
	}
	return Period{}, model.NewValidationError(fmt.Sprintf("unknown report mode: %q", mode))
}

// Label returns the period range formatted as "MM/DD - MM/DD" for report headers.
func (p Period) Label() string {
	return p.Start.Format("01/02") + " - " + p.End.Format("01/02")
}

// Contains reports whether d falls within the period, boundaries included.
func (p Period) Contains(d model.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}
