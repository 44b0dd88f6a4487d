package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rileyhilliard/ledmon/internal/config"
	"github.com/rileyhilliard/ledmon/internal/doctor"
	"github.com/rileyhilliard/ledmon/internal/logger"
	"github.com/rileyhilliard/ledmon/internal/sensors"
	"github.com/rileyhilliard/ledmon/internal/sink"
	"github.com/rileyhilliard/ledmon/internal/ui"
)

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	JSON   bool
	Serial bool // run checks one after another instead of concurrently
}

// doctorCommand runs every check and reports the results. It exits non-zero
// when a check failed.
func doctorCommand(ctx context.Context, w io.Writer, opts DoctorOptions) error {
	// A broken config is reported by the config checks; the rest run against
	// the defaults.
	cfg, path, err := loadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	source := sensorSource
	if source == nil {
		source = sensors.NewHost(logger.For("sensors"))
	}
	pinger := sink.NewUDS(cfg.Socket, cfg.Sink.Timeout, logger.Noop())

	checks := doctor.Standard(cfgFile, cfg, source, pinger)
	var results []doctor.CheckResult
	if opts.Serial {
		results = doctor.RunAll(ctx, checks)
	} else {
		results = doctor.RunAllParallel(ctx, checks)
	}

	if opts.JSON {
		if err := outputDoctorJSON(w, results); err != nil {
			return err
		}
	} else {
		outputDoctorText(w, path, results)
	}

	if doctor.HasFailures(results) {
		return &exitError{code: 1}
	}
	return nil
}

// outputDoctorJSON writes results grouped by category.
func outputDoctorJSON(w io.Writer, results []doctor.CheckResult) error {
	grouped := doctor.GroupByCategory(results)
	out := DoctorOutput{Categories: make([]CategoryOutput, 0, len(grouped))}

	for _, cat := range doctor.CategoryOrder {
		indices, ok := grouped[cat]
		if !ok {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, i := range indices {
			co.Results = append(co.Results, results[i])
		}
		out.Categories = append(out.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	out.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: counts[doctor.StatusWarn] == 0 && counts[doctor.StatusFail] == 0,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// outputDoctorText renders the human-readable report.
func outputDoctorText(w io.Writer, path string, results []doctor.CheckResult) {
	fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "Diagnostic report",
		Detail:  describePath(path),
	}))
	fmt.Fprintln(w)

	grouped := doctor.GroupByCategory(results)
	var rows []ui.DoctorCheckRow
	for _, cat := range doctor.CategoryOrder {
		for _, i := range grouped[cat] {
			r := results[i]
			rows = append(rows, ui.DoctorCheckRow{
				Status:     r.Status.String(),
				Category:   r.Category,
				Message:    r.Message,
				Suggestion: r.Suggestion,
				Details:    r.Details,
			})
		}
	}
	fmt.Fprint(w, ui.RenderDoctorTable(rows))
	fmt.Fprintln(w, ui.Divider(ui.HeaderWidth))

	summary := doctor.Summary(results)
	switch {
	case doctor.HasFailures(results):
		fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), summary)
	case doctor.CountByStatus(results)[doctor.StatusWarn] > 0:
		fmt.Fprintf(w, "%s %s\n", ui.WarningStyle().Render(ui.SymbolWarn), summary)
	default:
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), summary)
	}
}
