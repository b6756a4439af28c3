package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/event-viability/internal/evaluation"
	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/format"
	"github.com/iwvelando/event-viability/pkg/streams"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders the batch to w in the named format.
func Write(w io.Writer, outputFormat string, batch evaluation.Batch) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, batch)
	case constants.OutputFormatCSV:
		return CsvFormat(w, batch)
	case constants.OutputFormatJSON:
		return JSONFormat(w, batch)
	case constants.OutputFormatXLSX:
		return XLSXFormat(w, batch)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, batch evaluation.Batch) error {
	p := message.NewPrinter(language.English)
	for i, s := range Summarize(batch) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- Results for scenario %s ---\n", s.Scenario); err != nil {
			return err
		}
		if s.Error != "" {
			if _, err := fmt.Fprintf(w, "Error: %s\n", s.Error); err != nil {
				return err
			}
			continue
		}

		lines := []string{
			p.Sprintf("Mode            | %s", s.Mode),
			p.Sprintf("Verdict         | %s (BCR %.2f)", s.Tier, s.BCR),
			p.Sprintf("Total benefits  | %s", format.Millions(s.TotalBenefits)),
			p.Sprintf("Net public cost | %s", format.Millions(s.NetPublicCost)),
			p.Sprintf("Net fiscal gain | %s", format.Millions(s.NetFiscalGain)),
			p.Sprintf("GDP impact      | %s", format.Compact(s.GDPImpact)),
			p.Sprintf("Jobs created    | %s", format.Count(s.JobsCreated)),
			p.Sprintf("Tax ROI         | %.2f", s.ROI),
			p.Sprintf("Composite score | %.3f", s.CompositeScore),
		}
		if s.ImpliedAnnualReturn != nil {
			lines = append(lines,
				p.Sprintf("Implied return  | %s per year", format.Percent(*s.ImpliedAnnualReturn)),
				p.Sprintf("Payback         | %.1f years", *s.PaybackYears),
			)
		}
		lines = append(lines,
			"",
			"Stream                   | Present value | Share  | BCR",
			"______                   | _____________ | _____  | ___",
		)
		for _, l := range s.Streams {
			switch l.Status {
			case StatusOK:
				lines = append(lines, p.Sprintf("%-24s | %13s | %6s | %.3f", l.Label, format.MillionsPrecise(l.PresentValue), format.Percent(l.Share), l.ComponentBCR))
			case StatusSkipped:
				lines = append(lines, fmt.Sprintf("%-24s | %13s |", l.Label, "skipped"))
			default:
				lines = append(lines, fmt.Sprintf("%-24s | %13s | %s", l.Label, "FAILED", l.Error))
			}
		}
		if c := s.Comparison; c != nil {
			lines = append(lines,
				"",
				p.Sprintf("Basic analysis  | %s benefits, BCR %.2f (%s)", format.Millions(c.BasicBenefits), c.BasicBCR, c.BasicTier),
				p.Sprintf("Full uplift     | BCR %+.2f, net fiscal gain %s", c.BCRDelta, format.Millions(c.NetFiscalGainDelta)),
			)
		}
		if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	return nil
}

func csvHeader() []string {
	header := []string{"scenario", "mode", "tier", "bcr", "total_benefits", "net_public_cost", "net_fiscal_gain", "roi", "gdp_impact", "jobs_created", "composite_score"}
	for _, name := range streams.All {
		header = append(header, string(name))
	}
	return append(header, "failures", "error")
}

// field is one summary column: text, or a number when numeric is set.
type field struct {
	text    string
	number  float64
	numeric bool
}

func text(s string) field    { return field{text: s} }
func number(v float64) field { return field{number: v, numeric: true} }

func (f field) String() string {
	if f.numeric {
		return strconv.FormatFloat(f.number, 'f', -1, 64)
	}
	return f.text
}

// summaryFields lays out a scenario in csvHeader order.
func summaryFields(s ScenarioSummary) []field {
	if s.Error != "" {
		fields := make([]field, len(csvHeader()))
		fields[0] = text(s.Scenario)
		fields[len(fields)-1] = text(s.Error)
		return fields
	}

	fields := []field{
		text(s.Scenario), text(s.Mode), text(s.Tier), number(s.BCR), number(s.TotalBenefits),
		number(s.NetPublicCost), number(s.NetFiscalGain), number(s.ROI), number(s.GDPImpact),
		number(s.JobsCreated), number(s.CompositeScore),
	}
	var failed []string
	for _, l := range s.Streams {
		switch l.Status {
		case StatusOK:
			fields = append(fields, number(l.PresentValue))
		case StatusFailed:
			fields = append(fields, text(""))
			failed = append(failed, string(l.Stream))
		default:
			fields = append(fields, text(""))
		}
	}
	return append(fields, text(strings.Join(failed, ";")), text(""))
}

func csvRecord(s ScenarioSummary) []string {
	fields := summaryFields(s)
	record := make([]string, len(fields))
	for i, f := range fields {
		record[i] = f.String()
	}
	return record
}

// CsvFormat outputs one comma-separated row per scenario.
func CsvFormat(w io.Writer, batch evaluation.Batch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader()); err != nil {
		return err
	}
	for _, s := range Summarize(batch) {
		if err := cw.Write(csvRecord(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the rounded batch as an indented JSON document.
func JSONFormat(w io.Writer, batch evaluation.Batch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{
		RunID:       batch.RunID,
		GeneratedAt: batch.GeneratedAt,
		Scenarios:   Summarize(batch),
	})
}
