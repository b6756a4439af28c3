package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/event-viability/internal/evaluation"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

const (
	summarySheet   = "Summary"
	maxSheetName   = 31
	moneyNumFormat = "#,##0.00"
	ratioNumFormat = "0.0000"
)

var sheetNameReplacer = strings.NewReplacer("[", "(", "]", ")", ":", "-", "*", "-", "?", "", "/", "-", "\\", "-")

// XLSXFormat writes a workbook with a summary sheet and one sheet per scenario.
func XLSXFormat(w io.Writer, batch evaluation.Batch) error {
	f, err := buildWorkbook(batch)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "xlsx: write workbook")
}

func buildWorkbook(batch evaluation.Batch) (*xlsx.File, error) {
	f := xlsx.NewFile()
	summaries := Summarize(batch)

	sheet, err := f.AddSheet(summarySheet)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add summary sheet")
	}
	addStrings(sheet, "run_id", batch.RunID)
	addStrings(sheet, csvHeader()...)
	for _, s := range summaries {
		row := sheet.AddRow()
		for _, col := range summaryFields(s) {
			cell := row.AddCell()
			if col.numeric {
				cell.SetFloat(col.number)
				continue
			}
			cell.SetString(col.text)
		}
	}

	used := map[string]bool{summarySheet: true}
	for i, s := range summaries {
		name := sheetName(s.Scenario, i, used)
		sheet, err := f.AddSheet(name)
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: add sheet for scenario %s", s.Scenario)
		}
		writeScenarioSheet(sheet, s)
	}
	return f, nil
}

func writeScenarioSheet(sheet *xlsx.Sheet, s ScenarioSummary) {
	addStrings(sheet, "scenario", s.Scenario)
	if s.Error != "" {
		addStrings(sheet, "error", s.Error)
		return
	}
	addStrings(sheet, "mode", s.Mode)
	addStrings(sheet, "tier", s.Tier)
	addNumber(sheet, "bcr", s.BCR, ratioNumFormat)
	addNumber(sheet, "total_benefits", s.TotalBenefits, moneyNumFormat)
	addNumber(sheet, "net_public_cost", s.NetPublicCost, moneyNumFormat)
	addNumber(sheet, "net_fiscal_gain", s.NetFiscalGain, moneyNumFormat)
	addNumber(sheet, "gdp_impact", s.GDPImpact, moneyNumFormat)
	addNumber(sheet, "jobs_created", s.JobsCreated, "#,##0")
	addNumber(sheet, "roi", s.ROI, ratioNumFormat)
	addNumber(sheet, "composite_score", s.CompositeScore, ratioNumFormat)
	sheet.AddRow()

	addStrings(sheet, "stream", "label", "status", "present_value", "share", "component_bcr", "error")
	for _, l := range s.Streams {
		row := sheet.AddRow()
		row.AddCell().SetString(string(l.Stream))
		row.AddCell().SetString(l.Label)
		row.AddCell().SetString(l.Status)
		row.AddCell().SetFloatWithFormat(l.PresentValue, moneyNumFormat)
		row.AddCell().SetFloatWithFormat(l.Share, ratioNumFormat)
		row.AddCell().SetFloatWithFormat(l.ComponentBCR, ratioNumFormat)
		row.AddCell().SetString(l.Error)
	}
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func addNumber(sheet *xlsx.Sheet, label string, v float64, numFormat string) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloatWithFormat(v, numFormat)
}

// sheetName derives a unique, valid worksheet name from a scenario name.
func sheetName(scenario string, index int, used map[string]bool) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(scenario))
	if name == "" {
		name = fmt.Sprintf("Scenario %d", index+1)
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	base := name
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = base
		if len(name)+len(suffix) > maxSheetName {
			name = name[:maxSheetName-len(suffix)]
		}
		name += suffix
	}
	used[name] = true
	return name
}
