package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func NewPDFProvider() *PDFProvider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateROIReport(ctx context.Context, data ReportData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(25,
		text.NewCol(8, "Brand Protection ROI Report", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, data.GeneratedAt, props.Text{
			Size:  9,
			Align: align.Right,
			Top:   6,
		}),
	)

	m.AddRow(12,
		text.NewCol(12, "Your inputs", props.Text{Size: 14, Style: fontstyle.Bold}),
	)
	inputRows := []struct {
		label string
		value string
	}{
		{"Brand asset value", money(data.Params.AssetValue)},
		{"Unauthorized uses per year", fmt.Sprintf("%.0f", data.Params.UnauthorizedUses)},
		{"Average loss per incident", money(data.Params.AverageLoss)},
		{"One-time protection setup", money(data.Params.ProtectionCost)},
		{"Monthly subscription", money(data.Params.MonthlySubscription)},
		{"Recovery rate", percent(data.Params.RecoveryRate)},
		{"Annual growth rate", percent(data.Params.GrowthRate)},
	}
	for _, row := range inputRows {
		m.AddRow(8,
			text.NewCol(6, row.label, props.Text{Size: 9}),
			text.NewCol(6, row.value, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(12,
		text.NewCol(12, "Projected impact", props.Text{Size: 14, Style: fontstyle.Bold, Top: 3}),
	)
	metricRows := []struct {
		label string
		value string
	}{
		{"Potential annual losses", money(data.Result.PotentialLosses)},
		{"Annual protection cost", money(data.Result.AnnualProtectionCost)},
		{"Recovered revenue", money(data.Result.RecoveredRevenue)},
		{"Net annual savings", money(data.Result.NetSavings)},
		{"Return on investment", fmt.Sprintf("%.1f%% (%s)", data.Result.ROI, data.Band)},
	}
	for _, row := range metricRows {
		m.AddRow(8,
			text.NewCol(6, row.label, props.Text{Size: 9}),
			text.NewCol(6, row.value, props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold}),
		)
	}

	m.AddRow(12,
		text.NewCol(12, "Five-year projection", props.Text{Size: 14, Style: fontstyle.Bold, Top: 3}),
	)
	m.AddRow(8,
		text.NewCol(3, "Year", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Projected losses", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Protection cost", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Net savings", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, year := range data.Projection {
		m.AddRow(8,
			text.NewCol(3, fmt.Sprintf("Year %d", year.Year+1), props.Text{Size: 9}),
			text.NewCol(3, money(year.Losses), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, money(year.Protection), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, money(year.Savings), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(20,
		col.New(12).Add(
			text.New("Our recommendation", props.Text{Size: 14, Style: fontstyle.Bold, Top: 3}),
			text.New(data.Recommendation, props.Text{Size: 10, Top: 10}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func money(v float64) string {
	raw := strconv.FormatFloat(v, 'f', 0, 64)
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign = "-"
		raw = raw[1:]
	}

	var grouped strings.Builder
	lead := len(raw) % 3
	if lead > 0 {
		grouped.WriteString(raw[:lead])
	}
	for i := lead; i < len(raw); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteString(raw[i : i+3])
	}

	return sign + "$" + grouped.String()
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}
