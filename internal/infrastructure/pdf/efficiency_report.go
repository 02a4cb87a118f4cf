// Package pdf genera el reporte de eficiencia de producción en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + negocio   │  período + fecha de emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Línea | Plan | Final | Eficiencia | Varianza | Días  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: eficiencia promedio + cantidad de líneas               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.EfficiencyPDFRenderer = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.EfficiencyPDFRenderer con Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador; los números se formatean en español (1.234).
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// RenderEfficiency genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderEfficiency(ctx context.Context, meta ports.ReportMeta, rep *dto.EfficiencyReportDTO) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de eficiencia de producción", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(rep.Lines) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin líneas completadas en el período.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for _, l := range rep.Lines {
		m.AddRows(g.detailRow(l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.footerRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(meta ports.ReportMeta) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("EFICIENCIA DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Negocio: "+meta.BusinessID, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Período: "+period(meta.StartDate, meta.EndDate), props.Text{
				Size: 8, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Línea", 4, align.Left),
		h("Plan", 1, align.Right),
		h("Final", 1, align.Right),
		h("Eficiencia", 2, align.Right),
		h("Varianza", 2, align.Right),
		h("Días", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *MarotoReportGenerator) detailRow(l dto.LineEfficiencyDTO) core.Row {
	varianceColor := colorGray
	if l.Variance < 0 {
		varianceColor = colorRed
	}
	cell := func(s string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c}))
	}
	return row.New(7).Add(
		cell(l.Name, 4, align.Left, nil),
		cell(g.printer.Sprintf("%d", l.Planned), 1, align.Right, nil),
		cell(g.printer.Sprintf("%d", l.Final), 1, align.Right, nil),
		cell(l.EfficiencyPct.StringFixed(2)+"%", 2, align.Right, nil),
		cell(g.printer.Sprintf("%d", l.Variance)+" ("+l.VariancePercentage.StringFixed(2)+"%)", 2, align.Right, varianceColor),
		cell(g.printer.Sprintf("%d", l.DurationDays), 2, align.Center, nil),
	)
}

func (g *MarotoReportGenerator) footerRow(rep *dto.EfficiencyReportDTO) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New(g.printer.Sprintf("Líneas completadas: %d", len(rep.Lines)), props.Text{
			Size: 9, Top: 3,
		})),
		col.New(6).Add(text.New("Eficiencia promedio: "+rep.AverageEfficiencyPct.StringFixed(2)+"%", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3,
		})),
	)
}

func period(from, to *time.Time) string {
	f, t := "inicio", "hoy"
	if from != nil {
		f = from.Format("02/01/2006")
	}
	if to != nil {
		t = to.Format("02/01/2006")
	}
	return f + " - " + t
}
