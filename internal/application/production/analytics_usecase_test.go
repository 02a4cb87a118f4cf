package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
	"github.com/jhoicas/Produccion-api/internal/domain"
	rules "github.com/jhoicas/Produccion-api/internal/domain/production"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de analítica:
//   A creada 03-01 08:00, planeado 100, completada 03-02 20:00 con 90
//   B creada 03-02 20:00, planeado 50,  completada 03-03 08:00 con 60
//   C creada 03-03 08:00, planeado 30,  PENDING
// ──────────────────────────────────────────────────────────────────────────────

type analyticsFixture struct {
	*env
	a, b, c *dto.ProductionLineResponse
	harina  string
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	e := newEnv(t)
	ctx := context.Background()
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 500)

	a := e.startedLine(t, pan, harina, 100, 50)
	fulfilled := e.request(t, a.ID, a.Resources[0].ID, 1, 30)
	_, err := e.requests.Fulfill(ctx, bizID, userID, fulfilled.ID)
	require.NoError(t, err)
	e.request(t, a.ID, a.Resources[0].ID, 2, 5)
	e.clock.Advance(36 * time.Hour)
	_, err = e.lines.Complete(ctx, bizID, userID, a.ID, 90)
	require.NoError(t, err)

	b := e.startedLine(t, pan, harina, 50, 10)
	e.clock.Advance(12 * time.Hour)
	_, err = e.lines.Complete(ctx, bizID, userID, b.ID, 60)
	require.NoError(t, err)

	c := e.line(t, pan, harina, 30, 5)
	return &analyticsFixture{env: e, a: a, b: b, c: c, harina: harina}
}

func dec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

func TestAnalytics_Summary(t *testing.T) {
	f := newAnalyticsFixture(t)

	got, err := f.analytics.Summary(context.Background(), bizID, dto.DateRangeRequest{})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"PENDING": 1, "IN_PROGRESS": 0, "COMPLETED": 2, "CANCELLED": 0}, got.CountByStatus)
	assert.Equal(t, 3, got.TotalLines)
	assert.Equal(t, int64(180), got.TotalPlanned)
	assert.Equal(t, int64(150), got.TotalFinal)
	dec(t, "0", got.AverageVariance)
	dec(t, "5", got.AverageVariancePct)
	assert.Nil(t, got.StartDate)
}

func TestAnalytics_SummaryConRango(t *testing.T) {
	f := newAnalyticsFixture(t)
	rng := dto.DateRangeRequest{StartDate: "2026-03-02", EndDate: "2026-03-02"}

	got, err := f.analytics.Summary(context.Background(), bizID, rng)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalLines)
	assert.Equal(t, 1, got.CountByStatus["COMPLETED"])
	dec(t, "10", got.AverageVariance)
	require.NotNil(t, got.StartDate)
	require.NotNil(t, got.EndDate)

	_, err = f.analytics.Summary(context.Background(), bizID, dto.DateRangeRequest{StartDate: "02/03/2026"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAnalytics_SummaryNegocioSinLineas(t *testing.T) {
	f := newAnalyticsFixture(t)

	got, err := f.analytics.Summary(context.Background(), otherBiz, dto.DateRangeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalLines)
	assert.Len(t, got.CountByStatus, 4)
	dec(t, "0", got.AverageVariancePct)
}

func TestAnalytics_Efficiency(t *testing.T) {
	f := newAnalyticsFixture(t)

	got, err := f.analytics.Efficiency(context.Background(), bizID, dto.DateRangeRequest{})
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)

	b, a := got.Lines[0], got.Lines[1]
	assert.Equal(t, f.b.ID, b.LineID, "más reciente primero")
	dec(t, "120", b.EfficiencyPct)
	assert.Equal(t, int64(10), b.Variance)
	dec(t, "20", b.VariancePercentage)
	assert.Equal(t, 1, b.DurationDays)

	assert.Equal(t, f.a.ID, a.LineID)
	assert.Equal(t, int64(100), a.Planned)
	assert.Equal(t, int64(90), a.Final)
	dec(t, "90", a.EfficiencyPct)
	dec(t, "-10", a.VariancePercentage)
	assert.Equal(t, 2, a.DurationDays)

	dec(t, "105", got.AverageEfficiencyPct)
}

func TestAnalytics_Overview(t *testing.T) {
	f := newAnalyticsFixture(t)

	got, err := f.analytics.Overview(context.Background(), bizID, dto.DateRangeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Summary.TotalLines)
	assert.Len(t, got.Efficiency.Lines, 2)

	_, err = f.analytics.Overview(context.Background(), bizID, dto.DateRangeRequest{EndDate: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAnalytics_ResourceVarianceReport(t *testing.T) {
	f := newAnalyticsFixture(t)

	got, err := f.analytics.ResourceVarianceReport(context.Background(), bizID, f.a.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", got.LineStatus)
	require.Len(t, got.Resources, 1)

	r := got.Resources[0]
	assert.Equal(t, f.harina, r.ResourceItemID)
	assert.Equal(t, int64(50), r.NeededQuantity)
	assert.Equal(t, int64(30), r.ConsumedQuantity)
	assert.Equal(t, int64(5), r.PendingQuantity)
	assert.Equal(t, int64(-20), r.Difference)
	assert.Equal(t, 1, r.FulfilledRequests)
	assert.Equal(t, rules.ConsumptionUnder, r.Status)

	_, err = f.analytics.ResourceVarianceReport(context.Background(), otherBiz, f.a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportadores
// ──────────────────────────────────────────────────────────────────────────────

type fakePDF struct {
	meta   ports.ReportMeta
	report *dto.EfficiencyReportDTO
}

func (f *fakePDF) RenderEfficiency(_ context.Context, meta ports.ReportMeta, report *dto.EfficiencyReportDTO) ([]byte, error) {
	f.meta, f.report = meta, report
	return []byte("%PDF-fake"), nil
}

type fakeXML struct {
	meta   ports.ReportMeta
	report *dto.ResourceVarianceReportDTO
}

func (f *fakeXML) ExportVariance(meta ports.ReportMeta, report *dto.ResourceVarianceReportDTO) ([]byte, error) {
	f.meta, f.report = meta, report
	return []byte("<ResourceVarianceReport/>"), nil
}

func TestAnalytics_ExportadoresNoConfigurados(t *testing.T) {
	f := newAnalyticsFixture(t)

	_, err := f.analytics.EfficiencyPDF(context.Background(), bizID, dto.DateRangeRequest{})
	assert.Error(t, err)
	_, err = f.analytics.ResourceVarianceXML(context.Background(), bizID, f.a.ID)
	assert.Error(t, err)
}

func TestAnalytics_EfficiencyPDF(t *testing.T) {
	f := newAnalyticsFixture(t)
	pdf, xml := &fakePDF{}, &fakeXML{}
	uc := f.analytics.WithExporters(pdf, xml)

	out, err := uc.EfficiencyPDF(context.Background(), bizID, dto.DateRangeRequest{StartDate: "2026-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Equal(t, bizID, pdf.meta.BusinessID)
	require.NotNil(t, pdf.meta.StartDate)
	assert.Nil(t, pdf.meta.EndDate)
	assert.False(t, pdf.meta.GeneratedAt.IsZero())
	require.NotNil(t, pdf.report)
	assert.Len(t, pdf.report.Lines, 2)
}

func TestAnalytics_ResourceVarianceXML(t *testing.T) {
	f := newAnalyticsFixture(t)
	pdf, xml := &fakePDF{}, &fakeXML{}
	uc := f.analytics.WithExporters(pdf, xml)

	out, err := uc.ResourceVarianceXML(context.Background(), bizID, f.a.ID)
	require.NoError(t, err)
	assert.Contains(t, string(out), "ResourceVarianceReport")
	assert.Equal(t, f.a.ID, xml.report.LineID)

	_, err = uc.ResourceVarianceXML(context.Background(), bizID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
