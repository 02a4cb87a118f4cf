package xmlexport_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/xmlexport"
)

func TestExportVariance_EstructuraDelDocumento(t *testing.T) {
	rep := &dto.ResourceVarianceReportDTO{
		LineID:     "line-1",
		LineName:   "Lote pan",
		LineStatus: "IN_PROGRESS",
		Resources: []dto.ResourceVarianceDTO{
			{ResourceID: "r1", ResourceItemID: "p-harina", ResourceName: "Harina", UnitOfMeasure: "kg",
				NeededQuantity: 10, ConsumedQuantity: 12, Difference: 2, FulfilledRequests: 2, Status: "OVER"},
			{ResourceID: "r2", ResourceItemID: "p-sal", ResourceName: "Sal",
				NeededQuantity: 5, ConsumedQuantity: 0, PendingQuantity: 3, Difference: -5, Status: "UNDER"},
		},
	}
	meta := ports.ReportMeta{BusinessID: "biz-1", GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}

	out, err := xmlexport.NewVarianceExporter().ExportVariance(meta, rep)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "ResourceVarianceReport", root.Tag)
	assert.Equal(t, "biz-1", root.SelectAttrValue("businessId", ""))
	assert.Equal(t, "2026-01-02T03:04:05Z", root.SelectAttrValue("generatedAt", ""))

	line := root.SelectElement("Line")
	require.NotNil(t, line)
	assert.Equal(t, "IN_PROGRESS", line.SelectAttrValue("status", ""))
	assert.Equal(t, "Lote pan", line.SelectElement("Name").Text())

	resources := root.FindElements("./Resources/Resource")
	require.Len(t, resources, 2)
	assert.Equal(t, "OVER", resources[0].SelectAttrValue("status", ""))
	assert.Equal(t, "12", resources[0].SelectElement("ConsumedQuantity").Text())
	assert.Equal(t, "-5", resources[1].SelectElement("Difference").Text())
	assert.Nil(t, resources[1].SelectElement("UnitOfMeasure"))
}

func TestExportVariance_DigestSoloDependeDeLosRecursos(t *testing.T) {
	rep := &dto.ResourceVarianceReportDTO{
		LineID: "line-1", LineName: "Lote", LineStatus: "COMPLETED",
		Resources: []dto.ResourceVarianceDTO{{ResourceID: "r1", ResourceItemID: "p1", ResourceName: "Harina",
			NeededQuantity: 10, ConsumedQuantity: 10, Status: "EXACT"}},
	}
	exp := xmlexport.NewVarianceExporter()
	digestOf := func(meta ports.ReportMeta, rep *dto.ResourceVarianceReportDTO) string {
		out, err := exp.ExportVariance(meta, rep)
		require.NoError(t, err)
		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(out))
		d := doc.Root().SelectElement("Digest")
		require.NotNil(t, d)
		assert.Equal(t, xmlexport.AlgSHA256, d.SelectAttrValue("algorithm", ""))
		return d.Text()
	}

	first := digestOf(ports.ReportMeta{GeneratedAt: time.Unix(0, 0)}, rep)
	second := digestOf(ports.ReportMeta{GeneratedAt: time.Now()}, rep)
	assert.Len(t, first, 44)
	assert.Equal(t, first, second)

	rep.Resources[0].ConsumedQuantity = 11
	assert.NotEqual(t, first, digestOf(ports.ReportMeta{}, rep))
}

func TestExportVariance_ReporteNil(t *testing.T) {
	_, err := xmlexport.NewVarianceExporter().ExportVariance(ports.ReportMeta{}, nil)
	assert.Error(t, err)
}
