// Package xmlexport serializa reportes de producción a XML con etree.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
)

// NsProduction namespace de los documentos exportados.
const NsProduction = "urn:produccion-api:report:resource-variance:1"

// Algoritmos declarados en <Digest>.
const (
	AlgC14N   = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgSHA256 = "http://www.w3.org/2001/04/xmlenc#sha256"
)

// VarianceExporter implementa ports.VarianceXMLExporter.
type VarianceExporter struct {
	indent int
}

// NewVarianceExporter crea el exportador con indentación de 2 espacios.
func NewVarianceExporter() *VarianceExporter {
	return &VarianceExporter{indent: 2}
}

// ExportVariance arma el documento:
//
//	<ResourceVarianceReport xmlns=... generatedAt=...>
//	  <Line id=... status=...><Name/></Line>
//	  <Resources><Resource id=... status=...>...</Resource></Resources>
//	  <Digest algorithm=... canonicalization=...>base64(sha256(c14n(Resources)))</Digest>
//	</ResourceVarianceReport>
//
// El digest cubre solo <Resources>: dos exportaciones del mismo consumo coinciden aunque cambie generatedAt.
func (e *VarianceExporter) ExportVariance(meta ports.ReportMeta, rep *dto.ResourceVarianceReportDTO) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("xmlexport: reporte vacío")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ResourceVarianceReport")
	root.CreateAttr("xmlns", NsProduction)
	root.CreateAttr("businessId", meta.BusinessID)
	root.CreateAttr("generatedAt", meta.GeneratedAt.UTC().Format(time.RFC3339))

	line := root.CreateElement("Line")
	line.CreateAttr("id", rep.LineID)
	line.CreateAttr("status", rep.LineStatus)
	line.CreateElement("Name").SetText(rep.LineName)

	resources := root.CreateElement("Resources")
	resources.CreateAttr("count", strconv.Itoa(len(rep.Resources)))
	for _, r := range rep.Resources {
		el := resources.CreateElement("Resource")
		el.CreateAttr("id", r.ResourceID)
		el.CreateAttr("itemId", r.ResourceItemID)
		el.CreateAttr("status", r.Status)
		el.CreateElement("Name").SetText(r.ResourceName)
		if r.UnitOfMeasure != "" {
			el.CreateElement("UnitOfMeasure").SetText(r.UnitOfMeasure)
		}
		addInt(el, "NeededQuantity", r.NeededQuantity)
		addInt(el, "ConsumedQuantity", r.ConsumedQuantity)
		addInt(el, "PendingQuantity", r.PendingQuantity)
		addInt(el, "Difference", r.Difference)
		el.CreateElement("FulfilledRequests").SetText(strconv.Itoa(r.FulfilledRequests))
	}

	digest, err := Digest(resources)
	if err != nil {
		return nil, err
	}
	d := root.CreateElement("Digest")
	d.CreateAttr("algorithm", AlgSHA256)
	d.CreateAttr("canonicalization", AlgC14N)
	d.SetText(digest)

	doc.Indent(e.indent)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	return out.Bytes(), nil
}

// Digest SHA-256 en base64 de la forma canónica (C14N) del elemento, sin indentación.
func Digest(el *etree.Element) (string, error) {
	sub := etree.NewDocument()
	sub.SetRoot(el.Copy())
	raw, err := sub.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xmlexport: serializar para digest: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func addInt(parent *etree.Element, tag string, v int64) {
	parent.CreateElement(tag).SetText(strconv.FormatInt(v, 10))
}

var _ ports.VarianceXMLExporter = (*VarianceExporter)(nil)
