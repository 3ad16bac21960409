package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"surveypulse/internal/model"
)

// ExportResult is a rendered report ready to be served
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportExporter renders metrics export data into CSV, PDF or JSON
type ReportExporter struct{}

// NewReportExporter creates a new report exporter
func NewReportExporter() *ReportExporter {
	return &ReportExporter{}
}

// Export renders data in the requested format. An unknown format fails
// with ErrInvalidFormat and no partial output.
func (e *ReportExporter) Export(data *model.MetricsExportData, format string) (*ExportResult, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return e.exportCSV(data)
	case "pdf":
		return e.exportPDF(data)
	case "json":
		return e.exportJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

func (e *ReportExporter) filename(data *model.MetricsExportData, ext string) string {
	return fmt.Sprintf("reporte_metricas_%s.%s", data.GeneratedAt.Format("2006-01-02"), ext)
}

// exportCSV flattens the report into one row per scalar metric:
// (seccion, metrica, valor, periodo, empresa, area).
func (e *ReportExporter) exportCSV(data *model.MetricsExportData) (*ExportResult, error) {
	period := fmt.Sprintf("%d dias", data.PeriodDays)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	row := func(section, metric, value string) {
		w.Write([]string{section, metric, value, period, data.Company, data.Area})
	}

	w.Write([]string{"seccion", "metrica", "valor", "periodo", "empresa", "area"})

	row("resumen_general", "total_encuestas", strconv.Itoa(data.Summary.TotalSurveys))
	row("resumen_general", "total_respuestas", strconv.Itoa(data.Summary.TotalResponses))
	row("resumen_general", "total_clasificadas", strconv.Itoa(data.Summary.TotalClassified))
	row("resumen_general", "confianza_promedio", formatFloat(data.Summary.AvgConfidence))

	for _, s := range data.Surveys {
		section := "encuesta:" + s.SurveyID
		row(section, "nombre", s.SurveyName)
		row(section, "total_respuestas", strconv.Itoa(s.TotalResponses))
		row(section, "clasificadas", strconv.Itoa(s.Classified))
		row(section, "etiqueta_principal", s.TopLabel)
		row(section, "conteo_etiqueta_principal", strconv.Itoa(s.TopLabelCount))
		row(section, "confianza_promedio", formatFloat(s.AvgConfidence))
	}

	if data.Sentiment != nil {
		row("sentimiento", "positivo", strconv.Itoa(data.Sentiment.Positive))
		row("sentimiento", "negativo", strconv.Itoa(data.Sentiment.Negative))
		row("sentimiento", "neutral", strconv.Itoa(data.Sentiment.Neutral))
	}
	if data.Satisfaction != nil {
		row("satisfaccion", "conteo", strconv.Itoa(data.Satisfaction.Count))
		row("satisfaccion", "porcentaje", formatFloat(data.Satisfaction.Percentage))
		row("satisfaccion", "confianza_promedio", formatFloat(data.Satisfaction.AvgConfidence))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	return &ExportResult{
		Filename:    e.filename(data, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func (e *ReportExporter) exportJSON(data *model.MetricsExportData) (*ExportResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return &ExportResult{
		Filename:    e.filename(data, "json"),
		ContentType: "application/json; charset=utf-8",
		Data:        b,
	}, nil
}

// exportPDF renders the fixed single-document layout: header, general
// summary, per-survey breakdown, then the optional distribution blocks.
func (e *ReportExporter) exportPDF(data *model.MetricsExportData) (*ExportResult, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(data.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado: %s", data.GeneratedAt.Format("02/01/2006 15:04"))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Periodo: últimos %d días", data.PeriodDays)), "", 1, "C", false, 0, "")
	if data.Company != "" || data.Area != "" {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Filtros: empresa=%s area=%s", orDash(data.Company), orDash(data.Area))), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// General summary
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Resumen General"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	summaryLine(pdf, tr, "Encuestas analizadas", strconv.Itoa(data.Summary.TotalSurveys))
	summaryLine(pdf, tr, "Respuestas totales", strconv.Itoa(data.Summary.TotalResponses))
	summaryLine(pdf, tr, "Respuestas clasificadas", strconv.Itoa(data.Summary.TotalClassified))
	summaryLine(pdf, tr, "Confianza promedio", formatFloat(data.Summary.AvgConfidence))
	pdf.Ln(4)

	// Per-survey breakdown
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Desglose por Encuesta"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(60, 7, tr("Encuesta"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, tr("Respuestas"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, tr("Clasificadas"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, tr("Etiqueta principal"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, tr("Confianza"), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, s := range data.Surveys {
		pdf.CellFormat(60, 7, tr(s.SurveyName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, strconv.Itoa(s.TotalResponses), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, strconv.Itoa(s.Classified), "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, tr(s.TopLabel), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, formatFloat(s.AvgConfidence), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if data.Sentiment != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr("Distribución de Sentimiento"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		summaryLine(pdf, tr, "Positivo", strconv.Itoa(data.Sentiment.Positive))
		summaryLine(pdf, tr, "Negativo", strconv.Itoa(data.Sentiment.Negative))
		summaryLine(pdf, tr, "Neutral", strconv.Itoa(data.Sentiment.Neutral))
		pdf.Ln(4)
	}

	if data.Satisfaction != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr("Satisfacción con el Servicio"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		summaryLine(pdf, tr, "Menciones", strconv.Itoa(data.Satisfaction.Count))
		summaryLine(pdf, tr, "Porcentaje", formatFloat(data.Satisfaction.Percentage)+"%")
		summaryLine(pdf, tr, "Confianza promedio", formatFloat(data.Satisfaction.AvgConfidence))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return &ExportResult{
		Filename:    e.filename(data, "pdf"),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

func summaryLine(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(60, 6, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
