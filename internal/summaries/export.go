package summaries

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"summarizer-backend/internal/shared/util"
)

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatPDF      ExportFormat = "pdf"

	bulkExportBase = "summaries_export"
)

// Export is a rendered file ready to download.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ParseExportFormat accepts "markdown" (or "md") and "pdf". Empty means markdown.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", ErrInvalidInput, raw)
	}
}

func renderMarkdown(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	if s.OriginalURL != nil && *s.OriginalURL != "" {
		fmt.Fprintf(&b, "**Source:** %s\n\n", *s.OriginalURL)
	}
	fmt.Fprintf(&b, "**Reading time:** %d min\n\n", s.ReadingTime)
	if len(s.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(s.Tags, ", "))
	}
	fmt.Fprintf(&b, "**Created:** %s\n\n", s.CreatedAt.UTC().Format("2006-01-02"))
	b.WriteString("## Summary\n\n")
	b.WriteString(strings.TrimSpace(s.Summary))
	b.WriteString("\n")
	if len(s.KeyPoints) > 0 {
		b.WriteString("\n## Key Points\n\n")
		for _, p := range s.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	return b.String()
}

func exportMarkdown(s Summary) Export {
	return Export{
		FileName:    util.ExportFileName(s.Title, "md"),
		ContentType: "text/markdown; charset=utf-8",
		Data:        []byte(renderMarkdown(s)),
	}
}

func exportPDF(items []Summary, fileName string) (Export, error) {
	data, err := renderPDF(items)
	if err != nil {
		return Export{}, err
	}
	return Export{FileName: fileName, ContentType: "application/pdf", Data: data}, nil
}

func renderPDF(items []Summary) ([]byte, error) {
	pdf := layoutPDF(items)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// layoutPDF lays out one page per summary.
func layoutPDF(items []Summary) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)

	for _, s := range items {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, tr(s.Title), "", "L", false)
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 9)
		meta := fmt.Sprintf("Reading time: %d min  |  Created: %s", s.ReadingTime, s.CreatedAt.UTC().Format("2006-01-02"))
		if s.OriginalURL != nil && *s.OriginalURL != "" {
			meta += "  |  Source: " + *s.OriginalURL
		}
		pdf.MultiCell(0, 5, tr(meta), "", "L", false)
		if len(s.Tags) > 0 {
			pdf.MultiCell(0, 5, tr("Tags: "+strings.Join(s.Tags, ", ")), "", "L", false)
		}
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, para := range strings.Split(strings.TrimSpace(s.Summary), "\n") {
			if strings.TrimSpace(para) == "" {
				pdf.Ln(3)
				continue
			}
			pdf.MultiCell(0, 5.5, tr(para), "", "L", false)
		}

		if len(s.KeyPoints) > 0 {
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 7, "Key Points", "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			for _, p := range s.KeyPoints {
				pdf.MultiCell(0, 5.5, tr("- "+p), "", "L", false)
			}
		}
	}
	return pdf
}

// zipMarkdown bundles one Markdown file per summary. A name already in the
// archive gets the lowest free numeric suffix.
func zipMarkdown(items []Summary) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]struct{}, len(items))
	for _, s := range items {
		slug := util.SlugFileName(s.Title)
		name := slug + ".md"
		for n := 2; ; n++ {
			if _, taken := used[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s_%d.md", slug, n)
		}
		used[name] = struct{}{}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: s.UpdatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", name, err)
		}
		if _, err := w.Write([]byte(renderMarkdown(s))); err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}
