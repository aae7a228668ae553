// Package extractor converts a statement PDF into one multi-line text blob
// for the extraction pipeline. It is a collaborator at the edge of the
// system: the pipeline itself never touches files. Scanned/image-only PDFs
// are rejected rather than OCR'd.
package extractor

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF file and returns its text content, pages joined
// with blank lines. It tries the Go PDF library first and falls back to the
// external pdftotext command (poppler-utils). Unreadable output is never
// returned — garbage from custom font encodings fails the readability check.
func ExtractText(filePath string) (string, error) {
	text, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(text) {
		return text, nil
	}
	if libErr != nil {
		slog.Debug("pdf library extraction failed, trying pdftotext", "path", filePath, "error", libErr)
	}

	text, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(text) {
		return text, nil
	}

	if libErr != nil {
		return "", fmt.Errorf("pdf text extraction failed: %w; the file may be image-based or use custom font encodings", libErr)
	}
	return "", fmt.Errorf("no readable text could be extracted from %s; the file may be scanned or image-based", filePath)
}

// extractWithLibrary uses ledongthuc/pdf, reconstructing lines row by row.
func extractWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			slog.Debug("could not read page text", "page", i, "error", err)
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractWithPdftotext shells out to poppler-utils.
func extractWithPdftotext(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}
	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(out), nil
}

// statementWords that appear in virtually every bank statement. Extracted
// text containing none of them is likely font-encoding garbage.
var statementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "branch",
	"period", "transfer", "withdrawal", "deposit",
}

// isReadableText requires enough text, a high readable-character ratio, and
// at least one recognizable statement word.
func isReadableText(text string) bool {
	if len(text) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range statementWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of plain readable characters to total. The
// check is deliberately strict ASCII: identity-encoded fonts produce accented
// garbage that unicode.IsLetter would happily accept.
func textQuality(text string) float64 {
	total, readable := 0, 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"£$€₹%&@#!?+=*", r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
