package analysis

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"symptra-health/internal/domain"
)

// TextExtractor turns an uploaded report file into plain text.
type TextExtractor interface {
	Supports(mimeType string) bool
	Extract(ctx context.Context, upload *domain.ReportUpload) (string, error)
}

// ReportAnalyzer produces the written analysis of a report's text.
type ReportAnalyzer interface {
	Analyze(ctx context.Context, reportText string) (string, error)
}

var errNotUTF8 = errors.New("report is not valid UTF-8 text")

type plainTextExtractor struct{}

func NewPlainTextExtractor() TextExtractor {
	return plainTextExtractor{}
}

func (plainTextExtractor) Supports(mimeType string) bool {
	mediaType, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(mediaType) == "text/plain"
}

func (plainTextExtractor) Extract(ctx context.Context, upload *domain.ReportUpload) (string, error) {
	if !utf8.Valid(upload.Content) {
		return "", errNotUTF8
	}
	return string(upload.Content), nil
}
