package domain

import (
	"time"

	"github.com/google/uuid"
)

const ReportSnippetLength = 500

type MedicalReport struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"userId" db:"user_id"`
	ReportTextSnippet string    `json:"reportTextSnippet" db:"report_text_snippet"`
	AIAnalysis        string    `json:"aiAnalysis" db:"ai_analysis"`
	OriginalFileName  *string   `json:"originalFileName,omitempty" db:"original_file_name"`
	StoragePath       *string   `json:"-" db:"storage_path"`
	AnalysisTimestamp time.Time `json:"analysisTimestamp" db:"analysis_timestamp"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// ReportUpload is an uploaded report file; nil when the caller pasted text.
type ReportUpload struct {
	FileName string
	MimeType string
	Size     int64
	Content  []byte
}

type AnalyzeReportInput struct {
	ReportText string
	File       *ReportUpload
}

// Snippet truncates text to ReportSnippetLength runes, marking truncation with "...".
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= ReportSnippetLength {
		return text
	}
	return string(runes[:ReportSnippetLength]) + "..."
}
