package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"symptra-health/internal/domain"
	"symptra-health/internal/middleware"
	"symptra-health/internal/service/analysis"
	"symptra-health/pkg/response"
)

const reportFileField = "reportFile"

type AnalysisHandler struct {
	analysisService analysis.Service
}

func NewAnalysisHandler(analysisService analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze accepts either a multipart reportFile upload or a pasted
// reportText field (form or JSON).
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	input := domain.AnalyzeReportInput{ReportText: c.FormValue("reportText")}
	if input.ReportText == "" && c.Is("json") {
		var body struct {
			ReportText string `json:"reportText"`
		}
		if err := parseBody(c, &body); err != nil {
			return err
		}
		input.ReportText = body.ReportText
	}

	fileHeader, err := c.FormFile(reportFileField)
	switch {
	case err == nil:
		upload, err := readUpload(fileHeader)
		if err != nil {
			return err
		}
		input.File = upload
	case errors.Is(err, fasthttp.ErrMissingFile), errors.Is(err, fasthttp.ErrNoMultipartForm):
	default:
		return middleware.BadRequest("Invalid report upload")
	}

	report, err := h.analysisService.Analyze(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(report, "Report analyzed successfully."))
}

func (h *AnalysisHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	reports, err := h.analysisService.ListMine(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(reports, len(reports)))
}

func (h *AnalysisHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrReportNotFound)
	if err != nil {
		return err
	}

	if err := h.analysisService.Delete(c.UserContext(), id, middleware.GetCurrentUser(c)); err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(nil, "Deleted successfully."))
}

func readUpload(fileHeader *multipart.FileHeader) (*domain.ReportUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open report upload: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read report upload: %w", err)
	}

	return &domain.ReportUpload{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:     fileHeader.Size,
		Content:  content,
	}, nil
}
