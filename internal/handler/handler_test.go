package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"symptra-health/internal/config"
	"symptra-health/internal/domain"
	"symptra-health/internal/handler"
	"symptra-health/internal/middleware"
	"symptra-health/internal/mocks"
	"symptra-health/internal/service/analysis"
	"symptra-health/internal/service/article"
	"symptra-health/internal/service/audit"
	"symptra-health/internal/service/auth"
	"symptra-health/internal/service/faq"
	"symptra-health/internal/service/request"
	"symptra-health/internal/service/user"
	"symptra-health/internal/service/workflow"
)

const testSecret = "handler-test-secret"

type stubAnalyzer struct {
	summary string
}

func (s stubAnalyzer) Analyze(ctx context.Context, reportText string) (string, error) {
	return s.summary, nil
}

type harness struct {
	app      *fiber.App
	users    *mocks.UserRepository
	requests *mocks.RequestRepository
	articles *mocks.ArticleRepository
	faqs     *mocks.FAQRepository
	reports  *mocks.MedicalReportRepository
	audit    *mocks.AuditService
	auditLog *mocks.AuditLogRepository
}

func newHarness() *harness {
	h := &harness{
		users:    new(mocks.UserRepository),
		requests: new(mocks.RequestRepository),
		articles: new(mocks.ArticleRepository),
		faqs:     new(mocks.FAQRepository),
		reports:  new(mocks.MedicalReportRepository),
		audit:    new(mocks.AuditService),
		auditLog: new(mocks.AuditLogRepository),
	}
	h.users.On("GetSummaries", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*domain.UserSummary{}, nil).Maybe()
	h.audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := &config.Config{
		Environment: "test",
		JWTSecret:   testSecret,
		JWTExpiry:   time.Hour,
		CookieName:  "token",
	}
	logger := zap.NewNop()
	tx := new(mocks.TxManager)

	authSvc := auth.NewService(h.users, nil, cfg, logger)
	articleSvc := article.NewService(h.articles, h.requests, h.users, tx, h.audit, nil, nil, time.Minute, logger)
	requestSvc := request.NewService(h.requests, h.users, tx, workflow.NewDispatcher(articleSvc), h.audit, nil, logger)
	analysisSvc := analysis.NewService(
		h.reports,
		[]analysis.TextExtractor{analysis.NewPlainTextExtractor()},
		stubAnalyzer{summary: "No abnormal findings."},
		nil,
		logger,
	)

	handlers := &handler.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, cfg),
		User:     handler.NewUserHandler(user.NewService(h.users)),
		Request:  handler.NewRequestHandler(requestSvc),
		Article:  handler.NewArticleHandler(articleSvc),
		FAQ:      handler.NewFAQHandler(faq.NewService(h.faqs)),
		Analysis: handler.NewAnalysisHandler(analysisSvc),
		Audit:    handler.NewAuditHandler(audit.NewService(h.auditLog)),
		Health:   handler.NewHealthHandler(nil),
	}

	h.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger, false)})
	handler.SetupRoutes(h.app, handlers, authSvc, cfg.CookieName)
	return h
}

// login registers u as a known session user and returns its bearer token.
func (h *harness) login(t *testing.T, u *domain.User) string {
	t.Helper()
	h.users.On("GetByID", mock.Anything, u.ID).Return(u, nil).Maybe()

	claims := &auth.Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (h *harness) do(t *testing.T, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success           bool            `json:"success"`
	Data              json.RawMessage `json:"data"`
	Message           string          `json:"message"`
	Count             *int            `json:"count"`
	ProcessedRequests []uuid.UUID     `json:"processedRequests"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func jsonDecode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

func newCookieRequest(method, target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(cookie)
	return req
}

func newUser(role domain.UserRole) *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Name:  "Test " + string(role),
		Email: string(role) + "@example.com",
		Role:  role,
	}
}
