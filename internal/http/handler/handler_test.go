package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"atlas/internal/atlas"
	"atlas/internal/i18n"
	"atlas/internal/memory"
	"atlas/internal/model"
	"atlas/internal/scanner"
	"atlas/internal/service"
	serviceMocks "atlas/internal/service/mocks"
	"atlas/internal/storage"
)

type fakeCore struct {
	calls       atomic.Int64
	operational bool
}

func (f *fakeCore) AnalyzeQuery(_ context.Context, domain, query string) *atlas.Result {
	f.calls.Add(1)
	return &atlas.Result{
		Domain:  domain,
		Query:   query,
		Success: true,
		Meta:    atlas.MetaCognitive{ProcessingDepth: 7, FractalCoherence: 0.9},
	}
}

func (f *fakeCore) Status(context.Context) *atlas.Status {
	return &atlas.Status{
		State: atlas.SystemState{
			Operational:      f.operational,
			PerformanceLevel: "MAXIMUM",
			Quantum:          "ACTIVE",
			Bio:              "ACTIVE",
			Temporal:         "INACTIVE",
		},
		ModulesLoaded: 4,
	}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAnalysis(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnalysisService)
	app := fiber.New()
	app.Post("/analyses", CreateAnalysis(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		rec := &service.AnalysisRecord{
			Analysis: &model.Analysis{ID: id, Domain: "physics", Language: "it"},
			Result:   &atlas.Result{Domain: "physics", Success: true},
		}
		want := service.AnalyzeRequest{Domain: "physics", Query: "entanglement", Language: "it"}
		mockSvc.On("Analyze", mock.Anything, want).Return(rec, nil).Once()

		req := jsonRequest(http.MethodPost, "/analyses", `{"domain":"physics","query":"entanglement"}`)
		req.Header.Set("Accept-Language", "it")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got service.AnalysisRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, id, got.Analysis.ID)
		assert.True(t, got.Result.Success)
		mockSvc.AssertExpectations(t)
	})

	t.Run("body language wins over header", func(t *testing.T) {
		want := service.AnalyzeRequest{Domain: "biology", Query: "cells", Language: "fr"}
		mockSvc.On("Analyze", mock.Anything, want).
			Return(&service.AnalysisRecord{Analysis: &model.Analysis{}}, nil).Once()

		req := jsonRequest(http.MethodPost, "/analyses", `{"domain":"biology","query":"cells","language":"fr"}`)
		req.Header.Set("Accept-Language", "de")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/analyses", `{`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("validation errors", func(t *testing.T) {
		mockSvc.On("Analyze", mock.Anything, service.AnalyzeRequest{Query: "q"}).
			Return(nil, service.ErrDomainRequired).Once()
		mockSvc.On("Analyze", mock.Anything, service.AnalyzeRequest{Domain: "physics"}).
			Return(nil, service.ErrQueryRequired).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/analyses", `{"query":"q"}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "DOMAIN_REQUIRED", decodeError(t, resp).Error.Code)

		resp, _ = app.Test(jsonRequest(http.MethodPost, "/analyses", `{"domain":"physics"}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "QUERY_REQUIRED", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(nil, errors.New("upload failed")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/analyses", `{"domain":"physics","query":"q"}`))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListAnalyses(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnalysisService)
	app := fiber.New()
	app.Get("/analyses", ListAnalyses(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.AnalysisListResult{
			Items: []model.Analysis{{ID: uuid.New().String(), Domain: "physics"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 5, 10, "physics").Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/analyses?limit=5&offset=10&domain=physics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.AnalysisListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid offset", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses?offset=x", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0, "").Return(nil, errors.New("service error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetAnalysis(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnalysisService)
	app := fiber.New()
	app.Get("/analyses/:id", GetAnalysis(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(&model.Analysis{ID: id, Domain: "biology"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Analysis
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/invalid-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, errors.New("db error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id, nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetAnalysisReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnalysisService)
	app := fiber.New()
	app.Get("/analyses/:id/report", GetAnalysisReport(mockSvc))

	t.Run("streams archive", func(t *testing.T) {
		id := uuid.New().String()
		payload := `{"domain":"physics","success":true}`
		info := storage.ObjectInfo{Key: storage.ReportKey(id), Size: int64(len(payload)), ContentType: storage.ReportContentType}
		mockSvc.On("Report", mock.Anything, id).
			Return(io.NopCloser(strings.NewReader(payload)), info, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id+"/report", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, storage.ReportContentType, resp.Header.Get("Content-Type"))
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, payload, string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing archive", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Report", mock.Anything, id).Return(nil, storage.ObjectInfo{}, service.ErrReportNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id+"/report", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "REPORT_NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown analysis", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Report", mock.Anything, id).Return(nil, storage.ObjectInfo{}, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id+"/report", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})
}

func TestGetAnalysisReportURL(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnalysisService)
	app := fiber.New()
	app.Get("/analyses/:id/report-url", GetAnalysisReportURL(mockSvc))

	t.Run("explicit expiry", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("ReportURL", mock.Anything, id, 30*time.Minute).Return("http://minio/reports/x", nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id+"/report-url?expiry=30m", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got reportURLResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, reportURLResponse{URL: "http://minio/reports/x", ExpiresIn: 1800}, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("default expiry", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("ReportURL", mock.Anything, id, time.Duration(0)).Return("http://minio/r", nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id+"/report-url", nil))

		var got reportURLResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(900), got.ExpiresIn)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unparsable expiry", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+uuid.New().String()+"/report-url?expiry=soon", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_EXPIRY", decodeError(t, resp).Error.Code)
	})

	t.Run("archive missing", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("ReportURL", mock.Anything, id, time.Duration(0)).Return("", service.ErrReportNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id+"/report-url", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "REPORT_NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("out of range expiry", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("ReportURL", mock.Anything, id, 1000*time.Hour).Return("", service.ErrInvalidExpiry).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/analyses/"+id+"/report-url?expiry=1000h", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_EXPIRY", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteAnalysis(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnalysisService)
	app := fiber.New()
	app.Delete("/analyses/:id", DeleteAnalysis(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/analyses/"+id, nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/analyses/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/analyses/"+id, nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockAnalysisService)
	RegisterRoutes(app, Deps{
		Core:          &fakeCore{operational: true},
		Analyses:      mockSvc,
		Conversations: service.NewConversationService(),
		Scanner:       scanner.New(),
		Catalog:       i18n.Default(),
		Memory:        memory.NewInMemory(),
	})

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("metrics route needs a gatherer", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("memory metrics is not an id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/memories/metrics", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var m memory.Metrics
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
		assert.Equal(t, 0, m.TotalMemories)
	})

	t.Run("request body reaches core", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/analyze", `{"domain":"physics","query":"spin"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		c.Locals("request_id", "rid-7")
		return writeError(c, fiber.StatusTeapot, "TEAPOT", "short and stout")
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	assert.JSONEq(t, `{"request_id":"rid-7","error":{"code":"TEAPOT","message":"short and stout"}}`, buf.String())
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Post("/big", func(c *fiber.Ctx) error { return fiber.ErrRequestEntityTooLarge })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.ErrTeapot })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("disk on fire") })

	tests := []struct {
		method, path string
		status       int
		code         string
	}{
		{http.MethodPost, "/big", http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{http.MethodGet, "/teapot", http.StatusTeapot, "INTERNAL_ERROR"},
		{http.MethodGet, "/plain", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "disk on fire")
		})
	}
}
