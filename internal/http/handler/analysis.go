package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"atlas/internal/service"
)

type analyzeBody struct {
	Domain   string `json:"domain"`
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

type reportURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

func validID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	_, err := uuid.Parse(id)
	return id, err == nil
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

// AnalyzeQuery godoc
// @Summary  Analyze a query without archiving it
// @Tags     analysis
// @Accept   json
// @Produce  json
// @Param    body body analyzeBody true "Query"
// @Success  200 {object} atlas.Result
// @Failure  400 {object} errorPayload
// @Router   /analyze [post]
func AnalyzeQuery(core Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body analyzeBody
		if err := c.BodyParser(&body); err != nil {
			return invalidBody(c)
		}
		body.Domain = strings.TrimSpace(body.Domain)
		if body.Domain == "" {
			return writeError(c, fiber.StatusBadRequest, "DOMAIN_REQUIRED", "domain is required")
		}
		if strings.TrimSpace(body.Query) == "" {
			return writeError(c, fiber.StatusBadRequest, "QUERY_REQUIRED", "query is required")
		}
		return c.JSON(core.AnalyzeQuery(c.UserContext(), body.Domain, body.Query))
	}
}

// CreateAnalysis godoc
// @Summary  Analyze a query and archive the report
// @Tags     analyses
// @Accept   json
// @Produce  json
// @Param    body body analyzeBody true "Query"
// @Success  201 {object} service.AnalysisRecord
// @Failure  400 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /analyses [post]
func CreateAnalysis(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body analyzeBody
		if err := c.BodyParser(&body); err != nil {
			return invalidBody(c)
		}
		rec, err := svc.Analyze(c.UserContext(), service.AnalyzeRequest{
			Domain:   body.Domain,
			Query:    body.Query,
			Language: language(c, body.Language),
		})
		switch {
		case errors.Is(err, service.ErrDomainRequired):
			return writeError(c, fiber.StatusBadRequest, "DOMAIN_REQUIRED", "domain is required")
		case errors.Is(err, service.ErrQueryRequired):
			return writeError(c, fiber.StatusBadRequest, "QUERY_REQUIRED", "query is required")
		case err != nil:
			return internalError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// ListAnalyses godoc
// @Summary  List archived analyses
// @Tags     analyses
// @Produce  json
// @Param    limit  query int    false "Page size" default(10)
// @Param    offset query int    false "Offset"    default(0)
// @Param    domain query string false "Domain filter"
// @Success  200 {object} service.AnalysisListResult
// @Failure  400 {object} errorPayload
// @Router   /analyses [get]
func ListAnalyses(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset, c.Query("domain"))
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(res)
	}
}

// GetAnalysis godoc
// @Summary  Get an archived analysis summary
// @Tags     analyses
// @Produce  json
// @Param    id path string true "Analysis ID"
// @Success  200 {object} model.Analysis
// @Failure  404 {object} errorPayload
// @Router   /analyses/{id} [get]
func GetAnalysis(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
			}
			return internalError(c, err)
		}
		return c.JSON(a)
	}
}

// GetAnalysisReport godoc
// @Summary  Download the archived JSON report
// @Tags     analyses
// @Produce  json
// @Param    id path string true "Analysis ID"
// @Success  200 {object} atlas.Result
// @Failure  404 {object} errorPayload
// @Router   /analyses/{id}/report [get]
func GetAnalysisReport(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, info, err := svc.Report(c.UserContext(), id)
		switch {
		case errors.Is(err, service.ErrNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
		case errors.Is(err, service.ErrReportNotFound):
			return writeError(c, fiber.StatusNotFound, "REPORT_NOT_FOUND", "report not found")
		case err != nil:
			return internalError(c, err)
		}
		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEApplicationJSON
		}
		c.Set(fiber.HeaderContentType, ct)
		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		return c.SendStream(rc, size)
	}
}

// GetAnalysisReportURL godoc
// @Summary  Presign a report download URL
// @Tags     analyses
// @Produce  json
// @Param    id     path  string true  "Analysis ID"
// @Param    expiry query string false "Validity, e.g. 30m" default(15m)
// @Success  200 {object} reportURLResponse
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /analyses/{id}/report-url [get]
func GetAnalysisReportURL(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var expiry time.Duration
		if raw := c.Query("expiry"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRY", "invalid expiry")
			}
			expiry = d
		}

		u, err := svc.ReportURL(c.UserContext(), id, expiry)
		switch {
		case errors.Is(err, service.ErrInvalidExpiry):
			return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRY", err.Error())
		case errors.Is(err, service.ErrNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
		case errors.Is(err, service.ErrReportNotFound):
			return writeError(c, fiber.StatusNotFound, "REPORT_NOT_FOUND", "report not found")
		case err != nil:
			return internalError(c, err)
		}
		if expiry == 0 {
			expiry = 15 * time.Minute
		}
		return c.JSON(reportURLResponse{URL: u, ExpiresIn: int64(expiry.Seconds())})
	}
}

// DeleteAnalysis godoc
// @Summary  Delete an analysis and its archived report
// @Tags     analyses
// @Param    id path string true "Analysis ID"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /analyses/{id} [delete]
func DeleteAnalysis(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
			}
			return internalError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
