package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"atlas/internal/i18n"
	"atlas/internal/scanner"
)

type scanBody struct {
	Input    string `json:"input"`
	Language string `json:"language,omitempty"`
}

type domainsResponse struct {
	Domains []scanner.Domain `json:"domains"`
}

type languagesResponse struct {
	Languages []i18n.Language `json:"languages"`
	Default   string          `json:"default"`
}

// ListDomains godoc
// @Summary  List scannable domains
// @Tags     domains
// @Produce  json
// @Success  200 {object} domainsResponse
// @Router   /domains [get]
func ListDomains(s *scanner.Scanner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(domainsResponse{Domains: s.Domains()})
	}
}

// ScanDomain godoc
// @Summary  Scan a phenomenon within a domain
// @Description An empty input scans the domain's sample phenomenon.
// @Tags     domains
// @Accept   json
// @Produce  json
// @Param    domain path string   true  "Domain key"
// @Param    body   body scanBody false "Input"
// @Success  200 {object} scanner.Report
// @Failure  404 {object} errorPayload
// @Router   /domains/{domain}/scan [post]
func ScanDomain(s *scanner.Scanner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		domain := c.Params("domain")
		if !s.Supported(domain) {
			return writeError(c, fiber.StatusNotFound, "DOMAIN_NOT_SUPPORTED", "domain not supported")
		}

		var body scanBody
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return invalidBody(c)
			}
		}
		lang := language(c, body.Language)
		input := strings.TrimSpace(body.Input)
		if input == "" {
			sample, err := s.Sample(domain, lang)
			if err != nil {
				return internalError(c, err)
			}
			input = sample
		}
		return c.JSON(s.Scan(domain, input, lang))
	}
}

// ListLanguages godoc
// @Summary  List interface languages
// @Tags     domains
// @Produce  json
// @Success  200 {object} languagesResponse
// @Router   /languages [get]
func ListLanguages(cat *i18n.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(languagesResponse{Languages: cat.Languages(), Default: i18n.English})
	}
}
