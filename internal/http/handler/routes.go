package handler

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"invoiceapi/internal/ingest"
	"invoiceapi/internal/repository"
	"invoiceapi/internal/service"
)

// APIIndex returns a short machine-readable description of the API.
func APIIndex() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name": "invoice analytics api",
			"endpoints": []string{
				"/health",
				"/api/invoices",
				"/api/stats",
				"/api/vendors/top10",
				"/api/invoice-trends",
				"/api/category-spend",
				"/api/cash-outflow",
				"/api/chat-with-data",
			},
		})
	}
}

// HealthCheck reports readiness; the database must answer a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is the bare liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListInvoices serves the flattened invoice projection with optional search
// and sorting.
func ListInvoices(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := repository.ListQuery{
			Search: c.Query("search"),
			Sort:   c.Query("sort"),
			Order:  c.Query("order"),
		}
		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// IngestInvoice accepts one raw extraction payload and stores the resulting
// invoice.
func IngestInvoice(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload ingest.Payload
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "cannot parse payload")
		}
		inv, err := svc.Ingest(c.UserContext(), &payload)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	}
}

// GetStats serves the dashboard headline numbers.
func GetStats(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(stats)
	}
}

// VendorTop10 serves the top vendors ranked by total spend.
func VendorTop10(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spend, err := svc.VendorSpend(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(spend)
	}
}

// InvoiceTrends serves invoice count and spend per calendar month.
func InvoiceTrends(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trend, err := svc.MonthlyTrend(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(trend)
	}
}

// CategorySpend serves spend per derived category.
func CategorySpend(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		breakdown, err := svc.CategorySpend(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(breakdown)
	}
}

// CashOutflow serves the payment forecast. mode=month (default) groups by
// due month, mode=relative groups into day-offset buckets from now.
func CashOutflow(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := service.ForecastMode(c.Query("mode", string(service.ForecastByMonth)))
		if mode != service.ForecastByMonth && mode != service.ForecastRelative {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MODE", "mode must be month or relative")
		}
		res, err := svc.CashOutflow(c.UserContext(), mode)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if mode == service.ForecastRelative {
			return c.JSON(res.Buckets)
		}
		return c.JSON(res.Months)
	}
}

type chatRequest struct {
	Query string `json:"query"`
}

// ChatWithData answers a natural-language question about the invoice data.
func ChatWithData(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "cannot parse payload")
		}
		ans, err := svc.Ask(c.UserContext(), req.Query)
		if err != nil {
			if errors.Is(err, service.ErrQueryRequired) {
				return writeError(c, fiber.StatusBadRequest, "QUERY_REQUIRED", "query is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(ans)
	}
}

// UploadInvoiceDocument attaches the scanned source file to an invoice
// (multipart/form-data, field name: file).
func UploadInvoiceDocument(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		invoiceID := c.Params("id")

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), invoiceID, f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invoice id is required")
			case errors.Is(err, service.ErrInvoiceNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "invoice not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DownloadInvoiceDocument returns a time-limited download URL for the
// invoice's attached document.
func DownloadInvoiceDocument(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		invoiceID := c.Params("id")

		url, err := svc.DownloadURL(c.UserContext(), invoiceID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invoice id is required")
			case errors.Is(err, service.ErrInvoiceNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// RegisterRoutes attaches all HTTP routes to the Fiber app. Handlers stay
// thin; business rules live in the services.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	invoiceSvc service.InvoiceService,
	analyticsSvc service.AnalyticsService,
	chatSvc service.ChatService,
	attachSvc service.AttachmentService,
) {
	app.Get("/", APIIndex())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/invoices", ListInvoices(invoiceSvc))
	api.Post("/invoices", IngestInvoice(invoiceSvc))
	api.Get("/stats", GetStats(analyticsSvc))
	api.Get("/vendors/top10", VendorTop10(analyticsSvc))
	api.Get("/invoice-trends", InvoiceTrends(analyticsSvc))
	api.Get("/category-spend", CategorySpend(analyticsSvc))
	api.Get("/cash-outflow", CashOutflow(analyticsSvc))
	api.Post("/chat-with-data", ChatWithData(chatSvc))
	api.Post("/invoices/:id/document", UploadInvoiceDocument(attachSvc))
	api.Get("/invoices/:id/document", DownloadInvoiceDocument(attachSvc))
}
