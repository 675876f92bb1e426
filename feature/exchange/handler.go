package exchange

import (
	"errors"
	"time"

	"prunderground/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for exchange prices.
type Handler struct {
	repo      *Repository
	job       *PriceSyncJob
	scheduler *Scheduler
	archive   *Archive
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler. scheduler and archive may be nil.
func NewHandler(repo *Repository, job *PriceSyncJob, scheduler *Scheduler, archive *Archive, l *zap.Logger) *Handler {
	return &Handler{repo: repo, job: job, scheduler: scheduler, archive: archive, logger: l}
}

// RegisterRoutes registers the exchange routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/exchange")
	group.Post("/sync", h.HandleSync)
	group.Get("/status", h.HandleStatus)
	group.Get("/snapshots", h.HandleSnapshots)
	group.Get("/snapshots/:name", h.HandleSnapshot)
	group.Get("/:ticker/:code", h.HandleQuote)
}

// StatusResponse describes the state of the stored prices.
type StatusResponse struct {
	Quotes   int64      `json:"quotes"`
	LastSync *time.Time `json:"last_sync"`
	Age      string     `json:"age"`
	NextRun  *time.Time `json:"next_run"`
}

// HandleSync runs a price sync now.
// @Summary Sync CX Prices
// @Description Fetch every CX quote from FIO and upsert it. May overlap a scheduled run.
// @Tags exchange
// @Produce json
// @Success 200 {object} exchange.Summary
// @Failure 502 {object} map[string]string "Sync failed"
// @Router /exchange/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	summary, err := h.job.Run(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Manual CX price sync failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// HandleStatus reports how fresh the stored prices are.
// @Summary CX Price Status
// @Tags exchange
// @Produce json
// @Success 200 {object} exchange.StatusResponse
// @Router /exchange/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	count, err := h.repo.Count(ctx)
	if err != nil {
		return h.internal(c, err)
	}
	last, err := h.repo.LastSync(ctx)
	if err != nil {
		return h.internal(c, err)
	}
	age, err := h.repo.SyncAge(ctx)
	if err != nil {
		return h.internal(c, err)
	}

	resp := StatusResponse{Quotes: count, LastSync: last, Age: age}
	if h.scheduler != nil {
		if next := h.scheduler.Next(); !next.IsZero() {
			resp.NextRun = &next
		}
	}
	return c.JSON(resp)
}

// HandleQuote returns one stored quote.
// @Summary Get CX Quote
// @Tags exchange
// @Produce json
// @Param ticker path string true "Material ticker"
// @Param code path string true "Exchange code"
// @Success 200 {object} exchange.Quote
// @Failure 404 {object} map[string]string "Unknown quote"
// @Router /exchange/{ticker}/{code} [get]
func (h *Handler) HandleQuote(c *fiber.Ctx) error {
	quote, err := h.repo.Quote(c.Context(), c.Params("ticker"), c.Params("code"))
	if errors.Is(err, ErrQuoteNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(quote)
}

// HandleSnapshots lists archived snapshots.
// @Summary List CX Snapshots
// @Tags exchange
// @Produce json
// @Success 200 {array} string
// @Failure 404 {object} map[string]string "Archive disabled"
// @Router /exchange/snapshots [get]
func (h *Handler) HandleSnapshots(c *fiber.Ctx) error {
	if h.archive == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "snapshot archive is disabled"})
	}
	names, err := h.archive.List(c.Context())
	if err != nil {
		return h.internal(c, err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}

// HandleSnapshot returns the raw quotes of one archived snapshot.
// @Summary Get CX Snapshot
// @Tags exchange
// @Produce json
// @Param name path string true "Snapshot name, e.g. 2026-03-14T09:30:00Z.json"
// @Success 200 {array} fio.ExchangeQuote
// @Failure 404 {object} map[string]string "Unknown snapshot or archive disabled"
// @Router /exchange/snapshots/{name} [get]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	if h.archive == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "snapshot archive is disabled"})
	}
	quotes, err := h.archive.Get(c.Context(), c.Params("name"))
	if errors.Is(err, ErrSnapshotNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(quotes)
}

func (h *Handler) internal(c *fiber.Ctx, err error) error {
	logger.WithRayID(h.logger, c).Error("Exchange request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
