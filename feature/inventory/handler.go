package inventory

import (
	"errors"

	"prunderground/core/fio"
	"prunderground/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory sync.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory/:username")
	group.Get("/", h.HandleInventory)
	group.Post("/sync", h.HandleSync)
	group.Get("/listings", h.HandleOffers)
	group.Get("/cache", h.HandleCacheStatus)
	group.Get("/materials/:ticker", h.HandleMaterialStock)
	group.Get("/producible", h.HandleProducible)
	group.Post("/credential", h.HandleVerifyCredential)
}

// SyncResponse is the result of a sync request.
type SyncResponse struct {
	Username  string `json:"username"`
	Synced    bool   `json:"synced"`
	Staleness string `json:"staleness"`
}

// CredentialRequest carries an API key to verify.
type CredentialRequest struct {
	ApiKey string `json:"api_key"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return fiber.StatusNotFound
	case fio.IsNotConfigured(err):
		return fiber.StatusConflict
	case fio.IsAuthentication(err):
		return fiber.StatusUnprocessableEntity
	case fio.IsTransient(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := errorStatus(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.String("username", c.Params("username")), zap.Error(err))
	} else {
		l.Debug(msg, zap.String("username", c.Params("username")), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleInventory returns the user's storage locations and production suggestions.
// @Summary Get Inventory
// @Description Storage locations, inventory map and production suggestions, served from cache while fresh.
// @Tags inventory
// @Produce json
// @Param username path string true "FIO username"
// @Param force query bool false "Bypass the cache"
// @Success 200 {object} inventory.View
// @Failure 409 {object} map[string]string "No FIO credential"
// @Router /inventory/{username} [get]
func (h *Handler) HandleInventory(c *fiber.Ctx) error {
	view, err := h.service.Inventory(c.Context(), c.Params("username"), c.QueryBool("force", false))
	if err != nil {
		return h.fail(c, "Inventory lookup failed", err)
	}
	return c.JSON(view)
}

// HandleSync syncs the user's offer availability from FIO.
// @Summary Sync Inventory
// @Description Reconcile listings and FIO_SYNC bundles against live storage. Fresh data is not re-fetched unless force=true.
// @Tags inventory
// @Produce json
// @Param username path string true "FIO username"
// @Param force query bool false "Ignore the staleness gate"
// @Success 200 {object} inventory.SyncResponse
// @Failure 502 {object} inventory.SyncResponse "Sync did not complete"
// @Router /inventory/{username}/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	username := c.Params("username")
	ok := h.service.Sync(c.Context(), username, c.QueryBool("force", false))

	staleness, err := h.service.Staleness(c.Context(), username)
	if err != nil {
		staleness = "never"
	}
	resp := SyncResponse{Username: username, Synced: ok, Staleness: staleness}
	if !ok {
		return c.Status(fiber.StatusBadGateway).JSON(resp)
	}
	return c.JSON(resp)
}

// HandleOffers returns the user's offers with availability and prices.
// @Summary List Offers
// @Tags inventory
// @Produce json
// @Param username path string true "FIO username"
// @Success 200 {object} inventory.Report
// @Failure 404 {object} map[string]string "Unknown user"
// @Router /inventory/{username}/listings [get]
func (h *Handler) HandleOffers(c *fiber.Ctx) error {
	report, err := h.service.Offers(c.Context(), c.Params("username"))
	if err != nil {
		return h.fail(c, "Offer listing failed", err)
	}
	return c.JSON(report)
}

// HandleCacheStatus reports the user's cache slots.
// @Summary Cache Status
// @Tags inventory
// @Produce json
// @Param username path string true "FIO username"
// @Success 200 {object} cache.Report
// @Router /inventory/{username}/cache [get]
func (h *Handler) HandleCacheStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.CacheStatus(c.Params("username")))
}

// HandleMaterialStock lists where the user stores a material.
// @Summary Material Stock
// @Tags inventory
// @Produce json
// @Param username path string true "FIO username"
// @Param ticker path string true "Material ticker"
// @Success 200 {array} location.MaterialStock
// @Router /inventory/{username}/materials/{ticker} [get]
func (h *Handler) HandleMaterialStock(c *fiber.Ctx) error {
	stock, err := h.service.MaterialStock(c.Context(), c.Params("username"), c.Params("ticker"))
	if err != nil {
		return h.fail(c, "Material stock lookup failed", err)
	}
	return c.JSON(stock)
}

// HandleProducible maps materials to the user's buildings that can produce them.
// @Summary Producible Materials
// @Tags inventory
// @Produce json
// @Param username path string true "FIO username"
// @Success 200 {object} map[string][]string
// @Router /inventory/{username}/producible [get]
func (h *Handler) HandleProducible(c *fiber.Ctx) error {
	producible, err := h.service.Producible(c.Context(), c.Params("username"))
	if err != nil {
		return h.fail(c, "Producible lookup failed", err)
	}
	return c.JSON(producible)
}

// HandleVerifyCredential verifies and stores a FIO API key.
// @Summary Verify Credential
// @Description Verify an API key against the user's FIO account. An empty key re-verifies the stored one. A rejected key is cleared.
// @Tags inventory
// @Accept json
// @Produce json
// @Param username path string true "FIO username"
// @Param request body inventory.CredentialRequest false "API key"
// @Success 200 {object} fio.Account
// @Failure 422 {object} map[string]string "Key rejected"
// @Failure 502 {object} map[string]string "FIO unavailable"
// @Router /inventory/{username}/credential [post]
func (h *Handler) HandleVerifyCredential(c *fiber.Ctx) error {
	var req CredentialRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}

	account, err := h.service.VerifyCredential(c.Context(), c.Params("username"), req.ApiKey)
	if err != nil {
		return h.fail(c, "Credential verification failed", err)
	}
	return c.JSON(account)
}
