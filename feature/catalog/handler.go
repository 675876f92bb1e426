package catalog

import (
	"prunderground/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/sync", h.HandleSync)
	group.Get("/stations", h.HandleStations)
	group.Get("/locations", h.HandleLocations)
	group.Get("/materials", h.HandleMaterials)
	group.Get("/categories", h.HandleCategories)
}

// SyncResponse reports both catalog syncs.
type SyncResponse struct {
	Planets   SyncSummary `json:"planets"`
	Materials SyncSummary `json:"materials"`
}

// HandleSync refreshes planets and materials from FIO.
// @Summary Sync Catalog
// @Description Refresh the planet/station registry and the material catalog. Fresh data is skipped unless force=true.
// @Tags catalog
// @Produce json
// @Param force query bool false "Ignore the staleness gate"
// @Success 200 {object} catalog.SyncResponse
// @Failure 502 {object} map[string]string "Upstream failure"
// @Router /catalog/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	force := c.QueryBool("force", false)

	planets, err := h.service.SyncPlanets(c.Context(), force)
	if err != nil {
		l.Error("Planet sync failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	materials, err := h.service.SyncMaterials(c.Context(), force)
	if err != nil {
		l.Error("Material sync failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(SyncResponse{Planets: planets, Materials: materials})
}

// HandleStations lists the CX station names.
// @Summary List CX Stations
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Router /catalog/stations [get]
func (h *Handler) HandleStations(c *fiber.Ctx) error {
	set, err := h.service.CXStationNames(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Station lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	names := make([]string, 0, len(set))
	for _, st := range Stations {
		if _, ok := set[st.Name]; ok {
			names = append(names, st.Name)
			delete(set, st.Name)
		}
	}
	for name := range set {
		names = append(names, name)
	}
	return c.JSON(names)
}

// HandleLocations searches planets and stations.
// @Summary Search Locations
// @Tags catalog
// @Produce json
// @Param q query string false "Name or natural id substring"
// @Success 200 {array} catalog.Planet
// @Router /catalog/locations [get]
func (h *Handler) HandleLocations(c *fiber.Ctx) error {
	planets, err := h.service.Locations(c.Context(), c.Query("q"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Location search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(planets)
}

// HandleMaterials lists materials.
// @Summary List Materials
// @Tags catalog
// @Produce json
// @Param category query string false "Category substring"
// @Success 200 {array} catalog.Material
// @Router /catalog/materials [get]
func (h *Handler) HandleMaterials(c *fiber.Ctx) error {
	materials, err := h.service.Materials(c.Context(), c.Query("category"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Material listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(materials)
}

// HandleCategories lists material categories.
// @Summary List Material Categories
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Router /catalog/categories [get]
func (h *Handler) HandleCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Category listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(categories)
}
