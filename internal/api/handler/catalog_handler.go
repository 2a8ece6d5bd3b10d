package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

// CatalogHandler handles the SKU catalog.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type skuListResponse struct {
	Items []domain.SkuRecord `json:"items"`
	Count int                `json:"count"`
}

type skuGroupsResponse struct {
	Groups []domain.CatalogGroup `json:"groups"`
}

type updateSkuRequest struct {
	Name     string `json:"name"      validate:"required"`
	IsActive bool   `json:"is_active"`
}

// List searches the cached catalog.
//
// @Summary      Search SKUs
// @Tags         catalog
// @Produce      json
// @Param        q                 query     string  false  "Code or name fragment"
// @Param        include_inactive  query     bool    false  "Include deactivated records"
// @Success      200               {object}  skuListResponse
// @Router       /v1/catalog [get]
func (h *CatalogHandler) List(c echo.Context) error {
	includeInactive, _ := strconv.ParseBool(c.QueryParam("include_inactive"))
	items := h.catalog.Search(c.QueryParam("q"), includeInactive)
	return c.JSON(http.StatusOK, skuListResponse{Items: items, Count: len(items)})
}

// Groups returns the catalog partitioned by model group.
//
// @Summary      Grouped catalog
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  skuGroupsResponse
// @Router       /v1/catalog/groups [get]
func (h *CatalogHandler) Groups(c echo.Context) error {
	return c.JSON(http.StatusOK, skuGroupsResponse{Groups: h.catalog.Groups()})
}

// Refresh reloads the catalog from the kiosk server.
//
// @Summary      Reload catalog
// @Tags         catalog
// @Success      204
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/catalog/refresh [post]
func (h *CatalogHandler) Refresh(c echo.Context) error {
	if err := h.catalog.Refresh(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Create registers a new SKU. The code is derived from the fields.
//
// @Summary      Create SKU
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.SkuDraft  true  "SKU fields"
// @Success      201   {object}  domain.SkuRecord
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /v1/catalog [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req domain.SkuDraft
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}

	created, err := h.catalog.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update renames or (de)activates a SKU.
//
// @Summary      Update SKU
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "SKU id"
// @Param        body  body      updateSkuRequest  true  "New name and state"
// @Success      200   {object}  domain.SkuRecord
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /v1/catalog/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	var req updateSkuRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	updated, err := h.catalog.Update(c.Request().Context(), c.Param("id"), req.Name, req.IsActive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
