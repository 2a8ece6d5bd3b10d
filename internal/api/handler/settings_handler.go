package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

// SettingsHandler exposes kiosk settings and the derived permissions.
type SettingsHandler struct {
	perms ports.PermissionService
}

func NewSettingsHandler(perms ports.PermissionService) *SettingsHandler {
	return &SettingsHandler{perms: perms}
}

type settingsResponse struct {
	Settings domain.Settings `json:"settings"`
	Loaded   bool            `json:"loaded"`
	Mutable  bool            `json:"mutable"`
}

type permissionsResponse struct {
	Snapshot domain.PermissionSnapshot  `json:"snapshot"`
	Mutable  bool                       `json:"mutable"`
	Mask     map[domain.Capability]bool `json:"mask,omitempty"`
}

// Permissions returns the operator capability snapshot. When controls is
// given, the mutability mask of those setting controls is included.
//
// @Summary      Operator permissions
// @Tags         settings
// @Produce      json
// @Param        controls  query     string  false  "Comma-separated setting controls, e.g. reorder,editQty"
// @Success      200       {object}  permissionsResponse
// @Failure      400       {object}  ErrorResponse
// @Router       /v1/permissions [get]
func (h *SettingsHandler) Permissions(c echo.Context) error {
	resp := permissionsResponse{
		Snapshot: h.perms.CurrentSnapshot(),
		Mutable:  h.perms.Mutable(),
	}

	if raw := strings.TrimSpace(c.QueryParam("controls")); raw != "" {
		controls := domain.ControlSet{}
		for _, name := range strings.Split(raw, ",") {
			capability, ok := domain.ParseCapability(strings.TrimSpace(name))
			if !ok {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown control: " + name})
			}
			controls[capability] = true
		}
		resp.Mask = h.perms.Mask(controls)
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns the last settings read from the kiosk server.
//
// @Summary      Kiosk settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  settingsResponse
// @Router       /v1/settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	s, loaded := h.perms.Settings()
	return c.JSON(http.StatusOK, settingsResponse{Settings: s, Loaded: loaded, Mutable: h.perms.Mutable()})
}

// Put saves the full settings set. Master mode only.
//
// @Summary      Save kiosk settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.Settings  true  "Full settings set"
// @Success      200   {object}  settingsResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /v1/settings [put]
func (h *SettingsHandler) Put(c echo.Context) error {
	var req domain.Settings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}

	if err := h.perms.Save(c.Request().Context(), req); err != nil {
		return writeError(c, err)
	}
	return h.Get(c)
}
