package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
	"github.com/kzkiosk/kiosk-control/internal/core/service"
)

// TokenIssuer signs the UI token returned on master login.
type TokenIssuer interface {
	Issue(masterID string, issuedAt time.Time, ttl time.Duration) (string, error)
}

// uiTokenTTL outlives any session; the token is also bound to the master id
// so it stops working as soon as that session ends.
const uiTokenTTL = domain.MaxTimeoutMinutes * time.Minute

// MasterHandler handles master-mode login, logout and status.
type MasterHandler struct {
	sessions ports.SessionService
	tokens   TokenIssuer
}

func NewMasterHandler(sessions ports.SessionService, tokens TokenIssuer) *MasterHandler {
	return &MasterHandler{sessions: sessions, tokens: tokens}
}

type masterLoginRequest struct {
	QRText string `json:"qr_text"`
}

type masterLoginResponse struct {
	MasterID   string    `json:"master_id"`
	Token      string    `json:"token"`
	TimeoutMin int       `json:"timeout_min"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type masterStatusResponse struct {
	Active     bool       `json:"active"`
	MasterID   string     `json:"master_id,omitempty"`
	TimeoutMin int        `json:"timeout_min"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Verified   bool       `json:"verified"`
	Hint       string     `json:"hint,omitempty"`
}

// Login enters master mode with a scanned QR code.
//
// @Summary      Enter master mode
// @Tags         master
// @Accept       json
// @Produce      json
// @Param        body  body      masterLoginRequest  true  "Scanned master QR"
// @Success      200   {object}  masterLoginResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /v1/master/login [post]
func (h *MasterHandler) Login(c echo.Context) error {
	var req masterLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}

	masterID, err := h.sessions.Login(c.Request().Context(), req.QRText)
	if err != nil {
		return writeError(c, err)
	}

	session := h.sessions.Session()
	token, err := h.tokens.Issue(masterID, session.EstablishedAt, uiTokenTTL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, masterLoginResponse{
		MasterID:   masterID,
		Token:      token,
		TimeoutMin: session.TimeoutMinutes,
		ExpiresAt:  h.sessions.ExpiresAt(),
	})
}

// Logout leaves master mode. It always succeeds locally.
//
// @Summary      Leave master mode
// @Tags         master
// @Success      204
// @Router       /v1/master/logout [post]
func (h *MasterHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context(), domain.LogoutManual)
	return c.NoContent(http.StatusNoContent)
}

// Status reports master mode. With fresh=true the kiosk server is asked
// first; when it cannot be reached the local view is returned unverified.
//
// @Summary      Master mode status
// @Tags         master
// @Produce      json
// @Param        fresh  query     bool  false  "Verify with the kiosk server"
// @Success      200    {object}  masterStatusResponse
// @Router       /v1/master/status [get]
func (h *MasterHandler) Status(c echo.Context) error {
	freshness := domain.FreshnessOptimistic
	if c.QueryParam("fresh") == "true" {
		freshness = domain.FreshnessAuthoritative
	}

	active, err := h.sessions.Active(c.Request().Context(), freshness)
	session := h.sessions.Session()
	resp := masterStatusResponse{
		Active:     active,
		MasterID:   session.MasterID,
		TimeoutMin: session.TimeoutMinutes,
		Verified:   freshness == domain.FreshnessAuthoritative && err == nil,
	}
	if exp := h.sessions.ExpiresAt(); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}
	if err != nil {
		resp.Hint = service.UserHint(err)
	}
	return c.JSON(http.StatusOK, resp)
}
