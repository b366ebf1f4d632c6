package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanflow-backend/internal/usecase/status"
)

// StatusHandler serves the borrower-facing status page. The token in the
// path is the only credential; no actor headers are consulted.
type StatusHandler struct{ uc *status.Usecase }

func NewStatusHandler(uc *status.Usecase) *StatusHandler { return &StatusHandler{uc: uc} }

func (h *StatusHandler) GetStatus(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing token path param"})
	}
	view, err := h.uc.Get(c.Request().Context(), token)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
