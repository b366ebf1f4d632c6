package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loanflow-backend/internal/domain/actor"
	commissionDomain "loanflow-backend/internal/domain/commission"
	dealDomain "loanflow-backend/internal/domain/deal"
	lenderDomain "loanflow-backend/internal/domain/lender"
	partnerDomain "loanflow-backend/internal/domain/partner"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// writeDomainError maps domain sentinels onto HTTP codes. Everything
// unmatched is a 500 with a generic body; internals never leak to clients.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, actor.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, dealDomain.ErrNotFound),
		errors.Is(err, lenderDomain.ErrNotFound),
		errors.Is(err, commissionDomain.ErrNotFound),
		errors.Is(err, partnerDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, dealDomain.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, dealDomain.ErrInvalidTransition),
		errors.Is(err, commissionDomain.ErrNotConfirmed):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
