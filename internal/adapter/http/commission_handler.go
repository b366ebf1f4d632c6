package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanflow-backend/internal/usecase/commission"
)

type CommissionHandler struct{ uc *commission.Usecase }

func NewCommissionHandler(uc *commission.Usecase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

func (h *CommissionHandler) MarkPaid(c echo.Context) error {
	commissionID := c.Param("commission_id")
	if commissionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing commission_id path param"})
	}
	out, err := h.uc.MarkPaid(c.Request().Context(), actorFrom(c), commissionID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CommissionHandler) ListCommissions(c echo.Context) error {
	rows, err := h.uc.List(c.Request().Context(), actorFrom(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
