package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanflow-backend/internal/usecase/lender"
)

type LenderHandler struct{ uc *lender.Usecase }

func NewLenderHandler(uc *lender.Usecase) *LenderHandler { return &LenderHandler{uc: uc} }

func (h *LenderHandler) SearchLenders(c echo.Context) error {
	var req lender.SearchInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	res, err := h.uc.Search(c.Request().Context(), actorFrom(c), req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type assignLenderReq struct {
	LenderID string `json:"lender_id" validate:"required,hex32"`
}

func (h *LenderHandler) AssignLender(c echo.Context) error {
	dealID := c.Param("deal_id")
	if dealID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing deal_id path param"})
	}
	var req assignLenderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	err := h.uc.Assign(c.Request().Context(), actorFrom(c), lender.AssignInput{
		DealID:   dealID,
		LenderID: req.LenderID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"deal_id": dealID, "lender_id": req.LenderID})
}

func (h *LenderHandler) ListAssignments(c echo.Context) error {
	dealID := c.Param("deal_id")
	if dealID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing deal_id path param"})
	}
	rows, err := h.uc.Assignments(c.Request().Context(), actorFrom(c), dealID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// ImportLenders accepts the CSV as the request body and streams it straight
// into the importer.
func (h *LenderHandler) ImportLenders(c echo.Context) error {
	report, err := h.uc.ImportCSV(c.Request().Context(), actorFrom(c), c.Request().Body)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
