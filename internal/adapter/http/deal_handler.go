package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanflow-backend/internal/domain/event"
	"loanflow-backend/internal/usecase/deal"
)

type DealHandler struct{ uc *deal.Usecase }

func NewDealHandler(uc *deal.Usecase) *DealHandler { return &DealHandler{uc: uc} }

func (h *DealHandler) SubmitDeal(c echo.Context) error {
	var req deal.SubmitInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Submit(c.Request().Context(), actorFrom(c), req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DealHandler) ListDeals(c echo.Context) error {
	deals, err := h.uc.List(c.Request().Context(), actorFrom(c), c.QueryParam("partner_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, deals)
}

type transitionReq struct {
	TargetStage  string   `json:"target_stage" validate:"required"`
	Reason       string   `json:"reason"`
	ClosedAmount *float64 `json:"closed_amount" validate:"omitempty,gt=0,dec2"`
}

func (h *DealHandler) TransitionDeal(c echo.Context) error {
	dealID := c.Param("deal_id")
	if dealID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing deal_id path param"})
	}
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	err := h.uc.Transition(c.Request().Context(), actorFrom(c), deal.TransitionInput{
		DealID:       dealID,
		TargetStage:  req.TargetStage,
		Reason:       req.Reason,
		ClosedAmount: req.ClosedAmount,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"deal_id": dealID, "stage": req.TargetStage})
}

type addNoteReq struct {
	Note       string `json:"note" validate:"required"`
	Visibility string `json:"visibility" validate:"required,oneof=INTERNAL PARTNER BORROWER"`
}

func (h *DealHandler) AddNote(c echo.Context) error {
	dealID := c.Param("deal_id")
	if dealID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing deal_id path param"})
	}
	var req addNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	err := h.uc.AddNote(c.Request().Context(), actorFrom(c), dealID, req.Note, event.Visibility(req.Visibility))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"deal_id": dealID})
}

func (h *DealHandler) SendTrackingLink(c echo.Context) error {
	dealID := c.Param("deal_id")
	if dealID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing deal_id path param"})
	}
	if err := h.uc.SendTrackingLink(c.Request().Context(), actorFrom(c), dealID); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]string{"deal_id": dealID})
}
