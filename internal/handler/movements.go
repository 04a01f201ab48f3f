package handler

import (
	"net/http"

	"tecstock/internal/dto"
	"tecstock/internal/service"

	"github.com/gin-gonic/gin"
)

type MovementsHandler struct{ svc service.LedgerService }

func NewMovementsHandler(svc service.LedgerService) *MovementsHandler {
	return &MovementsHandler{svc: svc}
}

func (h *MovementsHandler) Apply(c *gin.Context) {
	var req dto.CreateMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyMovement(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MovementsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListMovements(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
