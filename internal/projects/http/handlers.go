package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/shiftboard/shiftboard-backend/internal/api/http"
	"github.com/shiftboard/shiftboard-backend/internal/projects/service"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.RespondError(c, h.log, "create project", err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), service.CreateProjectInput{
		Name:     req.Name,
		ClientID: string(req.ClientID),
		Address:  req.Address,
		Location: req.Location,
		Budget:   req.Budget,
		Manager:  req.Manager,
	})
	if err != nil {
		httpapi.RespondError(c, h.log, "create project", err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) get(c *gin.Context) {
	id, err := httpapi.PathID(c, "id")
	if err != nil {
		httpapi.RespondError(c, h.log, "get project", err)
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpapi.RespondError(c, h.log, "get project", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	id, err := httpapi.PathID(c, "id")
	if err != nil {
		httpapi.RespondError(c, h.log, "update project", err)
		return
	}

	var req updateReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.RespondError(c, h.log, "update project", err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		httpapi.RespondError(c, h.log, "update project", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := httpapi.PathID(c, "id")
	if err != nil {
		httpapi.RespondError(c, h.log, "delete project", err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpapi.RespondError(c, h.log, "delete project", err)
		return
	}
	c.JSON(http.StatusOK, messageResp{Message: "Project deleted successfully"})
}
