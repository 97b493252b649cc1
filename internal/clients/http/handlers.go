package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/shiftboard/shiftboard-backend/internal/api/http"
	"github.com/shiftboard/shiftboard-backend/internal/clients/service"
)

func (h *Handler) create(c *gin.Context) {
	var req clientReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.RespondError(c, h.log, "create client", err)
		return
	}

	client, err := h.svc.Create(c.Request.Context(), service.CreateClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		httpapi.RespondError(c, h.log, "create client", err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, h.log, "list clients", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id, err := httpapi.PathID(c, "id")
	if err != nil {
		httpapi.RespondError(c, h.log, "get client", err)
		return
	}

	client, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpapi.RespondError(c, h.log, "get client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) update(c *gin.Context) {
	id, err := httpapi.PathID(c, "id")
	if err != nil {
		httpapi.RespondError(c, h.log, "update client", err)
		return
	}

	var req clientReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.RespondError(c, h.log, "update client", err)
		return
	}

	client, err := h.svc.Update(c.Request.Context(), id, service.UpdateClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		httpapi.RespondError(c, h.log, "update client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := httpapi.PathID(c, "id")
	if err != nil {
		httpapi.RespondError(c, h.log, "delete client", err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpapi.RespondError(c, h.log, "delete client", err)
		return
	}
	c.JSON(http.StatusOK, messageResp{Message: "Client deleted successfully"})
}
