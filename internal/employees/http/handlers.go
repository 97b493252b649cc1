package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/shiftboard/shiftboard-backend/internal/api/http"
	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// EmployeeLister is what the handler needs from the service layer.
type EmployeeLister interface {
	List(ctx context.Context) ([]domain.Employee, error)
}

// Handler bundles the dependencies for employee HTTP endpoints.
type Handler struct {
	svc EmployeeLister
	log *logrus.Entry
}

func New(svc EmployeeLister, log *logrus.Entry) *Handler {
	return &Handler{svc: svc, log: log.WithField("component", "employees")}
}

// Register attaches employee routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, h.log, "list employees", err)
		return
	}
	c.JSON(http.StatusOK, items)
}
