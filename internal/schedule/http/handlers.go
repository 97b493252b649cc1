package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/shiftboard/shiftboard-backend/internal/api/http"
	"github.com/shiftboard/shiftboard-backend/internal/domain"
	"github.com/shiftboard/shiftboard-backend/internal/schedule"
)

type Handler struct {
	log *logrus.Entry
}

func New(log *logrus.Entry) *Handler {
	return &Handler{log: log.WithField("component", "schedule")}
}

// Register attaches schedule routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/demo", h.demo)
}

func (h *Handler) demo(c *gin.Context) {
	ps, err := schedule.Demo()
	if err != nil {
		httpapi.RespondError(c, h.log, "demo schedule", domain.Store("demo schedule", err))
		return
	}
	c.JSON(http.StatusOK, ps)
}
