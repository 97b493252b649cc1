package http

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/shiftboard/shiftboard-backend/internal/clients/service"
	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// ClientService is what the handlers need from the service layer.
type ClientService interface {
	Create(ctx context.Context, in service.CreateClientInput) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, id int64, in service.UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

// Handler bundles the dependencies for client HTTP endpoints.
type Handler struct {
	svc ClientService
	log *logrus.Entry
}

func New(svc ClientService, log *logrus.Entry) *Handler {
	return &Handler{svc: svc, log: log.WithField("component", "clients")}
}

type clientReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type messageResp struct {
	Message string `json:"message"`
}
