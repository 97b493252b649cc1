package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
	"github.com/shiftboard/shiftboard-backend/internal/projects/service"
)

// ProjectService is what the handlers need from the service layer.
type ProjectService interface {
	Create(ctx context.Context, in service.CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, id int64, in service.UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc ProjectService
	log *logrus.Entry
}

func New(svc ProjectService, log *logrus.Entry) *Handler {
	return &Handler{svc: svc, log: log.WithField("component", "projects")}
}

// idText is an identifier sent either as a JSON string ("12") or a JSON
// number (12). It keeps the raw text; parsing happens in the service.
type idText string

func (t *idText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = idText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("clientId must be a string or a number")
	}
	*t = idText(n.String())
	return nil
}

type createReq struct {
	Name     string  `json:"name"`
	ClientID idText  `json:"clientId"`
	Address  string  `json:"address"`
	Location string  `json:"location"`
	Budget   float64 `json:"budget"`
	Manager  string  `json:"manager"`
}

type updateReq struct {
	Name     *string  `json:"name"`
	ClientID *idText  `json:"clientId"`
	Address  *string  `json:"address"`
	Location *string  `json:"location"`
	Budget   *float64 `json:"budget"`
	Manager  *string  `json:"manager"`
}

func (r updateReq) input() service.UpdateProjectInput {
	in := service.UpdateProjectInput{
		Name:     r.Name,
		Address:  r.Address,
		Location: r.Location,
		Budget:   r.Budget,
		Manager:  r.Manager,
	}
	if r.ClientID != nil {
		s := string(*r.ClientID)
		in.ClientID = &s
	}
	return in
}

type messageResp struct {
	Message string `json:"message"`
}
