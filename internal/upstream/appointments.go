package upstream

import (
	"context"
	"strconv"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// AppointmentGateway wraps the backend's /turnos endpoints.
type AppointmentGateway struct {
	c *Client
}

func NewAppointmentGateway(c *Client) *AppointmentGateway {
	return &AppointmentGateway{c: c}
}

type appointmentList struct {
	Appointments []domain.AppointmentDetail `json:"turnos"`
}

// List returns appointments in the inclusive [from, to] date range, joined
// with patient and professional names.
func (g *AppointmentGateway) List(ctx context.Context, from, to string) ([]domain.AppointmentDetail, error) {
	query := map[string]string{}
	if from != "" {
		query["desde"] = from
	}
	if to != "" {
		query["hasta"] = to
	}
	data, err := getJSON[appointmentList](ctx, g.c, "/turnos", query)
	if err != nil {
		return nil, err
	}
	return data.Appointments, nil
}

func (g *AppointmentGateway) Create(ctx context.Context, in domain.CreateAppointmentInput) (*domain.Appointment, error) {
	return postJSON[domain.Appointment](ctx, g.c, "/turnos", in)
}

type statusUpdate struct {
	Status string `json:"estado"`
}

func (g *AppointmentGateway) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Appointment, error) {
	return patchJSON[domain.Appointment](ctx, g.c, "/turnos/"+strconv.FormatInt(id, 10)+"/estado", statusUpdate{Status: status})
}

// CheckAvailability asks whether the professional is free for the slot.
// The verdict, including any conflicting appointments, passes through
// unchanged.
func (g *AppointmentGateway) CheckAvailability(ctx context.Context, in domain.AvailabilityRequest) (*domain.Availability, error) {
	return postJSON[domain.Availability](ctx, g.c, "/turnos/disponibilidad", in)
}
