package upstream

import (
	"context"
	"strconv"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// ReportGateway wraps the backend's /reportes endpoints.
type ReportGateway struct {
	c *Client
}

func NewReportGateway(c *Client) *ReportGateway {
	return &ReportGateway{c: c}
}

type activeReport struct {
	Patients []domain.ActivePatientReport `json:"pacientes"`
}

type inactiveReport struct {
	Patients []domain.InactivePatientReport `json:"pacientes"`
}

func (g *ReportGateway) ActivePatients(ctx context.Context) ([]domain.ActivePatientReport, error) {
	data, err := getJSON[activeReport](ctx, g.c, "/reportes/pacientes-activos", nil)
	if err != nil {
		return nil, err
	}
	return data.Patients, nil
}

// InactivePatients lists patients without a visit in the last days days.
func (g *ReportGateway) InactivePatients(ctx context.Context, days int) ([]domain.InactivePatientReport, error) {
	data, err := getJSON[inactiveReport](ctx, g.c, "/reportes/pacientes-inactivos", map[string]string{
		"dias": strconv.Itoa(days),
	})
	if err != nil {
		return nil, err
	}
	return data.Patients, nil
}
