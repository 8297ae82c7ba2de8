package upstream

import (
	"context"
	"strconv"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// PatientGateway wraps the backend's /pacientes endpoints.
type PatientGateway struct {
	c *Client
}

func NewPatientGateway(c *Client) *PatientGateway {
	return &PatientGateway{c: c}
}

func (g *PatientGateway) List(ctx context.Context, page, pageSize int, search string) (*domain.PatientPage, error) {
	query := map[string]string{
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	}
	if search != "" {
		query["q"] = search
	}
	return getJSON[domain.PatientPage](ctx, g.c, "/pacientes", query)
}

// Get returns the full record: patient, histories and exams.
func (g *PatientGateway) Get(ctx context.Context, id int64) (*domain.PatientRecord, error) {
	return getJSON[domain.PatientRecord](ctx, g.c, "/pacientes/"+strconv.FormatInt(id, 10), nil)
}

func (g *PatientGateway) Create(ctx context.Context, in domain.CreatePatientInput) (*domain.Patient, error) {
	return postJSON[domain.Patient](ctx, g.c, "/pacientes", in)
}

func (g *PatientGateway) Update(ctx context.Context, id int64, in domain.CreatePatientInput) (*domain.Patient, error) {
	return putJSON[domain.Patient](ctx, g.c, "/pacientes/"+strconv.FormatInt(id, 10), in)
}

func (g *PatientGateway) Delete(ctx context.Context, id int64) error {
	return deleteJSON(ctx, g.c, "/pacientes/"+strconv.FormatInt(id, 10))
}

// CompareExams fetches the backend's diff between the patient's two most
// recent visual exams.
func (g *PatientGateway) CompareExams(ctx context.Context, id int64) (*domain.ExamComparison, error) {
	return getJSON[domain.ExamComparison](ctx, g.c, "/pacientes/"+strconv.FormatInt(id, 10)+"/comparacion", nil)
}
