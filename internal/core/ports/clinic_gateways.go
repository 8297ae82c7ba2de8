package ports

import (
	"context"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// PatientGateway wraps the backend's patient endpoints.
type PatientGateway interface {
	List(ctx context.Context, page, pageSize int, search string) (*domain.PatientPage, error)
	Get(ctx context.Context, id int64) (*domain.PatientRecord, error)
	Create(ctx context.Context, in domain.CreatePatientInput) (*domain.Patient, error)
	Update(ctx context.Context, id int64, in domain.CreatePatientInput) (*domain.Patient, error)
	Delete(ctx context.Context, id int64) error
	CompareExams(ctx context.Context, id int64) (*domain.ExamComparison, error)
}

// AppointmentGateway wraps the backend's appointment endpoints.
type AppointmentGateway interface {
	List(ctx context.Context, from, to string) ([]domain.AppointmentDetail, error)
	Create(ctx context.Context, in domain.CreateAppointmentInput) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Appointment, error)
	CheckAvailability(ctx context.Context, in domain.AvailabilityRequest) (*domain.Availability, error)
}

// ReportGateway wraps the backend's reporting endpoints.
type ReportGateway interface {
	ActivePatients(ctx context.Context) ([]domain.ActivePatientReport, error)
	InactivePatients(ctx context.Context, days int) ([]domain.InactivePatientReport, error)
}

// UserGateway wraps the backend's tenant-user endpoints.
type UserGateway interface {
	List(ctx context.Context) ([]domain.User, error)
}
