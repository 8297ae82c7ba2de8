package domain

import "time"

// Appointment lifecycle states, as stored by the backend.
const (
	AppointmentPending   = "pendiente"
	AppointmentConfirmed = "confirmado"
	AppointmentCancelled = "cancelado"
	AppointmentCompleted = "completado"
	AppointmentNoShow    = "no_asistio"
)

// ValidAppointmentStatus reports whether s is a known appointment state.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled,
		AppointmentCompleted, AppointmentNoShow:
		return true
	}
	return false
}

// Appointment is a scheduled visit. EndTime is computed by the backend from
// the start time and duration.
type Appointment struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	PatientID       int64     `json:"paciente_id"`
	ProfessionalID  int64     `json:"profesional_user_id"`
	ServiceType     string    `json:"tipo_servicio"`
	StartTime       time.Time `json:"fecha_hora"`
	DurationMinutes int       `json:"duracion_minutos"`
	EndTime         string    `json:"hora_fin"`
	Status          string    `json:"estado"`
	Notes           string    `json:"observaciones"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AppointmentDetail joins an appointment with the names the agenda view
// renders.
type AppointmentDetail struct {
	Appointment
	PatientFirstName      string `json:"paciente_nombre"`
	PatientLastName       string `json:"paciente_apellido"`
	PatientEmail          string `json:"paciente_email"`
	ProfessionalFirstName string `json:"profesional_nombre"`
	ProfessionalLastName  string `json:"profesional_apellido"`
	ProfessionalEmail     string `json:"profesional_email"`
}

// CreateAppointmentInput is the payload for booking a visit.
type CreateAppointmentInput struct {
	PatientID       int64  `json:"paciente_id"`
	ProfessionalID  int64  `json:"profesional_user_id"`
	ServiceType     string `json:"tipo_servicio"`
	StartTime       string `json:"fecha_hora"`
	DurationMinutes int    `json:"duracion_minutos"`
	Notes           string `json:"observaciones,omitempty"`
}

// AvailabilityRequest asks the backend whether a professional is free for a
// slot. AppointmentID excludes an existing appointment when rescheduling.
type AvailabilityRequest struct {
	ProfessionalID  int64  `json:"profesional_user_id"`
	StartTime       string `json:"fecha_hora"`
	DurationMinutes int    `json:"duracion_minutos"`
	AppointmentID   *int64 `json:"turno_id,omitempty"`
}

// Availability is the backend's verdict on an AvailabilityRequest.
type Availability struct {
	Available bool          `json:"disponible"`
	Message   string        `json:"mensaje"`
	Conflicts []Appointment `json:"turnos_conflicto,omitempty"`
}
