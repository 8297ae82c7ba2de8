package domain

// ActivePatientReport is one row of the active-patients report: patients
// with recent appointments and how many they have had.
type ActivePatientReport struct {
	PatientID        int64  `json:"paciente_id"`
	FirstName        string `json:"nombre"`
	LastName         string `json:"apellido"`
	LastAppointment  string `json:"ultimo_turno"`
	AppointmentCount int    `json:"cantidad_turnos"`
}

// InactivePatientReport is one row of the inactive-patients report:
// patients who have not visited for a while. LastAppointment is nil for
// patients who never booked.
type InactivePatientReport struct {
	PatientID       int64   `json:"paciente_id"`
	FirstName       string  `json:"nombre"`
	LastName        string  `json:"apellido"`
	LastAppointment *string `json:"ultimo_turno"`
	DaysSinceVisit  int     `json:"dias_sin_turno"`
}
