package domain

import "time"

// Patient is a clinic patient record. Dates of birth and exam dates travel
// as plain ISO dates (no time component), so they stay strings here.
type Patient struct {
	ID          int64      `json:"id"`
	ClientID    int64      `json:"client_id"`
	FirstName   string     `json:"nombre"`
	LastName    string     `json:"apellido"`
	DNI         string     `json:"dni"`
	Email       string     `json:"email"`
	Phone       string     `json:"telefono"`
	BirthDate   string     `json:"fecha_nacimiento"`
	Age         int        `json:"edad"`
	Address     string     `json:"direccion"`
	City        string     `json:"ciudad"`
	Province    string     `json:"provincia"`
	PostalCode  string     `json:"codigo_postal"`
	Insurance   string     `json:"obra_social"`
	InsuranceID string     `json:"numero_afiliado"`
	Notes       string     `json:"observaciones"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

// MedicalHistory holds a patient's general medical background.
type MedicalHistory struct {
	ID                int64  `json:"id"`
	PatientID         int64  `json:"paciente_id"`
	Diabetes          bool   `json:"diabetes"`
	Hypertension      bool   `json:"hipertension"`
	Allergies         string `json:"alergias"`
	PreviousSurgeries string `json:"cirugias_previas"`
	CurrentMedication string `json:"medicacion_actual"`
	OtherConditions   string `json:"otras_condiciones"`
}

// VisualHistory holds a patient's contact-lens and visual background.
type VisualHistory struct {
	ID                    int64  `json:"id"`
	PatientID             int64  `json:"paciente_id"`
	WearsContactLenses    bool   `json:"usa_lentes_contacto"`
	ContactLensBrand      string `json:"marca_lentes_contacto"`
	PreviousComplications string `json:"complicaciones_previas"`
	Notes                 string `json:"observaciones"`
}

// VisualExam is a single refraction exam. OD is the right eye, OI the left.
type VisualExam struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"paciente_id"`
	ExamDate  string `json:"fecha_examen"`

	ODSphere   float64 `json:"od_esfera"`
	ODCylinder float64 `json:"od_cilindro"`
	ODAxis     int     `json:"od_eje"`
	ODAdd      float64 `json:"od_add"`
	ODAcuity   string  `json:"od_agudeza_visual"`

	OISphere   float64 `json:"oi_esfera"`
	OICylinder float64 `json:"oi_cilindro"`
	OIAxis     int     `json:"oi_eje"`
	OIAdd      float64 `json:"oi_add"`
	OIAcuity   string  `json:"oi_agudeza_visual"`

	Notes string `json:"observaciones"`
}

// ExamComparison is the backend's diff between a patient's two most recent
// exams. Alert carries a message when any diopter change exceeds the
// clinical threshold.
type ExamComparison struct {
	SignificantChange bool      `json:"cambios_significativos"`
	Changes           ExamDiffs `json:"cambios"`
	Alert             string    `json:"alerta"`
}

type ExamDiffs struct {
	ODSphereDiff   float64 `json:"od_esfera_diff"`
	ODCylinderDiff float64 `json:"od_cilindro_diff"`
	OISphereDiff   float64 `json:"oi_esfera_diff"`
	OICylinderDiff float64 `json:"oi_cilindro_diff"`
}

// PatientRecord is the full view of a patient: the base record plus its
// optional histories and exams.
type PatientRecord struct {
	Patient        Patient         `json:"paciente"`
	MedicalHistory *MedicalHistory `json:"antecedentes_medicos,omitempty"`
	VisualHistory  *VisualHistory  `json:"antecedentes_visuales,omitempty"`
	VisualExams    []VisualExam    `json:"examenes_visuales,omitempty"`
}

// PatientPage is one page of the patient listing.
type PatientPage struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Patients []Patient `json:"pacientes"`
}

// CreatePatientInput is the payload for creating or updating a patient.
type CreatePatientInput struct {
	FirstName   string `json:"nombre"`
	LastName    string `json:"apellido"`
	DNI         string `json:"dni"`
	Email       string `json:"email"`
	Phone       string `json:"telefono"`
	BirthDate   string `json:"fecha_nacimiento"`
	Address     string `json:"direccion"`
	City        string `json:"ciudad"`
	Province    string `json:"provincia"`
	PostalCode  string `json:"codigo_postal"`
	Insurance   string `json:"obra_social"`
	InsuranceID string `json:"numero_afiliado"`
	Notes       string `json:"observaciones,omitempty"`
}
