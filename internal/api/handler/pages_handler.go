package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/MezeLaw/iris-ui/internal/api/middleware"
	"github.com/MezeLaw/iris-ui/internal/api/render"
	"github.com/MezeLaw/iris-ui/internal/core/domain"
	"github.com/MezeLaw/iris-ui/internal/core/ports"
)

const (
	defaultPageSize     = 20
	defaultInactiveDays = 180
	agendaWindowDays    = 7
)

// PageHandler renders the clinic views. Each handler is a thin pass
// through a gateway; backend errors propagate to the central error handler
// except where a view has a local rendering for them.
type PageHandler struct {
	patients     ports.PatientGateway
	appointments ports.AppointmentGateway
	reports      ports.ReportGateway
	users        ports.UserGateway
	log          zerolog.Logger
}

func NewPageHandler(
	patients ports.PatientGateway,
	appointments ports.AppointmentGateway,
	reports ports.ReportGateway,
	users ports.UserGateway,
	log zerolog.Logger,
) *PageHandler {
	return &PageHandler{
		patients:     patients,
		appointments: appointments,
		reports:      reports,
		users:        users,
		log:          log,
	}
}

func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard.html", render.Page{Session: middleware.CurrentSession(c)})
}

func (h *PageHandler) Patients(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	search := c.QueryParam("q")

	result, err := h.patients.List(c.Request().Context(), page, defaultPageSize, search)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "patients.html", render.Page{
		Session: middleware.CurrentSession(c),
		Data: struct {
			Page   *domain.PatientPage
			Search string
		}{result, search},
	})
}

func (h *PageHandler) PatientDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	rec, err := h.patients.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	// The comparison needs at least two exams; a 404 here just means the
	// section is omitted.
	var cmp *domain.ExamComparison
	if len(rec.VisualExams) >= 2 {
		cmp, err = h.patients.CompareExams(c.Request().Context(), id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}

	return c.Render(http.StatusOK, "patient_detail.html", render.Page{
		Session: middleware.CurrentSession(c),
		Data: struct {
			Record     *domain.PatientRecord
			Comparison *domain.ExamComparison
		}{rec, cmp},
	})
}

type patientForm struct {
	FirstName   string `form:"first_name" validate:"required"`
	LastName    string `form:"last_name" validate:"required"`
	DNI         string `form:"dni" validate:"required"`
	Email       string `form:"email" validate:"omitempty,email"`
	Phone       string `form:"phone"`
	BirthDate   string `form:"birth_date" validate:"required,datetime=2006-01-02"`
	Address     string `form:"address"`
	City        string `form:"city"`
	Province    string `form:"province"`
	PostalCode  string `form:"postal_code"`
	Insurance   string `form:"insurance"`
	InsuranceID string `form:"insurance_id"`
	Notes       string `form:"notes"`
}

func (f patientForm) input() domain.CreatePatientInput {
	return domain.CreatePatientInput{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		DNI:         f.DNI,
		Email:       f.Email,
		Phone:       f.Phone,
		BirthDate:   f.BirthDate,
		Address:     f.Address,
		City:        f.City,
		Province:    f.Province,
		PostalCode:  f.PostalCode,
		Insurance:   f.Insurance,
		InsuranceID: f.InsuranceID,
		Notes:       f.Notes,
	}
}

func patientFormOf(p domain.Patient) patientForm {
	return patientForm{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DNI:         p.DNI,
		Email:       p.Email,
		Phone:       p.Phone,
		BirthDate:   p.BirthDate,
		Address:     p.Address,
		City:        p.City,
		Province:    p.Province,
		PostalCode:  p.PostalCode,
		Insurance:   p.Insurance,
		InsuranceID: p.InsuranceID,
		Notes:       p.Notes,
	}
}

// patientEditPage is the single shape patient_edit.html renders.
type patientEditPage struct {
	ID   int64
	Form patientForm
}

func (h *PageHandler) PatientNew(c echo.Context) error {
	return c.Render(http.StatusOK, "patient_new.html", render.Page{Session: middleware.CurrentSession(c)})
}

func (h *PageHandler) PatientCreate(c echo.Context) error {
	var form patientForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "patient_new.html", render.Page{
			Session: middleware.CurrentSession(c),
			Banner:  "invalid form submission",
		})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "patient_new.html", render.Page{
			Session: middleware.CurrentSession(c),
			Fields:  fieldErrors(err),
			Data:    form,
		})
	}

	created, err := h.patients.Create(c.Request().Context(), form.input())
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return c.Render(apiErr.Status, "patient_new.html", render.Page{
				Session: middleware.CurrentSession(c),
				Banner:  apiErr.Error(),
				Data:    form,
			})
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/patients/"+strconv.FormatInt(created.ID, 10))
}

// PatientEdit renders the edit form prefilled with the stored record.
func (h *PageHandler) PatientEdit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	rec, err := h.patients.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "patient_edit.html", render.Page{
		Session: middleware.CurrentSession(c),
		Data:    patientEditPage{ID: id, Form: patientFormOf(rec.Patient)},
	})
}

func (h *PageHandler) PatientUpdate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	var form patientForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "patient_edit.html", render.Page{
			Session: middleware.CurrentSession(c),
			Banner:  "invalid form submission",
			Data:    patientEditPage{ID: id},
		})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "patient_edit.html", render.Page{
			Session: middleware.CurrentSession(c),
			Fields:  fieldErrors(err),
			Data:    patientEditPage{ID: id, Form: form},
		})
	}

	if _, err := h.patients.Update(c.Request().Context(), id, form.input()); err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return c.Render(apiErr.Status, "patient_edit.html", render.Page{
				Session: middleware.CurrentSession(c),
				Banner:  apiErr.Error(),
				Data:    patientEditPage{ID: id, Form: form},
			})
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/patients/"+strconv.FormatInt(id, 10))
}

// PatientDelete removes the record; the backend soft-deletes it.
func (h *PageHandler) PatientDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	if err := h.patients.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/patients")
}

func (h *PageHandler) Appointments(c echo.Context) error {
	from := c.QueryParam("desde")
	to := c.QueryParam("hasta")
	if from == "" {
		from = time.Now().Format("2006-01-02")
	}
	if to == "" {
		to = time.Now().AddDate(0, 0, agendaWindowDays).Format("2006-01-02")
	}

	appts, err := h.appointments.List(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "appointments.html", render.Page{
		Session: middleware.CurrentSession(c),
		Data: struct {
			Appointments []domain.AppointmentDetail
			From, To     string
		}{appts, from, to},
	})
}

type appointmentForm struct {
	PatientID      int64  `form:"patient_id" validate:"required,gt=0"`
	ProfessionalID int64  `form:"professional_id" validate:"required,gt=0"`
	ServiceType    string `form:"service_type" validate:"required"`
	StartTime      string `form:"start_time" validate:"required"`
	Duration       int    `form:"duration" validate:"required,gt=0"`
	Notes          string `form:"notes"`
}

// appointmentPage is the single shape appointment_new.html renders, so the
// template never has to probe for optional fields.
type appointmentPage struct {
	Form      appointmentForm
	Conflicts []domain.Appointment
}

func (h *PageHandler) AppointmentNew(c echo.Context) error {
	return c.Render(http.StatusOK, "appointment_new.html", render.Page{
		Session: middleware.CurrentSession(c),
		Data:    appointmentPage{},
	})
}

// AppointmentCreate books a visit. Availability is checked first; an
// occupied slot re-renders the form with the backend's verdict and any
// conflicting appointments. No business rule beyond that lives here.
func (h *PageHandler) AppointmentCreate(c echo.Context) error {
	var form appointmentForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "appointment_new.html", render.Page{
			Session: middleware.CurrentSession(c),
			Banner:  "invalid form submission",
			Data:    appointmentPage{},
		})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "appointment_new.html", render.Page{
			Session: middleware.CurrentSession(c),
			Fields:  fieldErrors(err),
			Data:    appointmentPage{Form: form},
		})
	}

	avail, err := h.appointments.CheckAvailability(c.Request().Context(), domain.AvailabilityRequest{
		ProfessionalID:  form.ProfessionalID,
		StartTime:       form.StartTime,
		DurationMinutes: form.Duration,
	})
	if err != nil {
		return err
	}
	if !avail.Available {
		return c.Render(http.StatusConflict, "appointment_new.html", render.Page{
			Session: middleware.CurrentSession(c),
			Banner:  avail.Message,
			Data:    appointmentPage{Form: form, Conflicts: avail.Conflicts},
		})
	}

	if _, err := h.appointments.Create(c.Request().Context(), domain.CreateAppointmentInput{
		PatientID:       form.PatientID,
		ProfessionalID:  form.ProfessionalID,
		ServiceType:     form.ServiceType,
		StartTime:       form.StartTime,
		DurationMinutes: form.Duration,
		Notes:           form.Notes,
	}); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/appointments")
}

func (h *PageHandler) AppointmentStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	status := c.FormValue("estado")
	if !domain.ValidAppointmentStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment status")
	}

	if _, err := h.appointments.UpdateStatus(c.Request().Context(), id, status); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/appointments")
}

func (h *PageHandler) Reports(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("dias"))
	if days <= 0 {
		days = defaultInactiveDays
	}

	active, err := h.reports.ActivePatients(c.Request().Context())
	if err != nil {
		return err
	}
	inactive, err := h.reports.InactivePatients(c.Request().Context(), days)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "reports.html", render.Page{
		Session: middleware.CurrentSession(c),
		Data: struct {
			Active   []domain.ActivePatientReport
			Inactive []domain.InactivePatientReport
			Days     int
		}{active, inactive, days},
	})
}

func (h *PageHandler) Users(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "users.html", render.Page{
		Session: middleware.CurrentSession(c),
		Data:    struct{ Users []domain.User }{users},
	})
}
