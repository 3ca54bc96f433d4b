package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/proxiglass/planning/internal/application"
	"github.com/proxiglass/planning/internal/scheduling"
)

type plannerService interface {
	Create(ctx context.Context, input application.AppointmentInput) (scheduling.Appointment, error)
	Update(ctx context.Context, id string, input application.AppointmentInput) (scheduling.Appointment, error)
	Delete(ctx context.Context, id string) error
	Reschedule(ctx context.Context, params application.RescheduleParams) (scheduling.Appointment, error)
	List(ctx context.Context, filter scheduling.Filter) ([]scheduling.Appointment, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportICS(ctx context.Context, id string) (string, error)
	Seed(ctx context.Context) ([]scheduling.Appointment, error)
	Reset(ctx context.Context) error
}

type AppointmentHandler struct {
	service   plannerService
	responder responder
}

func NewAppointmentHandler(service plannerService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: service, responder: newResponder(logger)}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	appt, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, appointmentResponse{Appointment: toAppointmentDTO(appt)})
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	appt, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appt)})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	appt, err := h.service.Reschedule(r.Context(), application.RescheduleParams{
		AppointmentID: id,
		ResourceID:    strings.TrimSpace(req.ResourceID),
		OffsetMinutes: req.OffsetMinutes,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appt)})
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := scheduling.Filter{
		Date:   strings.TrimSpace(query.Get("date")),
		Status: parseStatusFilter(query.Get("status")),
		Search: query.Get("q"),
	}

	appointments, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	grouped, dates := scheduling.GroupByDate(appointments)
	byDate := make(map[string][]appointmentDTO, len(grouped))
	for date, bucket := range grouped {
		byDate[date] = toAppointmentDTOs(bucket)
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAppointmentsResponse{
		Appointments: toAppointmentDTOs(appointments),
		Dates:        dates,
		ByDate:       byDate,
	})
}

func (h *AppointmentHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), &buf); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="proxiglass-planning.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.responder.loggerFor(r.Context()).ErrorContext(r.Context(), "failed to write csv export", "error", err)
	}
}

func (h *AppointmentHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	block, err := h.service.ExportICS(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, block); err != nil {
		h.responder.loggerFor(r.Context()).ErrorContext(r.Context(), "failed to write ics export", "error", err)
	}
}

func (h *AppointmentHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	created, err := h.service.Seed(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, listAppointmentsResponse{
		Appointments: toAppointmentDTOs(created),
	})
}

func (h *AppointmentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.service.Reset(r.Context()); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func parseStatusFilter(value string) scheduling.Status {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == "all" {
		return scheduling.StatusAny
	}
	return scheduling.Status(value)
}

type appointmentRequest struct {
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	ResourceID   string `json:"resource_id"`
	Service      string `json:"service"`
	Status       string `json:"status"`
	Title        string `json:"title"`
	Client       string `json:"client"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	LocationType string `json:"location_type"`
	Plate        string `json:"plate"`
	Insurer      string `json:"insurer"`
	ClaimNumber  string `json:"claim_number"`
	Price        string `json:"price"`
	Notes        string `json:"notes"`
}

func (r appointmentRequest) toInput() application.AppointmentInput {
	return application.AppointmentInput{
		Date:         strings.TrimSpace(r.Date),
		StartTime:    strings.TrimSpace(r.StartTime),
		EndTime:      strings.TrimSpace(r.EndTime),
		ResourceID:   strings.TrimSpace(r.ResourceID),
		Service:      r.Service,
		Status:       strings.TrimSpace(r.Status),
		Title:        r.Title,
		Client:       r.Client,
		Phone:        r.Phone,
		Address:      r.Address,
		LocationType: r.LocationType,
		Plate:        r.Plate,
		Insurer:      r.Insurer,
		ClaimNumber:  r.ClaimNumber,
		Price:        r.Price,
		Notes:        r.Notes,
	}
}

type rescheduleRequest struct {
	ResourceID    string  `json:"resource_id"`
	OffsetMinutes float64 `json:"offset_minutes"`
}

type appointmentResponse struct {
	Appointment appointmentDTO `json:"appointment"`
}

type listAppointmentsResponse struct {
	Appointments []appointmentDTO            `json:"appointments"`
	Dates        []string                    `json:"dates,omitempty"`
	ByDate       map[string][]appointmentDTO `json:"by_date,omitempty"`
}

type appointmentDTO struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	ResourceID   string `json:"resource_id"`
	Service      string `json:"service"`
	Status       string `json:"status"`
	Title        string `json:"title"`
	Client       string `json:"client"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	LocationType string `json:"location_type"`
	Plate        string `json:"plate"`
	Insurer      string `json:"insurer"`
	ClaimNumber  string `json:"claim_number"`
	Price        string `json:"price"`
	Notes        string `json:"notes"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toAppointmentDTO(appt scheduling.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:           appt.ID,
		Date:         appt.Date,
		StartTime:    appt.StartTime,
		EndTime:      appt.EndTime,
		ResourceID:   appt.ResourceID,
		Service:      appt.Service,
		Status:       string(appt.Status),
		Title:        appt.Title,
		Client:       appt.Client,
		Phone:        appt.Phone,
		Address:      appt.Address,
		LocationType: appt.LocationType,
		Plate:        appt.Plate,
		Insurer:      appt.Insurer,
		ClaimNumber:  appt.ClaimNumber,
		Price:        appt.Price,
		Notes:        appt.Notes,
		CreatedAt:    appt.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    appt.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// toAppointmentDTOs always returns a non-nil slice so empty collections
// serialize as [] rather than null.
func toAppointmentDTOs(appointments []scheduling.Appointment) []appointmentDTO {
	out := make([]appointmentDTO, 0, len(appointments))
	for _, appt := range appointments {
		out = append(out, toAppointmentDTO(appt))
	}
	return out
}
