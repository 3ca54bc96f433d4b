package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/proxiglass/planning/internal/scheduling"
)

type calendarService interface {
	YearOverview(ctx context.Context, year int) (scheduling.YearSummary, []scheduling.MonthGrid, error)
	DayBoard(ctx context.Context, date string, resourceIDs []string) (map[string][]scheduling.Appointment, error)
}

type resourceDirectory interface {
	IDs(ctx context.Context) ([]string, error)
}

type CalendarHandler struct {
	service   calendarService
	directory resourceDirectory
	responder responder
}

func NewCalendarHandler(service calendarService, directory resourceDirectory, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{service: service, directory: directory, responder: newResponder(logger)}
}

func (h *CalendarHandler) Year(w http.ResponseWriter, r *http.Request, rawYear string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1 || year > 9999 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidYear)
		return
	}

	summary, grids, err := h.service.YearOverview(r.Context(), year)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toYearOverviewDTO(summary, grids))
}

func (h *CalendarHandler) Day(w http.ResponseWriter, r *http.Request, date string) {
	if h == nil || h.service == nil || h.directory == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if _, err := scheduling.ParseDate(date); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	resourceIDs, err := h.directory.IDs(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	board, err := h.service.DayBoard(r.Context(), date, resourceIDs)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	byResource := make(map[string][]appointmentDTO, len(board))
	for resourceID, bucket := range board {
		byResource[resourceID] = toAppointmentDTOs(bucket)
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dayBoardResponse{
		Date:        date,
		ResourceIDs: resourceIDs,
		ByResource:  byResource,
	})
}

type yearOverviewResponse struct {
	Year    int                    `json:"year"`
	ByDate  map[string]int         `json:"by_date"`
	ByMonth map[string]monthTotals `json:"by_month"`
	Months  []monthGridDTO         `json:"months"`
}

type monthTotals struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type monthGridDTO struct {
	Key           string `json:"key"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	LeadingBlanks int    `json:"leading_blanks"`
	Days          int    `json:"days"`
}

type dayBoardResponse struct {
	Date        string                      `json:"date"`
	ResourceIDs []string                    `json:"resource_ids"`
	ByResource  map[string][]appointmentDTO `json:"by_resource"`
}

func toYearOverviewDTO(summary scheduling.YearSummary, grids []scheduling.MonthGrid) yearOverviewResponse {
	byMonth := make(map[string]monthTotals, len(summary.ByMonth))
	for key, totals := range summary.ByMonth {
		byMonth[key] = monthTotals{Count: totals.Count, Revenue: totals.Revenue}
	}

	months := make([]monthGridDTO, 0, len(grids))
	for _, grid := range grids {
		months = append(months, monthGridDTO{
			Key:           grid.Key(),
			Year:          grid.Year,
			Month:         int(grid.Month),
			LeadingBlanks: grid.LeadingBlanks,
			Days:          grid.Days,
		})
	}

	return yearOverviewResponse{
		Year:    summary.Year,
		ByDate:  summary.ByDate,
		ByMonth: byMonth,
		Months:  months,
	}
}
