package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/proxiglass/planning/internal/application"
)

var (
	errBadRequestBody       = errors.New("Le format de la requête est invalide.")
	errInvalidAppointmentID = errors.New("L'identifiant du rendez-vous est invalide.")
	errInvalidResourceID    = errors.New("L'identifiant du véhicule est invalide.")
	errInvalidYear          = errors.New("L'année demandée est invalide.")
	errInvalidDate          = errors.New("La date demandée est invalide.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "La ressource demandée est introuvable."})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "Un enregistrement avec cet identifiant existe déjà."})
	default:
		var cErr *application.ConflictError
		if errors.As(err, &cErr) {
			r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
				ErrorCode: "SLOT_CONFLICT",
				Message:   "Conflit : un rendez-vous existe déjà sur ce créneau pour ce véhicule.",
				Conflict: &conflictDTO{
					WithID:     cErr.WithID,
					ResourceID: cErr.ResourceID,
					Date:       cErr.Date,
				},
			})
			return
		}

		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Les informations saisies sont invalides.",
				Errors:  localizeValidationErrors(vErr),
			})
			return
		}

		r.loggerFor(ctx).ErrorContext(ctx, "unexpected service error", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Une erreur interne est survenue."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "La requête est incorrecte."
	case http.StatusNotFound:
		return "La ressource demandée est introuvable."
	case http.StatusConflict:
		return "La requête entre en conflit avec l'état actuel."
	case http.StatusUnprocessableEntity:
		return "Les informations saisies sont invalides."
	default:
		return "Une erreur interne est survenue."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "client is required":
		return "Le client est obligatoire."
	case "date is required":
		return "La date est obligatoire."
	case "date must be YYYY-MM-DD":
		return "La date doit être au format AAAA-MM-JJ."
	case "start time must be HH:MM":
		return "L'heure de début doit être au format HH:MM."
	case "end time must be HH:MM":
		return "L'heure de fin doit être au format HH:MM."
	case "start must be before end":
		return "L'heure de fin doit être postérieure à l'heure de début."
	case "derived end crosses midnight":
		return "Le service dépasserait minuit ; indiquez une heure de fin explicite."
	case "end time could not be derived":
		return "L'heure de fin n'a pas pu être calculée."
	case "unknown status":
		return "Le statut est inconnu."
	case "name is required":
		return "Le nom est obligatoire."
	default:
		return message
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Conflict  *conflictDTO      `json:"conflict,omitempty"`
}

type conflictDTO struct {
	WithID     string `json:"with_id"`
	ResourceID string `json:"resource_id"`
	Date       string `json:"date"`
}
