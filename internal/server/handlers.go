package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/server/middleware"
)

// maxBodyBytes bounds every JSON request body. Scenes are the largest payload.
const maxBodyBytes = 5 << 20

// validatable is implemented by every request type in internal/types.
type validatable interface {
	Validate() error
}

// requireCaller resolves the authenticated user and makes sure a profile row
// exists for them. It writes the error response itself when it returns false.
func (s *Server) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	if err := s.profiles.EnsureExists(r.Context(), userID, middleware.GetEmail(r)); err != nil {
		s.handleError(w, r, err)
		return "", false
	}
	return userID, true
}

// decodeJSON reads the body into dst and runs its validation, if any.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	return s.decodeBody(w, r, dst, false)
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func (s *Server) decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	return s.decodeBody(w, r, dst, true)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		case errors.Is(err, io.EOF) && optional:
			return true
		case errors.Is(err, io.EOF):
			s.errorResponse(w, http.StatusBadRequest, "Request body is required")
		default:
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		return false
	}
	if v, ok := dst.(validatable); ok {
		if err := v.Validate(); err != nil {
			s.handleError(w, r, err)
			return false
		}
	}
	return true
}

// pathUUID parses a UUID path value. Malformed ids answer 404 like missing ones.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.handleError(w, r, &ErrNotFound{Resource: resource})
		return uuid.Nil, false
	}
	return id, true
}

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// parseDays reads the days window, clamped to a year.
func parseDays(r *http.Request, defaultValue int) int {
	days := parseQueryInt(r, "days", defaultValue, 365)
	if days < 1 {
		return defaultValue
	}
	return days
}

// today is the calendar date of now in the reporting location.
func (s *Server) today() time.Time {
	return db.DateOf(s.now(), s.loc)
}

// markTask ticks a checklist task for today. Failures are logged and do not
// fail the request that triggered them.
func (s *Server) markTask(r *http.Request, userID, task string) {
	if _, err := s.store.CompleteChecklistTask(r.Context(), userID, s.today(), task); err != nil {
		s.log.Warn("failed to mark checklist task", "user_id", userID, "task", task, "error", err)
	}
}

// parseDate accepts RFC3339 or YYYY-MM-DD. Empty means now.
func (s *Server) parseDate(value string) (time.Time, error) {
	if value == "" {
		return s.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, s.loc)
	if err != nil {
		return time.Time{}, &ErrValidation{Field: "date", Message: fmt.Sprintf("invalid date %q", value)}
	}
	return t, nil
}

// orEmpty keeps list responses as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
