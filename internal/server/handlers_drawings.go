package server

import (
	"net/http"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/insight"
	"github.com/jonathan/mindwell/internal/schemas"
	"github.com/jonathan/mindwell/internal/types"
)

// handleCreateDrawing stores a canvas scene or a text capture and ticks
// describedDay. The AI insight is attached when the model answers.
func (s *Server) handleCreateDrawing(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.DrawingRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if !req.HasScene() && !req.HasText() {
		s.handleError(w, r, &ErrValidation{Message: "sceneJson or textContent is required"})
		return
	}
	if req.HasScene() {
		if err := schemas.ValidateScene(req.SceneJSON); err != nil {
			s.handleError(w, r, err)
			return
		}
	}
	inputType := req.InputType
	if inputType == "" {
		inputType = db.InputDraw
	}
	scene := req.SceneJSON
	if !req.HasScene() {
		scene = nil
	}

	drawing, err := s.store.CreateDrawing(r.Context(), userID, scene, inputType, req.TextContent)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	text := insight.TextToAnalyze(inputType, scene, req.TextContent)
	result, err := s.analyzer.DrawingInsight(r.Context(), inputType, text)
	if err != nil {
		s.log.Warn("drawing insight unavailable", "user_id", userID, "error", err)
	}
	if note, ok := result.Get(); ok {
		if err := s.store.SetDrawingInsight(r.Context(), drawing.ID, note); err != nil {
			s.log.Warn("failed to store drawing insight", "user_id", userID, "error", err)
		} else {
			drawing.AIInsight = &note
		}
	}

	s.markTask(r, userID, db.TaskDescribedDay)
	s.jsonResponse(w, http.StatusCreated, drawing)
}

func (s *Server) handleListDrawings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	drawings, err := s.store.ListDrawings(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(drawings))
}
