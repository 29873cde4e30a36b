package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/mindwell/internal/content"
	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/types"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCaller(w, r); !ok {
		return
	}

	books, err := s.store.ListBooks(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(books))
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCaller(w, r); !ok {
		return
	}

	videos, err := s.store.ListVideos(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(videos))
}

// handleSearchVideos searches YouTube. Provider failures degrade to an empty list.
func (s *Server) handleSearchVideos(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCaller(w, r); !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.handleError(w, r, &ErrValidation{Field: "q", Message: "q is required"})
		return
	}

	results := []content.VideoResult{}
	if s.videos == nil {
		s.log.Warn("video search not configured")
	} else if found, err := s.videos.Search(r.Context(), query); err != nil {
		s.log.Warn("video search failed", "error", err)
	} else {
		results = orEmpty(found)
	}
	s.jsonResponse(w, http.StatusOK, results)
}

// handlePublicBooks searches public-domain books. It needs no token and
// degrades to an empty page when the catalog is unreachable.
func (s *Server) handlePublicBooks(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page := parseQueryInt(r, "page", 1, 0)
	if page < 1 {
		page = 1
	}

	result := &content.BookPage{Items: []content.PublicBook{}}
	if s.books == nil {
		s.log.Warn("book search not configured")
	} else if found, err := s.books.Search(r.Context(), query, page); err != nil {
		s.log.Warn("book search failed", "error", err)
	} else {
		result = found
		result.Items = orEmpty(result.Items)
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handlePublicBookContent returns one page of a public-domain book's text.
func (s *Server) handlePublicBookContent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	page := parseQueryInt(r, "page", 1, 0)
	if page < 1 {
		page = 1
	}
	pageSize := parseQueryInt(r, "pageSize", content.DefaultPageSize, content.MaxPageSize)

	if s.books == nil {
		s.errorResponse(w, http.StatusBadGateway, "Book content is unavailable")
		return
	}
	result, err := s.books.Content(r.Context(), id, page, pageSize)
	switch {
	case errors.Is(err, content.ErrBookNotFound), errors.Is(err, content.ErrNoText):
		s.handleError(w, r, &ErrNotFound{Resource: "book text"})
	case err != nil:
		s.log.Warn("book content failed", "book_id", id, "error", err)
		s.errorResponse(w, http.StatusBadGateway, "Book content is unavailable")
	default:
		s.jsonResponse(w, http.StatusOK, result)
	}
}

// handleVideoSummary records a summary written after watching a video as an
// unscored processing exercise and ticks videoSummary.
func (s *Server) handleVideoSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.VideoSummaryRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	entry, err := s.store.CreateCognitiveEntry(r.Context(), userID, &db.CognitiveEntryInput{
		ExerciseType: db.ExerciseProcessing,
		Duration:     1,
		VideoID:      &req.VideoID,
		Summary:      req.Summary,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.markTask(r, userID, db.TaskVideoSummary)
	s.jsonResponse(w, http.StatusCreated, entry)
}

// handlePlaylists lists calm-music playlists. Failures degrade to an empty list.
func (s *Server) handlePlaylists(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCaller(w, r); !ok {
		return
	}

	playlists := []content.Playlist{}
	if s.music == nil {
		s.log.Warn("music not configured")
	} else if found, err := s.music.Playlists(r.Context()); err != nil {
		s.log.Warn("playlist search failed", "error", err)
	} else {
		playlists = orEmpty(found)
	}
	s.jsonResponse(w, http.StatusOK, playlists)
}

// handlePlaylistTracks lists the previewable tracks of one playlist.
func (s *Server) handlePlaylistTracks(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCaller(w, r); !ok {
		return
	}
	playlistID := r.PathValue("id")

	tracks := []content.Track{}
	if s.music == nil {
		s.log.Warn("music not configured")
	} else if found, err := s.music.PlaylistTracks(r.Context(), playlistID); err != nil {
		s.log.Warn("playlist tracks failed", "playlist_id", playlistID, "error", err)
	} else {
		tracks = orEmpty(found)
	}
	s.jsonResponse(w, http.StatusOK, tracks)
}
