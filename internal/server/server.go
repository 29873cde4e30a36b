package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/mindwell/internal/cache"
	"github.com/jonathan/mindwell/internal/config"
	"github.com/jonathan/mindwell/internal/content"
	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/history"
	"github.com/jonathan/mindwell/internal/insight"
	"github.com/jonathan/mindwell/internal/llm"
	"github.com/jonathan/mindwell/internal/logger"
	"github.com/jonathan/mindwell/internal/quiz"
	"github.com/jonathan/mindwell/internal/risk"
	"github.com/jonathan/mindwell/internal/server/middleware"
	"github.com/jonathan/mindwell/internal/server/ratelimit"
	"github.com/jonathan/mindwell/internal/wellness"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	log         *logger.Logger
	loc         *time.Location
	now         func() time.Time
	corsOrigin  string
	rateLimiter *ratelimit.Limiter
	profiles    *ProfileService
	aggregator  *wellness.Aggregator
	weekly      *quiz.Weekly
	feed        *history.Feed
	monitor     *risk.Monitor
	analyzer    *insight.Analyzer
	books       BookSource
	videos      VideoSearcher
	music       MusicSource
	closers     []func() error
}

// Config holds server configuration
type Config struct {
	Server  *config.ServerConfig
	Auth    *config.AuthConfig
	AI      *config.AIConfig
	Cache   *config.CacheConfig
	Content *config.ContentConfig
}

// Deps are the collaborators of a Server. Nil content sources and a nil
// analyzer leave the matching features degraded rather than failing.
type Deps struct {
	Store      Store
	Log        *logger.Logger
	Location   *time.Location
	Tokens     middleware.TokenValidator
	Analyzer   *insight.Analyzer
	Books      BookSource
	Videos     VideoSearcher
	Music      MusicSource
	RateLimit  *ratelimit.Config
	CORSOrigin string
	Now        func() time.Time
}

// New connects every backing service described by cfg and builds the server.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Server, error) {
	database, err := db.Connect(ctx, cfg.Server.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closers := []func() error{func() error { database.Close(); return nil }}
	fail := func(err error) (*Server, error) {
		for _, c := range closers {
			_ = c()
		}
		return nil, err
	}

	jwtService, err := NewJWTService(cfg.Auth)
	if err != nil {
		return fail(err)
	}

	c, closeCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return fail(fmt.Errorf("failed to create cache: %w", err))
	}
	closers = append(closers, closeCache)

	deps := Deps{
		Store:      database,
		Log:        log,
		Location:   cfg.Server.Location,
		Tokens:     jwtService.AsTokenValidator(),
		RateLimit:  ratelimit.LoadConfig(),
		CORSOrigin: cfg.Server.CORSOrigin,
		Books:      content.NewGutendex(cfg.Content.GutendexURL, c, cfg.Cache.SearchTTL, cfg.Cache.ContentTTL, nil),
	}

	if cfg.AI.Enabled() {
		client, err := llm.NewClient(ctx, llm.ConfigForModel(cfg.AI.Model), cfg.AI.APIKey)
		if err != nil {
			return fail(fmt.Errorf("failed to create AI client: %w", err))
		}
		closers = append(closers, client.Close)
		deps.Analyzer = insight.NewAnalyzer(client, cfg.AI.Timeout)
	} else {
		log.Warn("GEMINI_API_KEY not set, AI enrichment disabled")
	}

	if cfg.Content.YouTubeAPIKey != "" {
		yt, err := content.NewYouTube(ctx, cfg.Content.YouTubeAPIKey, c, cfg.Cache.SearchTTL)
		if err != nil {
			return fail(fmt.Errorf("failed to create YouTube client: %w", err))
		}
		deps.Videos = yt
	}
	if cfg.Content.SpotifyEnabled() {
		deps.Music = content.NewSpotify(ctx, cfg.Content.SpotifyClientID, cfg.Content.SpotifyClientSecret, c, cfg.Cache.PlaylistTTL, nil)
	}

	s := NewWithDeps(deps)
	s.closers = closers
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// NewWithDeps builds a server around already constructed collaborators.
func NewWithDeps(d Deps) *Server {
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.CORSOrigin == "" {
		d.CORSOrigin = "*"
	}

	s := &Server{
		store:       d.Store,
		log:         d.Log,
		loc:         d.Location,
		now:         d.Now,
		corsOrigin:  d.CORSOrigin,
		rateLimiter: ratelimit.NewLimiter(d.RateLimit),
		profiles:    NewProfileService(d.Store),
		aggregator:  wellness.NewAggregator(d.Store, d.Location).WithClock(d.Now),
		weekly:      quiz.NewWeekly(d.Store, d.Location).WithClock(d.Now),
		feed:        history.NewFeed(d.Store, d.Location),
		monitor:     risk.NewMonitor(d.Store, d.Log, d.Location).WithClock(d.Now),
		analyzer:    d.Analyzer,
		books:       d.Books,
		videos:      d.Videos,
		music:       d.Music,
	}

	auth := middleware.AuthMiddleware(d.Tokens)
	authed := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/library/public", s.handlePublicBooks)
	mux.HandleFunc("GET /api/library/public/{id}/content-paged", s.handlePublicBookContent)

	// Wellness
	mux.Handle("GET /api/wellness/current", authed(s.handleWellnessCurrent))
	mux.Handle("GET /api/wellness/history", authed(s.handleWellnessHistory))
	mux.Handle("POST /api/wellness/calculate", authed(s.handleWellnessCalculate))

	// Quiz
	mux.Handle("GET /api/quiz/weekly/current", authed(s.handleWeeklyQuizCurrent))
	mux.Handle("POST /api/quiz/weekly/respond", authed(s.handleWeeklyQuizRespond))
	mux.Handle("POST /api/quiz/create", authed(s.handleCreateQuiz))
	mux.Handle("GET /api/quiz/available", authed(s.handleAvailableQuizzes))
	mux.Handle("GET /api/quiz/{id}", authed(s.handleGetQuiz))
	mux.Handle("POST /api/quiz/respond", authed(s.handleQuizRespond))
	mux.Handle("GET /api/quiz/history/{quizId}", authed(s.handleQuizHistory))
	mux.Handle("GET /api/quiz/trends/{quizId}", authed(s.handleQuizTrends))

	// History and checklist
	mux.Handle("GET /api/history", authed(s.handleHistory))
	mux.Handle("GET /api/checklist/today", authed(s.handleChecklistToday))
	mux.Handle("POST /api/checklist/complete", authed(s.handleChecklistComplete))

	// Mood
	mux.Handle("POST /api/mood", authed(s.handleCreateMood))
	mux.Handle("GET /api/mood/history", authed(s.handleMoodHistory))
	mux.Handle("GET /api/mood/today", authed(s.handleMoodToday))
	mux.Handle("GET /api/mood/trends", authed(s.handleMoodTrends))

	// Cognitive
	mux.Handle("POST /api/cognitive", authed(s.handleCreateCognitive))
	mux.Handle("GET /api/cognitive/history", authed(s.handleCognitiveHistory))
	mux.Handle("GET /api/cognitive/trends", authed(s.handleCognitiveTrends))
	mux.Handle("GET /api/cognitive/recommendations", authed(s.handleCognitiveRecommendations))

	// Journal
	mux.Handle("POST /api/journal", authed(s.handleCreateJournal))
	mux.Handle("GET /api/journal/history", authed(s.handleJournalHistory))
	mux.Handle("GET /api/journal/sentiment/trends", authed(s.handleJournalSentimentTrends))
	mux.Handle("GET /api/journal/{id}", authed(s.handleGetJournal))

	// Drawings
	mux.Handle("POST /api/drawings", authed(s.handleCreateDrawing))
	mux.Handle("GET /api/drawings", authed(s.handleListDrawings))

	// Alerts
	mux.Handle("GET /api/alerts", authed(s.handleListAlerts))
	mux.Handle("GET /api/alerts/unacknowledged", authed(s.handleUnacknowledgedAlerts))
	mux.Handle("POST /api/alerts", authed(s.handleCreateAlert))
	mux.Handle("POST /api/alerts/acknowledge/{id}", authed(s.handleAcknowledgeAlert))

	// Onboarding
	mux.Handle("GET /api/onboarding/consent", authed(s.handleGetConsent))
	mux.Handle("POST /api/onboarding/consent", authed(s.handleUpdateConsent))
	mux.Handle("POST /api/onboarding/survey/{type}", authed(s.handleSubmitSurvey))
	mux.Handle("GET /api/onboarding/baseline-status", authed(s.handleBaselineStatus))

	// Library and music
	mux.Handle("GET /api/library/books", authed(s.handleListBooks))
	mux.Handle("GET /api/library/videos", authed(s.handleListVideos))
	mux.Handle("GET /api/library/videos/search", authed(s.handleSearchVideos))
	mux.Handle("POST /api/library/video-summary", authed(s.handleVideoSummary))
	mux.Handle("GET /api/music/playlists", authed(s.handlePlaylists))
	mux.Handle("GET /api/music/playlist/{id}/tracks", authed(s.handlePlaylistTracks))

	// Profile
	mux.Handle("GET /api/profile/me", authed(s.handleProfileMe))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.log.Info("server stopped")
	return nil
}

// Close stops the rate limiter and releases backing connections.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log.Warn("close failed", "error", err)
		}
	}
	s.closers = nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging records method, path, status and duration of every request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// handleHealth reports process and database health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn("health check failed", "error", err)
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status. Internal failures are logged and
// answered with a generic message.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	switch status {
	case http.StatusInternalServerError:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.errorResponse(w, status, "Internal Server Error")
	case http.StatusBadRequest:
		body := map[string]any{"error": badRequestMessage(err)}
		if details := validationDetails(err); len(details) > 0 {
			body["details"] = details
		}
		s.jsonResponse(w, status, body)
	default:
		s.errorResponse(w, status, err.Error())
	}
}

func badRequestMessage(err error) string {
	var v *ErrValidation
	if errors.As(err, &v) {
		return v.Message
	}
	if validationDetails(err) != nil {
		return "Invalid request"
	}
	return err.Error()
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.Warn("rate limit exceeded",
		"path", r.URL.Path,
		"limit", info.Limit,
		"reset", info.ResetTime.Format(time.RFC3339),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
