// Package server provides the HTTP REST API wrapping the job match
// scoring engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobmatch/internal/cache"
	"github.com/jonathan/jobmatch/internal/config"
	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/recommender"
	"github.com/jonathan/jobmatch/internal/skills"
)

// Server represents the HTTP server.
type Server struct {
	httpServer     *http.Server
	db             *db.DB
	cache          *cache.MatchCache
	validate       *validator.Validate
	jwtService     *JWTService
	passwordConfig *config.PasswordConfig
	cfg            Config

	skillMaster []string

	// engine is nil until the corpus holds at least one job; a corpus
	// change replaces the snapshot under mu.
	mu     sync.RWMutex
	engine *recommender.Engine
}

// Config holds server configuration.
type Config struct {
	Port         int
	DatabaseURL  string
	RedisAddr    string
	SkillsPath   string
	WeightTFIDF  float64
	WeightSkills float64
	TopK         int
}

// New creates a new server instance: it connects to the database,
// ensures the schema, loads the skill master list and builds the
// scoring engine from whatever corpus is already stored.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.InitSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	skillMaster, err := skills.LoadList(cfg.SkillsPath)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load skill master list: %w", err)
	}
	if len(skillMaster) == 0 {
		log.Printf("No skill master list loaded; skills overlap will always be zero")
	}

	matchCache, err := cache.New(ctx, cfg.RedisAddr, cache.DefaultTTL)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to set up match cache: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		db:             database,
		cache:          matchCache,
		validate:       validator.New(),
		jwtService:     NewJWTService(jwtConfig),
		passwordConfig: passwordConfig,
		cfg:            cfg,
		skillMaster:    skillMaster,
	}

	if err := s.reloadEngine(ctx); err != nil {
		database.Close()
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)

	// Matching
	mux.HandleFunc("POST /api/match", s.handleMatch)

	// Jobs
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("POST /api/jobs", s.handleCreateJob)
	mux.HandleFunc("POST /api/jobs/import", s.handleImportJobs)
	mux.HandleFunc("POST /api/jobs/seed", s.handleSeedJobs)

	// Users and authentication
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("PUT /api/users/{id}/resume", s.requireUser(s.handleUpdateResume))
	mux.HandleFunc("POST /api/users/{id}/resume/upload", s.requireUser(s.handleUploadResume))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.cache.Close(); err != nil {
		log.Printf("Failed to close match cache: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// reloadEngine rebuilds the scoring engine from the stored corpus.
// Called at startup and after every corpus mutation; an empty corpus
// leaves the engine unset so matching reports CorpusError.
func (s *Server) reloadEngine(ctx context.Context) error {
	jobs, err := s.db.AllJobRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(jobs) == 0 {
		s.engine = nil
		return nil
	}
	if s.engine == nil {
		engine, err := recommender.NewEngine(jobs, s.skillMaster, recommender.DefaultVectorizerConfig())
		if err != nil {
			return fmt.Errorf("failed to build scoring engine: %w", err)
		}
		s.engine = engine
		return nil
	}
	if err := s.engine.Reload(jobs); err != nil {
		return fmt.Errorf("failed to reload scoring engine: %w", err)
	}
	return nil
}

// currentEngine returns the active engine, or nil when the corpus is
// empty.
func (s *Server) currentEngine() *recommender.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response with the given status code.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// parseQueryInt reads an integer query parameter with a default and an
// optional maximum (0 means no maximum).
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	if maxValue > 0 && value > maxValue {
		return maxValue
	}
	return value
}
