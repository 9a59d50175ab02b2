package devserver

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/five82/lostfound/internal/catalogue"
)

const (
	maxUploadBytes = 16 << 20
	timestampFmt   = "2006-01-02T15:04:05.000000"
)

var allowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true, "webp": true,
}

type asset struct {
	entry       catalogue.Entry
	hash        uint64
	data        []byte
	contentType string
}

// Server is an in-memory Catalogue Service.
type Server struct {
	AssetPath string
	// LocalAdmin restricts upload, list and delete to loopback clients.
	LocalAdmin bool

	logger *slog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	nextID int64
	assets []*asset
}

// New returns an empty server serving assets under assetPath.
func New(assetPath string, logger *slog.Logger) *Server {
	assetPath = "/" + strings.Trim(strings.TrimSpace(assetPath), "/")
	if assetPath == "/" {
		assetPath = "/static/uploads"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		AssetPath:  assetPath,
		LocalAdmin: true,
		logger:     logger,
		now:        time.Now,
		nextID:     1,
	}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/api/search", s.handleSearch)
	r.Group(func(r chi.Router) {
		r.Use(s.adminOnly)
		r.Post("/api/upload", s.handleUpload)
		r.Get("/api/images", s.handleList)
		r.Delete("/api/images/{id}", s.handleDelete)
	})
	r.Get(s.AssetPath+"/{name}", s.handleAsset)
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("catalogue dev server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("catalogue dev server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	data, name, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	query, err := averageHash(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "feature extraction failed: "+err.Error())
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.assets) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "no images in the catalogue", "data": nil})
		return
	}
	var (
		best      *asset
		bestScore = -1.0
	)
	for _, a := range s.assets {
		if score := similarity(query, a.hash); score > bestScore {
			best, bestScore = a, score
		}
	}
	s.logger.Debug("search matched", "query", name, "match_id", best.entry.ID, "similarity", bestScore)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "search complete",
		"data": map[string]any{
			"image":      best.entry,
			"image_url":  s.AssetPath + "/" + best.entry.AssetName(),
			"similarity": math.Round(bestScore*10000) / 10000,
		},
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data, name, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	hash, err := averageHash(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "feature extraction failed: "+err.Error())
		return
	}

	var info *string
	if v := r.FormValue("info"); v != "" {
		info = &v
	}
	a := &asset{
		hash:        hash,
		data:        data,
		contentType: http.DetectContentType(data),
	}

	s.mu.Lock()
	a.entry = catalogue.Entry{
		ID:        s.nextID,
		UUID:      uuid.NewString(),
		Filename:  name,
		Info:      info,
		CreatedAt: s.now().UTC().Format(timestampFmt),
	}
	s.nextID++
	s.assets = append(s.assets, a)
	s.mu.Unlock()

	s.logger.Info("image catalogued", "id", a.entry.ID, "uuid", a.entry.UUID, "filename", name)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "image uploaded", "data": a.entry})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	entries := make([]catalogue.Entry, 0, len(s.assets))
	for _, a := range s.assets {
		entries = append(entries, a.entry)
	}
	s.mu.RUnlock()

	// Newest first.
	slices.SortStableFunc(entries, func(a, b catalogue.Entry) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": entries})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}

	s.mu.Lock()
	idx := slices.IndexFunc(s.assets, func(a *asset) bool { return a.entry.ID == id })
	if idx >= 0 {
		s.assets = slices.Delete(s.assets, idx, idx+1)
	}
	s.mu.Unlock()

	if idx < 0 {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	s.logger.Info("image deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "deleted"})
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.RLock()
	idx := slices.IndexFunc(s.assets, func(a *asset) bool { return a.entry.AssetName() == name })
	var a *asset
	if idx >= 0 {
		a = s.assets[idx]
	}
	s.mu.RUnlock()

	if a == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	_, _ = w.Write(a.data)
}

// readUpload validates the multipart "file" field and returns its bytes and
// original name. On failure it has already written the error response.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return nil, "", false
		}
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return nil, "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return nil, "", false
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "no file selected")
		return nil, "", false
	}
	if !strings.Contains(header.Filename, ".") || !allowedExtensions[catalogue.Extension(header.Filename)] {
		writeError(w, http.StatusBadRequest, "unsupported file format")
		return nil, "", false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return nil, "", false
	}
	return data, header.Filename, true
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.LocalAdmin && !isLoopback(r.RemoteAddr) {
			writeError(w, http.StatusForbidden, "admin access is limited to local clients")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", r.Header.Get(catalogue.RequestIDHeader),
		)
	})
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
