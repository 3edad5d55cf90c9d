package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/message"
	"golang.org/x/time/rate"

	"github.com/Falkyouall/xbrl-tool/pkg/extract"
	"github.com/Falkyouall/xbrl-tool/pkg/mapping"
	"github.com/Falkyouall/xbrl-tool/pkg/report"
	"github.com/Falkyouall/xbrl-tool/pkg/store"
	"github.com/Falkyouall/xbrl-tool/pkg/xbrl"
)

//go:embed index.html
var indexHTML string

// German-style grouping for humanized fact amounts in API summaries.
var printer = message.NewPrinter(message.MatchLanguage("de"))

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	return l
}

type Server struct {
	db      *store.DB
	limiter *rate.Limiter
}

func NewServer(db *store.DB, requestsPerSecond int) *Server {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &Server{
		db:      db,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// limit rejects requests above the configured rate with 429.
func (s *Server) limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}

// handleIndex serves the static usage page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleExtract handles POST /api/extract: a multipart upload of an
// xlsx workbook or an HTML table, returning the extraction contract's
// columns and sample rows.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing file upload: %w", err))
		return
	}
	defer file.Close()

	var columns []extract.Column
	var rows []map[string]any
	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".xlsx", ".xls":
		columns, rows, err = extract.Excel(file)
	case ".html", ".htm":
		columns, rows, err = extract.HTMLTable(file)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported file type %q", ext))
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	log.WithFields(logrus.Fields{
		"filename": header.Filename,
		"columns":  len(columns),
		"rows":     len(rows),
	}).Info("extracted upload")

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"columns": columns,
		"rows":    rows,
	})
}

// handleParseMappings handles POST /api/mappings/parse: raw suggester
// output in the request body, normalized mappings out.
func (s *Server) handleParseMappings(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err))
		return
	}
	resp, err := mapping.ParseSuggesterResponse(string(raw))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": resp})
}

type generateRequest struct {
	Config   report.Config            `json:"config"`
	Mappings []mapping.Mapping        `json:"mappings"`
	Rows     []report.Row             `json:"rows,omitempty"`
	Analyses []mapping.ColumnAnalysis `json:"analyzedColumns,omitempty"`
}

// handleGenerate handles POST /api/generate: builds, validates,
// serializes and stores one instance document. Validation findings are
// advisory; generation proceeds regardless.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	inst, err := report.Build(req.Mappings, req.Config, req.Rows, mapping.AnalysisIndex(req.Analyses))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	result := xbrl.Validate(inst)
	if !result.Valid {
		log.WithField("errors", result.Errors).Warn("instance validation reported issues")
	}

	document := xbrl.Serialize(inst)
	filename := report.Filename(req.Config)

	rec := &store.Record{
		EntityID:      req.Config.EntityID,
		Regulation:    string(req.Config.Regulation),
		Perspective:   string(req.Config.Perspective),
		ReportingDate: req.Config.ReportingDate,
		Filename:      filename,
		Document:      document,
		Valid:         result.Valid,
		Errors:        result.Errors,
	}
	if _, err := s.db.StoreDocument(rec); err != nil {
		// Storage is best effort; the caller still gets the document.
		log.WithError(err).Warn("failed to store generated document")
	}

	log.WithFields(logrus.Fields{
		"entity":     req.Config.EntityID,
		"regulation": req.Config.Regulation,
		"facts":      len(inst.Facts),
		"valid":      result.Valid,
	}).Info("generated instance document")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"id":         rec.ID,
		"filename":   filename,
		"document":   document,
		"validation": result,
		"facts":      factSummaries(inst),
	})
}

// factSummaries renders one humanized line per fact for the result view.
func factSummaries(inst *xbrl.Instance) []string {
	summaries := make([]string, 0, len(inst.Facts))
	for _, fact := range inst.Facts {
		if d, ok := fact.Value.Decimal(); ok {
			summaries = append(summaries, printer.Sprintf("%s = %.2f", fact.Tag(), d.InexactFloat64()))
		} else {
			summaries = append(summaries, fmt.Sprintf("%s = %s", fact.Tag(), fact.Value.String()))
		}
	}
	return summaries
}

// handleValidateDocument handles POST /api/validate: a serialized
// instance in the request body is decoded and structurally re-checked.
func (s *Server) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	inst, err := xbrl.Parse(r.Body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, xbrl.Validate(inst))
}

// handleListDocuments handles GET /api/documents
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListDocuments(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "documents": records})
}

// handleDownload handles GET /documents/{id}, serving the stored XML.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid document id"))
		return
	}
	rec, err := s.db.GetDocument(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename))
	w.Write([]byte(rec.Document))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/extract", s.limit(s.handleExtract))
	mux.HandleFunc("POST /api/mappings/parse", s.limit(s.handleParseMappings))
	mux.HandleFunc("POST /api/generate", s.limit(s.handleGenerate))
	mux.HandleFunc("POST /api/validate", s.limit(s.handleValidateDocument))
	mux.HandleFunc("GET /api/documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleDownload)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleIndex)
	return mux
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment as-is")
	}

	dbPath := os.Getenv("XBRL_DB")
	if dbPath == "" {
		dbPath = "xbrl.db"
	}
	database, err := store.New(dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer database.Close()

	rateLimit, _ := strconv.Atoi(os.Getenv("RATE_LIMIT"))
	server := NewServer(database, rateLimit)
	mux := server.routes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("starting XBRL generation server")
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.WithError(err).Fatal("server failed to start")
	}
}
