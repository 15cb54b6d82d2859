package webclient

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/index.html
var content embed.FS

// Server renders the query form and proxies submissions to the API.
type Server struct {
	cfg  Config
	api  *APIClient
	log  logr.Logger
	tmpl *template.Template

	registry     *prometheus.Registry
	queriesTotal prometheus.Counter
	errorsTotal  prometheus.Counter
}

// pageData is everything the form template renders. Either Answer or Error
// is set after a submission; both are empty on the initial GET.
type pageData struct {
	Query  string
	Lang   string
	Answer *Answer
	Error  string
}

// NewServer creates the web server. The template is embedded; parse errors
// are programming errors and panic at startup.
func NewServer(cfg Config, api *APIClient, log logr.Logger) *Server {
	registry := prometheus.NewRegistry()
	queriesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "govrag_web_queries_total",
		Help: "Queries submitted through the web form.",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "govrag_web_errors_total",
		Help: "Query submissions that ended in an API error.",
	})
	registry.MustRegister(queriesTotal, errorsTotal)

	return &Server{
		cfg:          cfg,
		api:          api,
		log:          log,
		tmpl:         template.Must(template.ParseFS(content, "templates/index.html")),
		registry:     registry,
		queriesTotal: queriesTotal,
		errorsTotal:  errorsTotal,
	}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleForm)
	r.Post("/ask", s.handleAsk)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.cfg.ListenAddr, "api", s.cfg.APIEndpoint)
	return http.ListenAndServe(s.cfg.ListenAddr, s.Router())
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, pageData{Lang: "en"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	query := strings.TrimSpace(r.PostFormValue("query"))
	lang := r.PostFormValue("lang")
	if lang != "fr" {
		lang = "en"
	}

	// A blank submission re-renders the form without touching the API.
	if query == "" {
		s.render(w, pageData{Lang: lang})
		return
	}

	s.queriesTotal.Inc()

	answer, err := s.api.Ask(r.Context(), query, lang, s.cfg.DefaultK)
	if err != nil {
		s.errorsTotal.Inc()
		s.log.Error(err, "query failed")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.render(w, pageData{Query: query, Lang: lang, Error: apiErr.Error()})
		return
	}

	s.render(w, pageData{Query: query, Lang: lang, Answer: answer})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.log.Error(err, "template render failed")
	}
}
