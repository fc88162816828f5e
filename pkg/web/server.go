// Package web serves the species page over HTTP.
//
// Every button of the page is a plain HTML form posting to one of the routes
// below; handlers drive the controller and redirect back to the page, so
// notices and confirmations show up on the next GET. Opening the page fetches
// the list again, except on the GET that follows a form post.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/raizdigital/especies/pkg/controller"
	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/logging"
	"github.com/raizdigital/especies/pkg/species"
	"github.com/raizdigital/especies/pkg/view"
)

// DefaultAddr is the default listen address of the web UI.
const DefaultAddr = "localhost:3000"

// Server is the web surface of the species controller.
type Server struct {
	// mu serializes handlers around the shared page and dialogs.
	mu      sync.Mutex
	ctrl    *controller.Controller
	page    *view.HTMLView
	dialogs *dialogs
	logger  *slog.Logger
	lang    string
	mux     *http.ServeMux

	// posted is set by form posts so the redirected GET skips the reload.
	posted bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger of the server and its controller.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLanguage sets the language of the page texts.
func WithLanguage(lang string) Option {
	return func(s *Server) {
		s.lang = lang
	}
}

// NewServer creates a Server talking to client.
func NewServer(client species.Client, opts ...Option) *Server {
	s := &Server{
		logger: logging.Nop(),
		lang:   i18n.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.page = view.NewHTMLView(s.lang)
	s.dialogs = &dialogs{page: s.page}
	s.ctrl = controller.New(client, s.page, s.dialogs,
		controller.WithLogger(s.logger),
		controller.WithPrinter(i18n.NewPrinter(s.lang)),
	)

	s.mux = http.NewServeMux()
	s.registerRoutes(s.mux)
	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /form/new", s.handleOpenCreateForm)
	mux.HandleFunc("POST /form/close", s.handleCloseForm)
	mux.HandleFunc("POST /form/submit", s.handleSubmitForm)

	mux.HandleFunc("POST /species/{id}/edit", s.handlePrepareEdit)
	mux.HandleFunc("POST /species/{id}/delete", s.handleDelete)
}

// Load fetches the list for the first render. A failure is logged and the
// page starts with the empty state.
func (s *Server) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.LoadList(ctx)
}

// Controller returns the controller driven by the server.
func (s *Server) Controller() *controller.Controller {
	return s.ctrl
}

// Handler returns the HTTP handler of the web UI.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// NewHTTPServer returns an http.Server for addr serving the web UI.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.posted {
		// On failure the last rendered list stays; the controller logs it.
		_ = s.ctrl.LoadList(r.Context())
	}
	s.posted = false

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.page.Render(w); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	// A confirmation is asked once; reloading the page answers "no".
	s.page.ClearConfirm()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleOpenCreateForm(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.ctrl.OpenCreateForm()
	s.posted = true
	s.mu.Unlock()
	redirectHome(w, r)
}

func (s *Server) handleCloseForm(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.ctrl.CloseForm()
	s.posted = true
	s.mu.Unlock()
	redirectHome(w, r)
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.ctrl.SetFields(r.PostFormValue("name"), r.PostFormValue("description"))
	err := s.ctrl.SubmitForm(r.Context())
	s.posted = true
	s.mu.Unlock()

	if errors.Is(err, controller.ErrFormClosed) {
		s.logger.Debug("submit without an open form")
	}
	redirectHome(w, r)
}

func (s *Server) handlePrepareEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name, description := r.PostFormValue("name"), r.PostFormValue("description")
	if _, sent := r.PostForm["name"]; !sent {
		if item, found := s.ctrl.Find(id); found {
			name, description = item.Name, item.Description
		}
	}

	s.mu.Lock()
	s.ctrl.PrepareEdit(id, name, description)
	s.posted = true
	s.mu.Unlock()
	redirectHome(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.dialogs.arm(id, r.PostFormValue("confirm") == "yes")
	_ = s.ctrl.DeleteEntity(r.Context(), id)
	s.dialogs.disarm()
	s.posted = true
	s.mu.Unlock()

	redirectHome(w, r)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := species.ParseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid species id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// redirectHome answers a form post with a redirect to the page.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("web request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
