// Package server exposes a form over HTTP: the vanilla renderer draws it and
// posted values run through a controller in synchronous mode.
package server

import (
	"context"
	"encoding/json"
	"html"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/controller"
	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/renderers/vanilla"
	"github.com/goliatone/go-formval/pkg/suggest"
)

// DefaultMaxBody caps posted form bodies.
const DefaultMaxBody int64 = 1 << 20

// Server serves one form definition. Each request gets its own controller
// and renderer so no UI state leaks between clients.
type Server struct {
	form      model.Form
	cfg       config.Config
	logger    *zap.Logger
	theme     *theme.RendererConfig
	suggester *suggest.Suggester
	maxBody   int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and controller logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme passes theme data to the vanilla renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithSuggester replaces the default email suggester.
func WithSuggester(sg *suggest.Suggester) Option {
	return func(s *Server) {
		if sg != nil {
			s.suggester = sg
		}
	}
}

// WithMaxBody caps posted bodies; n <= 0 keeps the default.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New builds a server for form. Submissions are always synchronous and
// persistence is off since the browser owns both.
func New(form model.Form, cfg config.Config, opts ...Option) *Server {
	cfg.AsyncSubmit = false
	cfg.PersistInputs = false
	s := &Server{
		form:      form.NormalizeURLFields(),
		cfg:       cfg,
		logger:    zap.NewNop(),
		suggester: suggest.New(),
		maxBody:   DefaultMaxBody,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Routes returns the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handleForm)
	r.Post("/", s.handleSubmit)
	r.Post("/validate", s.handleValidate)
	r.Get("/suggest", s.handleSuggest)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server: listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

type validateResponse struct {
	OK      bool        `json:"ok"`
	Invalid []string    `json:"invalid,omitempty"`
	Plan    render.Plan `json:"plan"`
}

type suggestResponse struct {
	Suggestion string `json:"suggestion"`
	Text       string `json:"text"`
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	renderer, err := s.renderer()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeForm(w, r, http.StatusOK, renderer, s.form)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	renderer, err := s.renderer()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ctrl, ok := s.bind(w, r, renderer)
	if !ok {
		return
	}

	outcome, err := ctrl.Submit(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !outcome.Result.OK {
		s.writeForm(w, r, http.StatusUnprocessableEntity, renderer, ctrl.Form())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<p class="formval-success">` + html.EscapeString(controller.SuccessMessage(ctrl.Form(), s.cfg)) + "</p>\n"))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.bind(w, r, nil)
	if !ok {
		return
	}
	result := ctrl.Validate(r.Context())
	writeJSON(w, http.StatusOK, validateResponse{
		OK:      result.OK,
		Invalid: result.InvalidFieldIDs,
		Plan:    render.PlanEffects(ctrl.Form(), ctrl.Rules(), result, s.cfg),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	suggestion, ok := s.suggester.Suggest(r.URL.Query().Get("email"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{
		Suggestion: suggestion.Address(),
		Text:       suggestion.Text(s.cfg.SuggestText()),
	})
}

// bind parses the posted values into a fresh controller. A nil renderer
// leaves the controller without sinks.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, renderer *vanilla.Renderer) (*controller.Controller, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return nil, false
	}

	opts := []controller.Option{
		controller.WithLogger(s.logger),
		controller.WithSuggester(s.suggester),
	}
	if renderer != nil {
		opts = append(opts, controller.WithSinks(render.Sinks{Markers: renderer, Messages: renderer, Focus: renderer}))
	}
	ctrl := controller.New(s.form, s.cfg, opts...)

	ctx := r.Context()
	if err := ctrl.Init(ctx); err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	for _, field := range s.form.Fields {
		var err error
		values, posted := r.PostForm[field.Name]
		switch {
		case field.IsChoice():
			// Unchecked boxes are absent from the body.
			err = ctrl.Toggle(ctx, field.ID, contains(values, field.Value))
		case !posted:
			continue
		case field.Type == model.FieldTypeURL:
			err = ctrl.Change(ctx, field.ID, model.NormalizeURL(values[0]))
		default:
			err = ctrl.Change(ctx, field.ID, values[0])
		}
		if err != nil {
			s.fail(w, r, err)
			return nil, false
		}
	}
	return ctrl, true
}

func (s *Server) renderer() (*vanilla.Renderer, error) {
	opts := []vanilla.Option{vanilla.WithConfig(s.cfg)}
	if s.theme != nil {
		opts = append(opts, vanilla.WithTheme(s.theme))
	}
	return vanilla.New(opts...)
}

func (s *Server) writeForm(w http.ResponseWriter, r *http.Request, status int, renderer *vanilla.Renderer, form model.Form) {
	out, err := renderer.Render(r.Context(), form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("server: request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", chimw.GetReqID(r.Context())),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

