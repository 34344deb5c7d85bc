package web

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"garim-lab/internal/ai"
	"garim-lab/internal/dashboard"
	"garim-lab/internal/model"
	"garim-lab/internal/report"
	"garim-lab/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"pct":   func(v int) template.CSS { return template.CSS(strconv.Itoa(v) + "%") },
	"color": func(b dashboard.Band) template.CSS { return template.CSS(b.Color()) },
	"safeLink": func(s string) string {
		if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
			return s
		}
		return "https://www.google.com/search?q=" + url.QueryEscape(s)
	},
}).ParseFS(templateFS, "templates/index.html"))

// Server serves the dashboard page and its form actions.
type Server struct {
	presenter  *dashboard.Presenter
	sessions   *session.Registry
	cookieName string
	mux        *http.ServeMux
}

// New wires routes for a presenter and a session registry.
func New(p *dashboard.Presenter, sessions *session.Registry, cookieName string) *Server {
	if cookieName == "" {
		cookieName = "garim_session"
	}
	s := &Server{presenter: p, sessions: sessions, cookieName: cookieName, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /credential", s.handleCredential)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /scrap", s.handleScrap)
	s.mux.HandleFunc("POST /posts", s.handlePost)
	s.mux.HandleFunc("GET /report.md", s.handleReport)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// session resolves the visitor's store, issuing a cookie for new visitors.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Store {
	id := ""
	if c, err := r.Cookie(s.cookieName); err == nil {
		id = c.Value
	}
	st, created := s.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookieName,
			Value:    st.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return st
}

func (s *Server) categoryParam(v string) model.Category {
	if c, ok := s.presenter.ResolveCategory(v); ok {
		return c
	}
	return model.CategoryPolitics
}

// redirectHome sends the browser back to the page with its selections kept.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	if v := r.FormValue("cat"); v != "" {
		q.Set("cat", v)
	}
	if v := r.FormValue("board"); v != "" {
		q.Set("board", v)
	}
	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r)
	q := r.URL.Query()
	view := s.presenter.View(r.Context(), st, s.categoryParam(q.Get("cat")), q.Get("board"))
	view.Flash = st.TakeFlash()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTpl.Execute(w, view); err != nil {
		slog.Error("web: render error", "err", err)
	}
}

func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r)
	st.SetCredential(r.FormValue("key"))
	if st.Credential() != "" {
		st.SetFlash("API key saved for this session.")
	}
	redirectHome(w, r)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r)
	idx, err := strconv.Atoi(r.FormValue("idx"))
	if err != nil {
		http.Error(w, "invalid item index", http.StatusBadRequest)
		return
	}
	cat := s.categoryParam(r.FormValue("cat"))
	if err := s.presenter.AnalyzeItem(r.Context(), st, cat, idx, r.FormValue("title"), r.FormValue("source")); err != nil {
		st.SetFlash(flashFor(err))
	}
	redirectHome(w, r)
}

func (s *Server) handleScrap(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r)
	if err := s.presenter.ClickScrap(st); err != nil {
		st.SetFlash(flashFor(err))
	} else {
		st.SetFlash("Article scrapped.")
	}
	redirectHome(w, r)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r)
	err := s.presenter.SubmitPost(st, r.FormValue("author"), r.FormValue("body"), r.FormValue("board"))
	switch {
	case errors.Is(err, session.ErrValidation):
		// empty submissions are ignored
	case err != nil:
		st.SetFlash(flashFor(err))
	}
	redirectHome(w, r)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r)
	cur, ok := st.CurrentAnalysis()
	if !ok {
		http.Error(w, "no analysis yet", http.StatusNotFound)
		return
	}
	out, err := report.Render(report.Data{Title: cur.Title, AnalysedAt: cur.At, Analysis: cur.Analysis})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="garim-report.md"`)
	_, _ = w.Write([]byte(out))
}

// flashFor surfaces provider details verbatim for analysis errors.
func flashFor(err error) string {
	var aerr *ai.Error
	if errors.As(err, &aerr) {
		if aerr.Detail == "" {
			return "Analysis failed: " + aerr.Kind.String()
		}
		return "Analysis failed (" + aerr.Kind.String() + "): " + aerr.Detail
	}
	return err.Error()
}
