package dashboardhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/odyssey-erp/analytics-dashboard/internal/analyticsapi"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard/export"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard/ui"
	"github.com/odyssey-erp/analytics-dashboard/internal/shared"
	"github.com/odyssey-erp/analytics-dashboard/internal/view"
	"github.com/odyssey-erp/analytics-dashboard/web"
	"golang.org/x/sync/singleflight"
)

const (
	pageTitle = "Kredit Satışları Analitikası"
	// DefaultStaleLoading is how long a stored loading flag is trusted.
	DefaultStaleLoading = 2 * time.Minute
)

// Loader runs the batch fetch for one session.
type Loader interface {
	Load(ctx context.Context, sessionID string, src dashboard.Source) (dashboard.State, error)
	Variant() dashboard.Variant
}

// SourceProvider resolves the analytics source for a request.
type SourceProvider interface {
	SourceFor(r *http.Request) dashboard.Source
}

// PDFService renders an HTML document to PDF bytes.
type PDFService interface {
	Render(ctx context.Context, html []byte) ([]byte, error)
}

// BatchObserver records the outcome of each batch load.
type BatchObserver interface {
	ObserveBatch(variant string, err error)
}

// OriginSource binds an analytics client to the origin of the incoming
// request when no base URL is configured.
type OriginSource struct {
	Client *analyticsapi.Client
}

// SourceFor implements SourceProvider.
func (o OriginSource) SourceFor(r *http.Request) dashboard.Source {
	if o.Client == nil {
		return nil
	}
	return o.Client.ForOrigin(requestOrigin(r))
}

func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		scheme = strings.ToLower(proto)
	}
	return scheme + "://" + r.Host
}

// Handler serves the loan-sales dashboard.
type Handler struct {
	logger    *slog.Logger
	store     dashboard.Store
	loader    Loader
	sources   SourceProvider
	builder   *ui.Builder
	templates *view.Engine
	csrf      *shared.CSRFManager
	pdf       PDFService
	metrics   BatchObserver
	flights   singleflight.Group
	bufPool   sync.Pool
	now       func() time.Time

	loadTimeout  time.Duration
	staleLoading time.Duration
}

// NewHandler constructs the dashboard handler.
func NewHandler(logger *slog.Logger, store dashboard.Store, loader Loader, sources SourceProvider, builder *ui.Builder, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	h := &Handler{
		logger:    logger,
		store:     store,
		loader:    loader,
		sources:   sources,
		builder:   builder,
		templates: templates,
		csrf:      csrf,
		now:       time.Now,

		staleLoading: DefaultStaleLoading,
	}
	h.bufPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithPDF enables the PDF export.
func (h *Handler) WithPDF(pdf PDFService) *Handler {
	h.pdf = pdf
	return h
}

// WithMetrics installs a batch observer.
func (h *Handler) WithMetrics(m BatchObserver) *Handler {
	h.metrics = m
	return h
}

// WithLoadPolicy sets the batch deadline and the age after which a stored
// loading flag is ignored. Zero timeout means no deadline; zero staleAfter
// trusts the flag.
func (h *Handler) WithLoadPolicy(timeout, staleAfter time.Duration) *Handler {
	h.loadTimeout = timeout
	h.staleLoading = staleAfter
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.handleServerError(w, "resolve session", shared.ErrSessionMissing)
		return
	}
	ctx := r.Context()

	state, err := h.store.Get(ctx, sess.ID)
	if err != nil {
		h.handleServerError(w, "read state", err)
		return
	}

	if raw := r.URL.Query().Get("tab"); raw != "" {
		if tab, ok := dashboard.ParseTab(raw); ok && tab != state.ActiveTab {
			state.ActiveTab = tab
			if err := h.store.Put(ctx, sess.ID, state); err != nil {
				h.handleServerError(w, "store tab", err)
				return
			}
		}
	}

	if state.Loading && !state.LoadingActive(h.now(), h.staleLoading) {
		if h.logger != nil {
			h.logger.Warn("ignoring abandoned loading flag", slog.String("session", sess.ID), slog.Time("since", state.LoadingSince))
		}
		state.Loading = false
	}
	if !state.Mounted && !state.Loading {
		state = h.load(r, sess, state)
	}

	token, err := h.csrf.EnsureToken(sess)
	if err != nil {
		h.handleServerError(w, "csrf token", err)
		return
	}
	data := view.TemplateData{
		Title:       pageTitle,
		CSRFToken:   token,
		Flash:       sess.Flash(),
		CurrentPath: r.URL.Path,
	}

	if state.Loading {
		if err := h.templates.Render(w, "pages/loading.html", data); err != nil {
			h.handleServerError(w, "render template", err)
		}
		return
	}

	snap, err := state.Decode()
	if err != nil {
		h.handleServerError(w, "decode state", err)
		return
	}
	page, err := h.builder.Page(state, snap)
	if err != nil {
		h.handleServerError(w, "build page", err)
		return
	}
	data.Data = page
	if err := h.templates.Render(w, "pages/dashboard.html", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.handleServerError(w, "resolve session", shared.ErrSessionMissing)
		return
	}
	state, err := h.store.Get(r.Context(), sess.ID)
	if err != nil {
		h.handleServerError(w, "read state", err)
		return
	}
	h.load(r, sess, state)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleDismissNotice(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.PopFlash()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// load runs one batch and records a notice on failure. The batch is
// detached from the request so a disconnecting client cannot leave the
// state half-written. Concurrent loads for one session share a single batch.
func (h *Handler) load(r *http.Request, sess *shared.Session, fallback dashboard.State) dashboard.State {
	ctx := context.WithoutCancel(r.Context())
	if h.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.loadTimeout)
		defer cancel()
	}

	var src dashboard.Source
	if h.sources != nil {
		src = h.sources.SourceFor(r)
	}
	v, err, _ := h.flights.Do(sess.ID, func() (interface{}, error) {
		state, err := h.loader.Load(ctx, sess.ID, src)
		if h.metrics != nil {
			h.metrics.ObserveBatch(string(h.loader.Variant()), err)
		}
		return state, err
	})
	state, _ := v.(dashboard.State)
	if err != nil {
		h.logError("load dashboard", err)
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashError, Message: "API Error: " + analyticsapi.Message(err)})
		if !state.Mounted {
			fallback.Loading = false
			return fallback
		}
	}
	return state
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.bufPool.Put(buf)
	}()

	if err := export.WriteForecastCSV(buf, snap.Forecast); err != nil {
		h.handleServerError(w, "write forecast csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteQuarterlyCSV(buf, snap.QuarterlyInsights); err != nil {
		h.handleServerError(w, "write quarterly csv", err)
		return
	}

	filename := fmt.Sprintf("loan-sales-forecast-%s.csv", h.now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

// PrintView is the data behind the PDF document.
type PrintView struct {
	GeneratedAt time.Time
	Stylesheet  template.CSS
	Dashboard   *ui.DashboardPanel
	Forecast    *ui.ForecastPanel
	Insights    *ui.InsightsPanel
	Quarterly   *ui.QuarterlyPanel
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		http.Error(w, "PDF export is not configured", http.StatusServiceUnavailable)
		return
	}
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	printView, err := h.printView(snap)
	if err != nil {
		h.handleServerError(w, "build print view", err)
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.bufPool.Put(buf)
	}()
	if err := h.templates.RenderTo(buf, "pages/print.html", view.TemplateData{Title: pageTitle, Data: printView}); err != nil {
		h.handleServerError(w, "render print template", err)
		return
	}

	pdfBytes, err := h.pdf.Render(r.Context(), buf.Bytes())
	if err != nil {
		h.logError("render pdf", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	filename := fmt.Sprintf("loan-sales-dashboard-%s.pdf", h.now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(pdfBytes); err != nil {
		h.logError("stream pdf", err)
	}
}

func (h *Handler) printView(snap dashboard.Snapshot) (PrintView, error) {
	pv := PrintView{GeneratedAt: h.now()}
	if css, err := fs.ReadFile(web.Static, "static/css/app.css"); err == nil {
		pv.Stylesheet = template.CSS(css)
	}
	var err error
	if pv.Dashboard, err = h.builder.DashboardPanel(snap); err != nil {
		return PrintView{}, err
	}
	if pv.Forecast, err = h.builder.ForecastPanel(snap); err != nil {
		return PrintView{}, err
	}
	pv.Insights = h.builder.InsightsPanel(snap)
	if pv.Quarterly, err = h.builder.QuarterlyPanel(snap); err != nil {
		return PrintView{}, err
	}
	return pv, nil
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (dashboard.Snapshot, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.handleServerError(w, "resolve session", shared.ErrSessionMissing)
		return dashboard.Snapshot{}, false
	}
	state, err := h.store.Get(r.Context(), sess.ID)
	if err != nil {
		h.handleServerError(w, "read state", err)
		return dashboard.Snapshot{}, false
	}
	snap, err := state.Decode()
	if err != nil {
		h.handleServerError(w, "decode state", err)
		return dashboard.Snapshot{}, false
	}
	return snap, true
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	status := http.StatusInternalServerError
	if errors.Is(err, shared.ErrSessionMissing) {
		status = http.StatusUnauthorized
	}
	http.Error(w, http.StatusText(status), status)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

// HandleDashboardForTest exposes the dashboard handler for tests.
func (h *Handler) HandleDashboardForTest(w http.ResponseWriter, r *http.Request) {
	h.handleDashboard(w, r)
}

// HandleRefreshForTest exposes the refresh handler for tests.
func (h *Handler) HandleRefreshForTest(w http.ResponseWriter, r *http.Request) { h.handleRefresh(w, r) }

// HandlePDFForTest exposes the PDF handler for tests.
func (h *Handler) HandlePDFForTest(w http.ResponseWriter, r *http.Request) { h.handlePDF(w, r) }

// HandleCSVForTest exposes the CSV handler for tests.
func (h *Handler) HandleCSVForTest(w http.ResponseWriter, r *http.Request) { h.handleCSV(w, r) }
