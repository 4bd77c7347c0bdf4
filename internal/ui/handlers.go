package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/KaramelBytes/tabdash/internal/panel"
	"github.com/KaramelBytes/tabdash/internal/parser"
	"github.com/KaramelBytes/tabdash/internal/session"
	"github.com/KaramelBytes/tabdash/internal/table"
)

// UploadSuccess is shown after a file has been loaded.
const UploadSuccess = "File Uploaded Successfully!"

const multipartMemory = 32 << 20

// Handlers provides the dashboard's HTTP handlers.
type Handlers struct {
	store     *session.Store
	cookies   sessions.Store
	pages     *template.Template
	opt       panel.Options
	maxUpload int64
	delimiter rune
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *session.Store, cookies sessions.Store, cfg Config, logger *slog.Logger) (*Handlers, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		store:     store,
		cookies:   cookies,
		pages:     pages,
		opt:       cfg.Panel,
		maxUpload: cfg.MaxUploadBytes,
		delimiter: cfg.Delimiter,
		logger:    logger,
	}, nil
}

// HandlePanel renders the panel named by the slug URL parameter.
func (h *Handlers) HandlePanel(w http.ResponseWriter, r *http.Request) {
	k, ok := panel.ParseKind(chi.URLParam(r, "slug"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	v := panel.Render(k, sess.Table, panel.ParseSelection(r.URL.Query()), h.opt)
	if v.Upload != nil && sess.Table != nil {
		v.Upload.FileName = sess.FileName
		v.Upload.Size = humanize.Bytes(uint64(sess.Size))
		v.Upload.Loaded = humanize.Time(sess.LoadedAt)
	}
	h.render(w, http.StatusOK, sess, v)
}

// HandleUpload loads the multipart "file" field into the caller's session,
// replacing any table loaded before.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	fail := func(status int, msg string) {
		v := panel.Render(panel.Upload, sess.Table, panel.Selection{}, h.opt)
		v.Upload.Error = msg
		h.render(w, status, sess, v)
	}

	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds the %s upload limit.", humanize.Bytes(uint64(h.maxUpload))))
			return
		}
		fail(http.StatusBadRequest, "Please choose a CSV or Excel file to upload.")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		fail(http.StatusBadRequest, "Please choose a CSV or Excel file to upload.")
		return
	}
	defer file.Close()

	format, err := parser.FormatFromName(hdr.Filename)
	if err != nil {
		h.logger.Info("rejected upload", "file", hdr.Filename, "error", err)
		fail(http.StatusBadRequest, fmt.Sprintf("Unsupported file type %q: upload a .csv or .xlsx file.", filepath.Ext(hdr.Filename)))
		return
	}
	t, err := table.Load(file, hdr.Filename, format, table.Options{Delimiter: h.delimiter})
	if err != nil {
		h.logger.Warn("upload parse failed", "file", hdr.Filename, "error", err)
		fail(http.StatusUnprocessableEntity, fmt.Sprintf("Could not parse %s: %v", hdr.Filename, err))
		return
	}

	sess = h.store.Put(sess.ID, t, session.Meta{FileName: hdr.Filename, Size: hdr.Size})
	rows, cols := t.Shape()
	h.logger.Info("table loaded", "file", hdr.Filename, "rows", rows, "cols", cols, "bytes", hdr.Size)

	v := panel.Render(panel.Upload, t, panel.Selection{}, h.opt)
	v.Upload.Success = UploadSuccess
	v.Upload.Size = humanize.Bytes(uint64(hdr.Size))
	v.Upload.Loaded = humanize.Time(sess.LoadedAt)
	h.render(w, http.StatusOK, sess, v)
}

// HandleReset forgets the caller's table.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if h.store.Drop(sess.ID) {
		h.logger.Debug("table dropped", "session", sess.ID)
	}
	http.Redirect(w, r, "/panel/upload", http.StatusSeeOther)
}

// HandleHealth reports liveness and the number of live sessions.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": h.store.Len(),
	})
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	id, err := session.ID(h.cookies, w, r)
	if err != nil {
		h.logger.Error("session cookie", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return session.Session{}, false
	}
	return h.store.Get(id), true
}

func (h *Handlers) render(w http.ResponseWriter, status int, sess session.Session, v panel.View) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, "page", newPage(sess, v)); err != nil {
		h.logger.Error("render page", "panel", v.Kind.Slug(), "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
