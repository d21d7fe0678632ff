package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yumyai/mbdash/pkg/db"
	"github.com/yumyai/mbdash/pkg/model"
	"github.com/yumyai/mbdash/pkg/render"
	"go.uber.org/zap"
)

// Multipart parts above this size are spooled to disk by net/http.
const multipartMemory = 32 << 20

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func redirectTo(w http.ResponseWriter, r *http.Request, page, file string) {
	target := render.PagePath(page)
	if file != "" {
		target += "?file=" + url.QueryEscape(file)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// UploadFiles stores one or more abundance tables in the session. Every file
// is parsed before any is stored, so one malformed table rejects the whole
// upload. A name that is already uploaded keeps its first content.
func (app *AppContext) UploadFiles(w http.ResponseWriter, r *http.Request) {
	sess := app.Sessions.FromRequest(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, "No file selected", http.StatusBadRequest)
		return
	}

	type part struct {
		name string
		data []byte
		lt   *model.LoadedTable
	}
	parts := make([]part, 0, len(headers))
	for _, fh := range headers {
		name := filepath.Base(fh.Filename)
		if !strings.EqualFold(filepath.Ext(name), ".tsv") {
			http.Error(w, fmt.Sprintf("%s: only .tsv files are accepted", name), http.StatusBadRequest)
			return
		}
		data, err := readPart(fh)
		if err != nil {
			serverError(w, r, "Failed to read upload", err)
			return
		}
		lt, err := model.LoadTable(data, name)
		if err != nil {
			badRequest(w, r, err)
			return
		}
		parts = append(parts, part{name: name, data: data, lt: lt})
	}

	// Nothing is stored until every part has parsed.
	for _, p := range parts {
		inserted, err := app.Store.Put(r.Context(), db.Upload{Session: sess.ID, Name: p.name, Data: p.data})
		if err != nil {
			serverError(w, r, "Failed to store upload", err)
			return
		}
		reqLogger(r).Info("Uploaded table",
			zap.String("session", sess.ID),
			zap.String("file", p.name),
			zap.String("size", humanize.Bytes(uint64(len(p.data)))),
			zap.String("kind", p.lt.Kind.String()),
			zap.Bool("new", inserted),
		)
	}

	redirectTo(w, r, r.FormValue("return"), parts[0].name)
}

// UploadMetadata loads the sample metadata used to group alpha diversity.
func (app *AppContext) UploadMetadata(w http.ResponseWriter, r *http.Request) {
	sess := app.Sessions.FromRequest(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	file, fh, err := r.FormFile("metadata")
	if err != nil {
		http.Error(w, "No metadata file selected", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		serverError(w, r, "Failed to read upload", err)
		return
	}
	name := filepath.Base(fh.Filename)
	md, err := model.LoadMetadata(data, name)
	if err != nil {
		badRequest(w, r, err)
		return
	}

	app.Sessions.SetMetadata(sess.ID, name, md)
	reqLogger(r).Info("Uploaded metadata",
		zap.String("session", sess.ID),
		zap.String("file", name),
		zap.Int("samples", len(md.Samples)),
		zap.Strings("features", md.Features),
	)
	redirectTo(w, r, "statistics", r.FormValue("file"))
}

// ClearSession drops every upload and the metadata of the caller's session.
func (app *AppContext) ClearSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if err := app.Store.Clear(r.Context(), c.Value); err != nil {
			serverError(w, r, "Failed to clear session", err)
			return
		}
		app.Tables.Forget(c.Value)
		app.Sessions.Clear(c.Value)
		reqLogger(r).Info("Cleared session", zap.String("session", c.Value))
	}
	expireCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
