package main

import (
	"mime"
	"net/http"

	"github.com/yumyai/mbdash/internal/util"
	"github.com/yumyai/mbdash/logger"
	"github.com/yumyai/mbdash/pkg/handler"
	"go.uber.org/zap"
)

func NewRouter(app *handler.AppContext, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Pages
	mux.HandleFunc("GET /{$}", app.MainPage)
	mux.HandleFunc("GET /graphs", app.GraphsPage)
	mux.HandleFunc("GET /statistics", app.StatisticsPage)

	// Charts
	mux.HandleFunc("GET /graphs/barplot.png", app.BarplotPNG)
	mux.HandleFunc("GET /statistics/alpha.png", app.AlphaPNG)
	mux.HandleFunc("GET /statistics/pcoa.png", app.PCoAPNG)

	// Forms
	mux.HandleFunc("POST /upload", app.UploadFiles)
	mux.HandleFunc("POST /metadata", app.UploadMetadata)
	mux.HandleFunc("POST /session/clear", app.ClearSession)

	// API routes
	mux.HandleFunc("GET /api/v1/table", app.TableAPI)
	mux.HandleFunc("GET /api/v1/health", app.HealthCheck)

	setupStaticFiles(mux, staticDir)
	return mux
}

func setupStaticFiles(mux *http.ServeMux, dir string) {
	if !util.DirExists(dir) {
		logger.Warn("Static directory not found, pages will be unstyled", zap.String("dir", dir))
		return
	}
	_ = mime.AddExtensionType(".js", "text/javascript")
	_ = mime.AddExtensionType(".css", "text/css")
	fs := http.FileServer(http.Dir(dir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
}
