package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yumyai/mbdash/pkg/handler/request"
	"github.com/yumyai/mbdash/pkg/model"
	"github.com/yumyai/mbdash/pkg/render"
	"go.uber.org/zap"
)

// runTable applies the table view pipeline to the selected upload.
func runTable(st *pageState, r *http.Request) (request.TableRequest, *model.DisplayTable, error) {
	kind := st.Table.Kind
	req, err := request.NewTableRequest(r.URL.Query(), kind)
	if err != nil {
		return req, nil, err
	}
	req.File = st.Table.Name

	display, err := model.RunPipeline(st.Table.Table, kind, req.Options())
	if err != nil {
		return req, nil, err
	}

	reqLogger(r).Info("Running table view",
		zap.String("file", req.File),
		zap.String("kind", kind.String()),
		zap.String("rank", req.Rank.String()),
		zap.Bool("normalize", req.Normalize),
		zap.Bool("mean", req.MeanAbundance),
		zap.String("order_by", display.SortKey),
		zap.Int("page", display.Page),
		zap.Int("rows", display.TotalRows),
	)
	return req, display, nil
}

// Main page: the selected table after classification, normalization, sorting
// and pagination.
func (app *AppContext) MainPage(w http.ResponseWriter, r *http.Request) {
	st, err := app.loadPage(w, r)
	if err != nil {
		serverError(w, r, "Failed to load table", err)
		return
	}

	data := render.OverviewData{Layout: st.layout(), PageSizes: model.PageSizes}
	if st.Table != nil {
		req, display, err := runTable(st, r)
		if err != nil {
			badRequest(w, r, err)
			return
		}
		data.Kind = st.Table.Kind
		data.Ranks = st.Table.Kind.Ranks()
		data.Request = req
		data.Display = display
	}

	if err := render.RenderOverviewPage(w, data); err != nil {
		reqLogger(r).Error(err.Error())
		http.Error(w, "Failed to render table", http.StatusInternalServerError)
	}
}

// TableAPI returns the same view as MainPage as JSON.
func (app *AppContext) TableAPI(w http.ResponseWriter, r *http.Request) {
	st, err := app.loadPage(w, r)
	if err != nil {
		serverError(w, r, "Failed to load table", err)
		return
	}
	if st.Table == nil {
		http.Error(w, noDataMessage, http.StatusNotFound)
		return
	}

	_, display, err := runTable(st, r)
	if err != nil {
		badRequest(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(display); err != nil {
		reqLogger(r).Error("Failed to encode table", zap.Error(err))
	}
}

// userError reports whether err was caused by the request rather than the
// server.
func userError(err error) bool {
	for _, target := range []error{
		model.ErrEmptyTable, model.ErrBadCell, model.ErrNegativeValue,
		model.ErrDuplicateRow, model.ErrDuplicateColumn, model.ErrRaggedRow,
		model.ErrUnknownColumn, model.ErrBadPageSize, model.ErrSameSample,
		model.ErrUnknownMetadataFormat, model.ErrUnknownRank,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
