package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yumyai/mbdash/pkg/diversity"
	"github.com/yumyai/mbdash/pkg/handler/request"
	"github.com/yumyai/mbdash/pkg/model"
	"github.com/yumyai/mbdash/pkg/render"
	"go.uber.org/zap"
)

const differentFileMessage = "Please select different file."

var heatmapMetrics = []diversity.Metric{diversity.Euclidean, diversity.Correlation, diversity.JaccardMetric}

var (
	errTooManyRows     = errors.New("too many rows to cluster")
	tooManyRowsMessage = fmt.Sprintf("Too many rows to cluster (more than %d). Please choose fewer top rows.", request.MaxClusterRows)
)

// clusteredHeatmap keeps the top rows by mean abundance and orders rows and
// samples by complete linkage.
func clusteredHeatmap(t *model.AbundanceTable, top int, metric diversity.Metric) (*render.Heatmap, error) {
	sel := model.TopByMean(t, top)
	if sel.NRows() == 0 {
		return render.NewHeatmap(sel, nil, nil, true), nil
	}
	if sel.NRows() > request.MaxClusterRows || sel.NCols() > request.MaxClusterRows {
		return nil, errTooManyRows
	}
	rows := diversity.LeafOrder(sel.Values, metric)
	cols := diversity.LeafOrder(sel.SampleMajor(), metric)
	return render.NewHeatmap(sel, rows, cols, true), nil
}

// withDefaultColumn fills in the gene family bar plot column: the first
// sample unless the request names an existing one.
func withDefaultColumn(req request.GraphsRequest, lt *model.LoadedTable) request.GraphsRequest {
	if lt.Kind == model.KindGeneFamilies && !lt.Table.HasColumn(req.Column) && lt.Table.NCols() > 0 {
		req.Column = lt.Table.Columns[0]
	}
	return req
}

func chartURL(path string, q url.Values) template.URL {
	return template.URL(path + "?" + q.Encode())
}

func barplotURL(req request.GraphsRequest) template.URL {
	q := url.Values{}
	q.Set("file", req.File)
	q.Set("bar_rank", req.BarRank.String())
	if req.Column != "" {
		q.Set("column", req.Column)
		q.Set("bar_top", strconv.Itoa(req.BarTop))
	}
	return chartURL("/graphs/barplot.png", q)
}

// Graphs page: clustered heatmap and stacked bar plot.
func (app *AppContext) GraphsPage(w http.ResponseWriter, r *http.Request) {
	st, err := app.loadPage(w, r)
	if err != nil {
		serverError(w, r, "Failed to load table", err)
		return
	}

	data := render.GraphsData{Layout: st.layout()}
	if st.Table != nil {
		lt := st.Table
		req, err := request.NewGraphsRequest(r.URL.Query(), lt.Kind)
		if err != nil {
			badRequest(w, r, err)
			return
		}
		req.File = lt.Name
		req = withDefaultColumn(req, lt)

		data.Kind = lt.Kind
		data.Request = req
		data.TopOptions = request.HeatmapTopRows
		data.Metrics = heatmapMetrics

		if lt.Kind.SupportsAnalysis() {
			hm, err := clusteredHeatmap(lt.Table, req.Top, req.Metric)
			if err != nil {
				data.HeatmapMessage = tooManyRowsMessage
			} else {
				data.Heatmap = hm
				reqLogger(r).Info("Running heatmap",
					zap.String("file", lt.Name),
					zap.Int("top", req.Top),
					zap.String("metric", req.Metric.String()),
					zap.Int("rows", len(hm.Rows)),
				)
			}
		} else {
			data.HeatmapMessage = differentFileMessage
		}

		if lt.Kind.Profiled() {
			data.BarRanks = lt.Kind.AnalysisRanks(false)
			if lt.Kind == model.KindGeneFamilies {
				data.Columns = lt.Table.Columns
				data.BarTopOptions = model.BarplotTopRows
			}
			bp, err := model.BarplotData(lt.Table, lt.Kind, req.BarplotOptions())
			if err != nil {
				data.BarplotMessage = err.Error()
			} else {
				data.BarLegend = render.BarplotLegend(bp.Table.Rows)
				data.BarplotURL = barplotURL(req)
			}
		} else {
			data.BarplotMessage = differentFileMessage
		}
	}

	if err := render.RenderGraphsPage(w, data); err != nil {
		reqLogger(r).Error(err.Error())
		http.Error(w, "Failed to render graphs", http.StatusInternalServerError)
	}
}

// BarplotPNG renders the stacked bar chart of the graphs page.
func (app *AppContext) BarplotPNG(w http.ResponseWriter, r *http.Request) {
	st, err := app.loadPage(w, r)
	if err != nil {
		serverError(w, r, "Failed to load table", err)
		return
	}
	if st.Table == nil {
		http.Error(w, noDataMessage, http.StatusNotFound)
		return
	}
	if !st.Table.Kind.Profiled() {
		http.Error(w, differentFileMessage, http.StatusBadRequest)
		return
	}

	req, err := request.NewGraphsRequest(r.URL.Query(), st.Table.Kind)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	req = withDefaultColumn(req, st.Table)

	bp, err := model.BarplotData(st.Table.Table, st.Table.Kind, req.BarplotOptions())
	if err != nil {
		badRequest(w, r, err)
		return
	}
	writePNG(w, r, func(out io.Writer) error { return render.WriteBarplotPNG(out, bp) })
}

// writePNG renders into a buffer first so a chart error can still become an
// HTTP error.
func writePNG(w http.ResponseWriter, r *http.Request, draw func(io.Writer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		if errors.Is(err, render.ErrNothingToPlot) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		reqLogger(r).Error("Failed to render chart", zap.Error(err))
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
