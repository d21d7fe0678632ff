package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"

	"github.com/yumyai/mbdash/pkg/diversity"
	"github.com/yumyai/mbdash/pkg/handler/request"
	"github.com/yumyai/mbdash/pkg/model"
	"github.com/yumyai/mbdash/pkg/render"
	"go.uber.org/zap"
)

const (
	sameSampleMessage = "Please select two different columns"
	noFeatureMessage  = "Metadata has no feature columns to group by."
)

type betaResult struct {
	Distances  *diversity.DistanceMatrix
	Ordination *diversity.Ordination
	Dropped    []string
}

// betaDiversity drops empty samples, then builds the distance matrix and its
// ordination.
func betaDiversity(log *zap.Logger, t *model.AbundanceTable, measure diversity.BetaMeasure) (*betaResult, error) {
	kept, dropped := model.DropZeroSamples(t)
	if len(dropped) > 0 {
		log.Info("Dropped samples with zero abundance", zap.Strings("samples", dropped))
	}
	res := &betaResult{Dropped: dropped}

	dm, err := diversity.Beta(kept.Columns, kept.SampleMajor(), measure)
	if err != nil {
		return res, err
	}
	ord, err := diversity.Ordinate(dm)
	if err != nil {
		return res, err
	}
	res.Distances, res.Ordination = dm, ord
	return res, nil
}

// distanceTable exposes a distance matrix as a table for the heatmap.
func distanceTable(dm *diversity.DistanceMatrix) *model.AbundanceTable {
	n := dm.Len()
	t := &model.AbundanceTable{IndexName: "Sample", Rows: dm.IDs, Columns: dm.IDs, Values: make([][]float64, n)}
	for i := 0; i < n; i++ {
		t.Values[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			t.Values[i][j] = dm.At(i, j)
		}
	}
	return t
}

// withDefaults fills in the grouping feature and the two compared samples.
// The second sample defaults to the second column so the comparison shows
// something on first load.
func withDefaults(req request.StatisticsRequest, t *model.AbundanceTable, md *model.Metadata) request.StatisticsRequest {
	if md != nil && len(md.Features) > 0 && !slices.Contains(md.Features, req.Feature) {
		req.Feature = md.Features[0]
	}
	if t.NCols() > 0 {
		if !t.HasColumn(req.First) {
			req.First = t.Columns[0]
		}
		if !t.HasColumn(req.Second) {
			req.Second = t.Columns[min(1, t.NCols()-1)]
		}
	}
	return req
}

func statisticsQuery(req request.StatisticsRequest) url.Values {
	q := url.Values{}
	q.Set("file", req.File)
	q.Set("rank", req.Rank.String())
	q.Set("feature", req.Feature)
	q.Set("alpha", req.Alpha.String())
	q.Set("beta", req.Beta.String())
	return q
}

// Statistics page: alpha and beta diversity (with metadata) and the
// differential comparison of two samples.
func (app *AppContext) StatisticsPage(w http.ResponseWriter, r *http.Request) {
	st, err := app.loadPage(w, r)
	if err != nil {
		serverError(w, r, "Failed to load table", err)
		return
	}

	data := render.StatisticsData{Layout: st.layout()}
	if st.Table != nil {
		if err := app.fillStatistics(&data, st, r); err != nil {
			badRequest(w, r, err)
			return
		}
	}

	if err := render.RenderStatisticsPage(w, data); err != nil {
		reqLogger(r).Error(err.Error())
		http.Error(w, "Failed to render statistics", http.StatusInternalServerError)
	}
}

func (app *AppContext) fillStatistics(data *render.StatisticsData, st *pageState, r *http.Request) error {
	lt := st.Table
	md := st.Session.Metadata
	req, err := request.NewStatisticsRequest(r.URL.Query(), lt.Kind)
	if err != nil {
		return err
	}
	req.File = lt.Name
	req = withDefaults(req, lt.Table, md)

	data.Kind = lt.Kind
	data.Request = req
	data.Ranks = lt.Kind.AnalysisRanks(true)
	data.Columns = lt.Table.Columns
	data.DiffTopOptions = model.DifferentialTopRows

	if !lt.Kind.Profiled() {
		data.DiffMessage = differentFileMessage
		data.DiversityMessage = differentFileMessage
		return nil
	}
	classified := model.Classify(lt.Table, req.Rank)

	diff, err := model.Differential(classified, req.First, req.Second, req.DiffTop)
	switch {
	case errors.Is(err, model.ErrSameSample):
		data.DiffMessage = sameSampleMessage
	case err != nil:
		return err
	default:
		data.Differential = render.NewHeatmap(diff, nil, nil, false)
	}

	if md == nil {
		data.NeedsMetadata = true
		return nil
	}
	if len(md.Features) == 0 {
		data.DiversityMessage = noFeatureMessage
		return nil
	}

	data.Features = md.Features
	data.AlphaMeasures = []diversity.AlphaMeasure{diversity.Shannon, diversity.Simpson}
	data.BetaMeasures = []diversity.BetaMeasure{diversity.BrayCurtis, diversity.Jaccard}

	groups, err := diversity.GroupAlpha(diversity.AlphaBySample(classified, req.Alpha), md, req.Feature)
	if err != nil {
		return err
	}
	data.AlphaGroups = groups
	data.AlphaURL = chartURL("/statistics/alpha.png", statisticsQuery(req))

	beta, err := betaDiversity(reqLogger(r), classified, req.Beta)
	data.Dropped = beta.Dropped
	if err != nil {
		data.BetaError = fmt.Sprintf("Beta diversity unavailable: %v", err)
		return nil
	}
	data.Distances = render.NewHeatmap(distanceTable(beta.Distances), nil, nil, false)
	data.Ordination = beta.Ordination
	data.PCoAURL = chartURL("/statistics/pcoa.png", statisticsQuery(req))

	reqLogger(r).Info("Running statistics",
		zap.String("file", lt.Name),
		zap.String("rank", req.Rank.String()),
		zap.String("feature", req.Feature),
		zap.String("alpha", req.Alpha.String()),
		zap.String("beta", req.Beta.String()),
		zap.Int("groups", len(groups)),
	)
	return nil
}

// statisticsInput resolves what both chart endpoints need. ok is false when
// an error response has been written.
func (app *AppContext) statisticsInput(w http.ResponseWriter, r *http.Request) (req request.StatisticsRequest, t *model.AbundanceTable, md *model.Metadata, ok bool) {
	st, err := app.loadPage(w, r)
	if err != nil {
		serverError(w, r, "Failed to load table", err)
		return req, nil, nil, false
	}
	if st.Table == nil {
		http.Error(w, noDataMessage, http.StatusNotFound)
		return req, nil, nil, false
	}
	if !st.Table.Kind.Profiled() {
		http.Error(w, differentFileMessage, http.StatusBadRequest)
		return req, nil, nil, false
	}
	md = st.Session.Metadata
	if md == nil {
		http.Error(w, "Metadata not uploaded", http.StatusNotFound)
		return req, nil, nil, false
	}

	req, err = request.NewStatisticsRequest(r.URL.Query(), st.Table.Kind)
	if err != nil {
		badRequest(w, r, err)
		return req, nil, nil, false
	}
	req = withDefaults(req, st.Table.Table, md)
	return req, model.Classify(st.Table.Table, req.Rank), md, true
}

// AlphaPNG plots alpha diversity grouped by a metadata feature.
func (app *AppContext) AlphaPNG(w http.ResponseWriter, r *http.Request) {
	req, t, md, ok := app.statisticsInput(w, r)
	if !ok {
		return
	}
	groups, err := diversity.GroupAlpha(diversity.AlphaBySample(t, req.Alpha), md, req.Feature)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	writePNG(w, r, func(out io.Writer) error { return render.WriteAlphaPNG(out, groups, req.Alpha) })
}

// PCoAPNG plots the first two principal coordinates of the beta diversity
// distance matrix.
func (app *AppContext) PCoAPNG(w http.ResponseWriter, r *http.Request) {
	req, t, _, ok := app.statisticsInput(w, r)
	if !ok {
		return
	}
	beta, err := betaDiversity(reqLogger(r), t, req.Beta)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	writePNG(w, r, func(out io.Writer) error { return render.WritePCoAPNG(out, beta.Ordination, req.Beta) })
}
