package render

import (
	"html/template"
	"io"

	"github.com/yumyai/mbdash/pkg/diversity"
	"github.com/yumyai/mbdash/pkg/handler/request"
	"github.com/yumyai/mbdash/pkg/model"
)

type GraphsData struct {
	Layout
	Kind    model.TableKind
	Request request.GraphsRequest

	// Heatmap tab. HeatmapMessage replaces the heatmap when set.
	HeatmapMessage string
	TopOptions     []int
	Metrics        []diversity.Metric
	Heatmap        *Heatmap

	// Bar plot tab. BarplotMessage replaces the chart when set.
	BarplotMessage string
	BarRanks       []model.Rank
	Columns        []string
	BarTopOptions  []int
	BarplotURL     template.URL
	BarLegend      []LegendEntry
}

var graphsTemplate *template.Template

const graphsContent = `
{{define "content"}}
<section class="tab">
	<h3>Heatmap</h3>
	{{if .HeatmapMessage}}
		<h4>{{.HeatmapMessage}}</h4>
	{{else}}
	<form class="controls" action="/graphs" method="GET">
		<input type="hidden" name="file" value="{{.Selected}}"></input>
		<input type="hidden" name="bar_rank" value="{{.Request.BarRank}}"></input>
		<input type="hidden" name="column" value="{{.Request.Column}}"></input>
		<input type="hidden" name="bar_top" value="{{.Request.BarTop}}"></input>
		<label title="Number of top rows ordered by descending mean abundance">Number of top taxa:
		<select name="top" onchange="this.form.submit()">
		{{range .TopOptions}}
			{{if eq . 0}}
			<option value="all" {{if eq $.Request.Top 0}}selected{{end}}>all</option>
			{{else}}
			<option value="{{.}}" {{if eq . $.Request.Top}}selected{{end}}>{{.}}</option>
			{{end}}
		{{end}}
		</select>
		</label>
		<label title="Distance metric for the dendrograms">Distance metric:
		<select name="metric" onchange="this.form.submit()">
		{{range .Metrics}}
			<option value="{{.}}" {{if eq . $.Request.Metric}}selected{{end}}>{{.}}</option>
		{{end}}
		</select>
		</label>
	</form>
	{{template "heatmap" .Heatmap}}
	<h4>Legend:</h4>
	<ol class="legend">
	{{range .Heatmap.Legend}}<li>{{.}}</li>{{end}}
	</ol>
	{{end}}
</section>

<section class="tab">
	<h3>Barplots</h3>
	{{if .BarplotMessage}}
		<h4>{{.BarplotMessage}}</h4>
	{{else}}
	<form class="controls" action="/graphs" method="GET">
		<input type="hidden" name="file" value="{{.Selected}}"></input>
		<input type="hidden" name="top" value="{{if eq .Request.Top 0}}all{{else}}{{.Request.Top}}{{end}}"></input>
		<input type="hidden" name="metric" value="{{.Request.Metric}}"></input>
		<label>Select taxonomic level:
		<select name="bar_rank" onchange="this.form.submit()">
		{{range .BarRanks}}
			<option value="{{.}}" {{if eq . $.Request.BarRank}}selected{{end}}>{{.LabelFor $.Kind}}</option>
		{{end}}
		</select>
		</label>
		{{if .Columns}}
		<label>Select column:
		<select name="column" onchange="this.form.submit()">
		{{range .Columns}}
			<option value="{{.}}" {{if eq . $.Request.Column}}selected{{end}}>{{.}}</option>
		{{end}}
		</select>
		</label>
		<label>Number of top rows:
		<select name="bar_top" onchange="this.form.submit()">
		{{range .BarTopOptions}}
			<option value="{{.}}" {{if eq . $.Request.BarTop}}selected{{end}}>{{.}}</option>
		{{end}}
		</select>
		</label>
		{{end}}
	</form>
	<img class="chart" src="{{.BarplotURL}}" alt="Bar plot"></img>
	<ul class="swatches">
	{{range .BarLegend}}<li><span class="swatch" style="background-color: {{.Color}}"></span>{{.Label}}</li>{{end}}
	</ul>
	{{end}}
</section>
{{end}}`

func RenderGraphsPage(w io.Writer, data GraphsData) error {
	data.Active = "graphs"
	if data.Title == "" {
		data.Title = "Graphs"
	}
	return graphsTemplate.ExecuteTemplate(w, "layout", data)
}
