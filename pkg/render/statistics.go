package render

import (
	"html/template"
	"io"

	"github.com/yumyai/mbdash/pkg/diversity"
	"github.com/yumyai/mbdash/pkg/handler/request"
	"github.com/yumyai/mbdash/pkg/model"
)

type StatisticsData struct {
	Layout
	Kind    model.TableKind
	Request request.StatisticsRequest
	Ranks   []model.Rank

	// Alpha and beta need a metadata file and a profiled table.
	NeedsMetadata    bool
	DiversityMessage string
	Features         []string
	AlphaMeasures    []diversity.AlphaMeasure
	AlphaGroups      []diversity.AlphaGroup
	AlphaURL         template.URL
	BetaMeasures     []diversity.BetaMeasure
	Dropped          []string
	BetaError        string
	Distances        *Heatmap
	PCoAURL          template.URL
	Ordination       *diversity.Ordination

	// Differential comparison.
	Columns        []string
	DiffTopOptions []int
	DiffMessage    string
	Differential   *Heatmap
}

var statisticsTemplate *template.Template

const statisticsContent = `
{{define "content"}}
<form class="controls" action="/statistics" method="GET">
	<input type="hidden" name="file" value="{{.Selected}}"></input>
	<div class="form-row">
		<label>Select taxonomic level:
		<select name="rank" onchange="this.form.submit()">
		{{range .Ranks}}
			<option value="{{.}}" {{if eq . $.Request.Rank}}selected{{end}}>{{.LabelFor $.Kind}}</option>
		{{end}}
		</select>
		</label>
	</div>

	<section class="tab">
	<h3>Alpha diversity</h3>
	{{if .NeedsMetadata}}
		<h4>Alpha and beta analysis requires metadata file. Please upload it below:</h4>
	{{else if .DiversityMessage}}
		<h4>{{.DiversityMessage}}</h4>
	{{else}}
		<label>Select feature to group by:
		<select name="feature" onchange="this.form.submit()">
		{{range .Features}}
			<option value="{{.}}" {{if eq . $.Request.Feature}}selected{{end}}>{{.}}</option>
		{{end}}
		</select>
		</label>
		<label>Alpha diversity measure:
		<select name="alpha" onchange="this.form.submit()">
		{{range .AlphaMeasures}}
			<option value="{{.}}" {{if eq . $.Request.Alpha}}selected{{end}}>{{.}}</option>
		{{end}}
		</select>
		</label>
		<img class="chart" src="{{.AlphaURL}}" alt="Alpha diversity"></img>
		<table class="summary">
			<thead><tr><th>Group</th><th>n</th><th>Min</th><th>Q1</th><th>Median</th><th>Q3</th><th>Max</th><th>Mean</th></tr></thead>
			<tbody>
			{{range .AlphaGroups}}
				<tr><td>{{.Name}}</td><td>{{len .Values}}</td><td>{{num .Min}}</td><td>{{num .Q1}}</td><td>{{num .Median}}</td><td>{{num .Q3}}</td><td>{{num .Max}}</td><td>{{num .Mean}}</td></tr>
			{{end}}
			</tbody>
		</table>
	{{end}}
	</section>

	<section class="tab">
	<h3>Beta diversity</h3>
	{{if .NeedsMetadata}}
		<h4>Alpha and beta analysis requires metadata file. Please upload it below:</h4>
	{{else if .DiversityMessage}}
		<h4>{{.DiversityMessage}}</h4>
	{{else}}
		<label>Beta diversity measure:
		<select name="beta" onchange="this.form.submit()">
		{{range .BetaMeasures}}
			<option value="{{.}}" {{if eq . $.Request.Beta}}selected{{end}}>{{.}}</option>
		{{end}}
		</select>
		</label>
		{{if .Dropped}}
		<p class="error">Column dropped due to zero abundance values: {{range $i, $c := .Dropped}}{{if $i}}, {{end}}{{$c}}{{end}}.</p>
		{{end}}
		{{if .BetaError}}
		<p class="error">{{.BetaError}}</p>
		{{else}}
		<h4>Heatmap of {{.Request.Beta}} distance matrix</h4>
		{{template "heatmap" .Distances}}
		<img class="chart" src="{{.PCoAURL}}" alt="PCoA"></img>
		<table class="summary">
			<thead><tr><th>Sample</th>{{range $k := .PCAxes}}<th>PC{{add $k 1}} ({{pct ($.Ordination.Proportion $k)}})</th>{{end}}</tr></thead>
			<tbody>
			{{range $i, $id := .Ordination.IDs}}
				<tr><td>{{$id}}</td>{{range $k := $.PCAxes}}<td>{{num (index (index $.Ordination.Coordinates $i) $k)}}</td>{{end}}</tr>
			{{end}}
			</tbody>
		</table>
		{{end}}
	{{end}}
	</section>

	<section class="tab">
	<h3>Differential comparison</h3>
	<label>First sample:
	<select name="first" onchange="this.form.submit()">
	{{range .Columns}}<option value="{{.}}" {{if eq . $.Request.First}}selected{{end}}>{{.}}</option>{{end}}
	</select>
	</label>
	<label>Second sample:
	<select name="second" onchange="this.form.submit()">
	{{range .Columns}}<option value="{{.}}" {{if eq . $.Request.Second}}selected{{end}}>{{.}}</option>{{end}}
	</select>
	</label>
	<label>Number of top rows:
	<select name="diff_top" onchange="this.form.submit()">
	{{range .DiffTopOptions}}<option value="{{.}}" {{if eq . $.Request.DiffTop}}selected{{end}}>{{.}}</option>{{end}}
	</select>
	</label>
	{{if .DiffMessage}}
		<h4>{{.DiffMessage}}</h4>
	{{else if .Differential}}
		{{template "heatmap" .Differential}}
	{{end}}
	</section>
</form>

{{if .NeedsMetadata}}
<form class="controls" action="/metadata" method="POST" enctype="multipart/form-data">
	<input type="hidden" name="file" value="{{.Selected}}"></input>
	<label>Upload metadata:<input type="file" name="metadata" accept=".tsv,.csv"></input></label>
	<input type="submit" value="Upload"></input>
</form>
{{end}}
{{end}}`

// PCAxes are the coordinate columns listed under the PCoA plot, limited to
// the axes the ordination has.
func (d StatisticsData) PCAxes() []int {
	if d.Ordination == nil {
		return nil
	}
	n := min(3, len(d.Ordination.Eigenvalues))
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func RenderStatisticsPage(w io.Writer, data StatisticsData) error {
	data.Active = "statistics"
	if data.Title == "" {
		data.Title = "Statistics"
	}
	return statisticsTemplate.ExecuteTemplate(w, "layout", data)
}
