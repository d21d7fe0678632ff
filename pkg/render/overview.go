package render

import (
	"html/template"
	"io"

	"github.com/yumyai/mbdash/pkg/handler/request"
	"github.com/yumyai/mbdash/pkg/model"
)

type OverviewData struct {
	Layout
	Kind      model.TableKind
	Ranks     []model.Rank
	PageSizes []int
	Request   request.TableRequest
	Display   *model.DisplayTable
}

var overviewTemplate *template.Template

const overviewContent = `
{{define "content"}}
<form class="controls" action="/" method="GET">
	<input type="hidden" name="file" value="{{.Selected}}"></input>
	<div class="form-row">
		<label>Level:
		<select name="rank" onchange="this.form.submit()">
		{{range .Ranks}}
			<option value="{{.}}" {{if eq . $.Request.Rank}}selected{{end}}>{{.LabelFor $.Kind}}</option>
		{{end}}
		</select>
		</label>
		{{if .Kind.CanNormalize}}
		<label><input type="checkbox" name="normalize" {{if .Request.Normalize}}checked{{end}} onchange="this.form.submit()"></input> Normalize</label>
		{{end}}
		<label title="{{if .Request.Normalize}}Unavailable while normalized{{end}}"><input type="checkbox" name="mean" {{if .Request.MeanAbundance}}checked{{end}} {{if .Request.Normalize}}disabled{{end}} onchange="this.form.submit()"></input> Mean abundance</label>
	</div>
	<div class="form-row">
		<label>Sort by:
		<select name="order_by">
		{{range .Display.SortKeys}}
			<option value="{{.}}" {{if eq . $.Display.SortKey}}selected{{end}}>{{.}}</option>
		{{end}}
		</select>
		</label>
		<label>Direction:
		<select name="order_dir">
			<option value="asc" {{if .Display.Ascending}}selected{{end}}>Ascending</option>
			<option value="desc" {{if not .Display.Ascending}}selected{{end}}>Descending</option>
		</select>
		</label>
		<label>Page size:
		<select name="page_size">
		{{range .PageSizes}}
			<option value="{{.}}" {{if eq . $.Display.PageSize}}selected{{end}}>{{.}}</option>
		{{end}}
		</select>
		</label>
		<input type="submit" value="Apply"></input>
	</div>
	<div class="pagination">
		{{if gt .Display.Page 1}}<button name="page" value="{{sub .Display.Page 1}}">Previous</button>{{end}}
		<span>Page {{.Display.Page}} of {{.Display.TotalPages}} ({{comma .Display.TotalRows}} rows)</span>
		{{if lt .Display.Page .Display.TotalPages}}<button name="page" value="{{add .Display.Page 1}}">Next</button>{{end}}
	</div>
</form>
{{template "table" .Display.Table}}
{{end}}`

func RenderOverviewPage(w io.Writer, data OverviewData) error {
	data.Active = "overview"
	if data.Title == "" {
		data.Title = "Overview"
	}
	return overviewTemplate.ExecuteTemplate(w, "layout", data)
}
