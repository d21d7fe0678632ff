package render

import (
	"html/template"

	"github.com/yumyai/mbdash/pkg/db"
)

// Layout is the part of every page outside the main content: navigation and
// the file sidebar.
type Layout struct {
	Title        string
	Active       string // overview, graphs or statistics
	Files        []db.UploadInfo
	Selected     string
	MetadataName string
	// Message replaces the page content, e.g. when no file is uploaded.
	Message string
	Error   string
}

// ActivePath is the route of the active page.
func (l Layout) ActivePath() string {
	return PagePath(l.Active)
}

// PagePath maps a page name to its route; unknown names go to the overview.
func PagePath(page string) string {
	switch page {
	case "graphs":
		return "/graphs"
	case "statistics":
		return "/statistics"
	default:
		return "/"
	}
}

var baseTemplate *template.Template

func init() {
	mainTmpl := `
	{{define "layout"}}
	<!DOCTYPE html>
	<html>
	<head>
	    <link href="/static/style.css" rel="stylesheet"></link>
		<title>{{.Title}} - Microbiome Dashboard</title>
	</head>
	<body>
		<header class="app-header">
			<h1 class="app-name">Microbiome Dashboard</h1>
			<nav>
				<a href="{{query "/" "file" .Selected}}" {{if eq .Active "overview"}}class="active"{{end}}>Overview</a>
				<a href="{{query "/graphs" "file" .Selected}}" {{if eq .Active "graphs"}}class="active"{{end}}>Graphs</a>
				<a href="{{query "/statistics" "file" .Selected}}" {{if eq .Active "statistics"}}class="active"{{end}}>Statistics</a>
			</nav>
		</header>
		<div class="app-body">
			{{template "sidebar" .}}
			<main>
				{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
				{{if .Message}}
					<h2>{{.Message}}</h2>
				{{else}}
					<h2>{{.Title}}</h2>
					{{template "content" .}}
				{{end}}
			</main>
		</div>
	</body>
	</html>
	{{end}}`

	sidebarTmpl := `
	{{define "sidebar"}}
	<aside class="sidebar">
		<form action="/upload" method="POST" enctype="multipart/form-data">
			<input type="hidden" name="return" value="{{.Active}}"></input>
			<label>Select TSV files to upload
				<input type="file" name="files" accept=".tsv" multiple></input>
			</label>
			<input type="submit" value="Upload"></input>
		</form>
		{{if .Files}}
		<form action="{{.ActivePath}}" method="GET">
			<label>Select file:
			<select name="file" onchange="this.form.submit()">
			{{range .Files}}
				<option value="{{.Name}}" {{if eq .Name $.Selected}}selected{{end}}>{{.Name}} ({{bytes .Size}})</option>
			{{end}}
			</select>
			</label>
		</form>
		{{end}}
		{{if .MetadataName}}<p class="metadata">Metadata: {{.MetadataName}}</p>{{end}}
		<form action="/session/clear" method="POST">
			<input type="submit" value="Clear session"></input>
		</form>
	</aside>
	{{end}}`

	tableTmpl := `
	{{define "table"}}
	<table class="abundance">
		<thead>
			<tr><th>{{.IndexName}}</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
		</thead>
		<tbody>
		{{range $i, $row := .Rows}}
			<tr><td class="label">{{$row}}</td>{{range index $.Values $i}}<td>{{num .}}</td>{{end}}</tr>
		{{end}}
		</tbody>
	</table>
	{{end}}`

	heatmapTmpl := `
	{{define "heatmap"}}
	<table class="heatmap">
		<thead>
			<tr><th></th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
		</thead>
		<tbody>
		{{range .Rows}}
			<tr>
				<th title="{{.Title}}">{{.Label}}</th>
				{{range .Cells}}<td style="background-color: {{.Color}}" title="{{num .Value}}"></td>{{end}}
			</tr>
		{{end}}
		</tbody>
	</table>
	<p class="scale">Scale: {{num .Min}} to {{num .Max}}</p>
	{{end}}`

	baseTemplate = template.Must(template.New("base").Funcs(funcs).Parse(mainTmpl))
	baseTemplate = template.Must(baseTemplate.Parse(sidebarTmpl))
	baseTemplate = template.Must(baseTemplate.Parse(tableTmpl))
	baseTemplate = template.Must(baseTemplate.Parse(heatmapTmpl))

	overviewTemplate = pageTemplate(overviewContent)
	graphsTemplate = pageTemplate(graphsContent)
	statisticsTemplate = pageTemplate(statisticsContent)
}

// pageTemplate adds a page's "content" block to the shared layout.
func pageTemplate(content string) *template.Template {
	return template.Must(template.Must(baseTemplate.Clone()).Parse(content))
}
