package http

import (
	"embed"
	"html/template"
	"time"

	"metadash/internal/config"
	"metadash/internal/dataprocessing"
	"metadash/internal/services"
	"metadash/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

// PageTitle is the heading of the dashboard page
const PageTitle = "CORD-19 Metadata Dashboard (Sample Data)"

var dashboardPage = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"isSelected": func(selected, journal string) bool {
		return selected == journal
	},
}).ParseFS(templateFS, "templates/dashboard.html"))

type chartFrame struct {
	Name  string
	Title string
}

var chartFrames = []chartFrame{
	{services.ChartYear, "Publications by Year"},
	{services.ChartHeatmap, "Heatmap: Publications per Journal per Year"},
	{services.ChartWordCloud, "Word Cloud of Paper Titles"},
}

type pageData struct {
	Title        string
	Version      string
	View         *services.View
	Preview      []domain.Paper
	Query        template.URL
	AllJournals  string
	Charts       []chartFrame
	DownloadCSV  string
	DownloadXLSX string
}

func newPageData(view *services.View) pageData {
	return pageData{
		Title:        PageTitle,
		Version:      versionString,
		View:         view,
		Preview:      view.Preview,
		Query:        template.URL(filterQuery(view.Filter)),
		AllJournals:  dataprocessing.AllJournals,
		Charts:       chartFrames,
		DownloadCSV:  config.DownloadCSV,
		DownloadXLSX: config.DownloadXLSX,
	}
}
