package config

// Report artifact file names, written in this order by the batch reporter.
const (
	ArtifactYearTrend  = "publications_by_year.png"
	ArtifactHeatmap    = "publications_heatmap.png"
	ArtifactJournals   = "top_journals.png"
	ArtifactSources    = "top_sources.png"
	ArtifactWordCloud  = "titles_wordcloud.png"
	ArtifactCumulative = "cumulative_publications.png"
)

// ReportArtifacts lists every batch artifact in render order.
var ReportArtifacts = []string{
	ArtifactYearTrend,
	ArtifactHeatmap,
	ArtifactJournals,
	ArtifactSources,
	ArtifactWordCloud,
	ArtifactCumulative,
}

// Dashboard download names
const (
	DownloadCSV  = "filtered_metadata.csv"
	DownloadXLSX = "filtered_metadata.xlsx"
)

// Ranking sizes and label limits
const (
	TopJournalsLimit  = 15
	TopSourcesLimit   = 12
	JournalLabelWidth = 50
)

// Header names
const (
	HeaderRequestID = "X-Request-ID"
)
