package chart

// Row is one ranked entry from the weekly album chart.
//
// Fields hold the display strings exactly as the page shows them (after
// whitespace cleanup). TrackCount stays empty until enrichment fills it.
type Row struct {
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Rank         string `json:"rank"`
	WeeksOnChart string `json:"weeks_on_chart"`
	TrackCount   string `json:"track_count"`
}
