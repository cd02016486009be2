package musicbrainz

// SearchResponse models the release search payload.
type SearchResponse struct {
	Created  string    `json:"created"`
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Releases []Release `json:"releases"`
}

// Release is a single search candidate.
type Release struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Score        int            `json:"score"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
}

// ArtistCredit attributes a release to an artist. Artist is nil when the
// credit only carries a display name.
type ArtistCredit struct {
	Name       string  `json:"name"`
	JoinPhrase string  `json:"joinphrase"`
	Artist     *Artist `json:"artist"`
}

// Artist is the canonical artist entity behind a credit.
type Artist struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SortName string  `json:"sort-name"`
	Aliases  []Alias `json:"aliases"`
}

// Alias is an alternate artist name. Name may be absent in the payload.
type Alias struct {
	Name     *string `json:"name"`
	SortName string  `json:"sort-name"`
	Locale   string  `json:"locale"`
	Primary  *bool   `json:"primary"`
}

// AliasName returns the alias text or "" when absent.
func (a Alias) AliasName() string {
	if a.Name == nil {
		return ""
	}
	return *a.Name
}

// ReleaseDetail is the release lookup payload.
type ReleaseDetail struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Status string   `json:"status"`
	Date   string   `json:"date"`
	Media  []Medium `json:"media"`
}

// Medium is one disc or side of a release.
type Medium struct {
	Position   int     `json:"position"`
	Format     string  `json:"format"`
	TrackCount *int    `json:"track-count"`
	Discs      []Disc  `json:"discs"`
	Tracks     []Track `json:"tracks"`
}

// Disc is a disc ID attached to a medium.
type Disc struct {
	ID      string `json:"id"`
	Sectors int    `json:"sectors"`
}

// Track is a single track entry on a medium.
type Track struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	Length   *int   `json:"length"`
}

// FirstTrackCount returns the track count of the first medium, if present.
func (d *ReleaseDetail) FirstTrackCount() (int, bool) {
	if d == nil || len(d.Media) == 0 || d.Media[0].TrackCount == nil {
		return 0, false
	}
	return *d.Media[0].TrackCount, true
}
