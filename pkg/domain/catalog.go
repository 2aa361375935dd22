package domain

// SearchResultItem is one remote catalog entry as listed in search results.
type SearchResultItem struct {
	ID            int    `json:"id"`
	TitleRomaji   string `json:"title_romaji"`
	TitleEnglish  string `json:"title_english,omitempty"` // Empty when the catalog has none
	Format        string `json:"format,omitempty"`        // e.g. TV, MOVIE, OVA
	CoverImageURL string `json:"cover_image_url,omitempty"`
}

// DisplayTitle returns the English title when present, the romaji title otherwise.
func (i SearchResultItem) DisplayTitle() string {
	if i.TitleEnglish != "" {
		return i.TitleEnglish
	}
	return i.TitleRomaji
}

// PageInfo describes one page of a remote listing.
type PageInfo struct {
	Total       int  `json:"total"`
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	HasNextPage bool `json:"has_next_page"`
}

// SearchPage pairs a page of results with the PageInfo describing it.
type SearchPage struct {
	Items    []SearchResultItem `json:"items"`
	PageInfo PageInfo           `json:"page_info"`
}

// FuzzyDate is a partially known calendar date. Any component may be missing.
type FuzzyDate struct {
	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
	Day   *int `json:"day,omitempty"`
}

// MediaDetail is the full catalog entry used to build a FieldRecord.
type MediaDetail struct {
	SearchResultItem

	Episodes     *int      `json:"episodes,omitempty"`
	Status       string    `json:"status,omitempty"` // e.g. FINISHED, NOT_YET_RELEASED
	StartDate    FuzzyDate `json:"start_date"`
	EndDate      FuzzyDate `json:"end_date"`
	Duration     *int      `json:"duration,omitempty"` // Minutes per episode
	AverageScore *int      `json:"average_score,omitempty"`
	Genres       []string  `json:"genres,omitempty"`
	Description  string    `json:"description,omitempty"` // May contain HTML
	SiteURL      string    `json:"site_url,omitempty"`
}
