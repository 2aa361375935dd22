package anilist

import "github.com/aretw0/animefmt/pkg/domain"

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type searchResponse struct {
	Data struct {
		Page *struct {
			PageInfo struct {
				Total       int  `json:"total"`
				CurrentPage int  `json:"currentPage"`
				LastPage    int  `json:"lastPage"`
				HasNextPage bool `json:"hasNextPage"`
			} `json:"pageInfo"`
			Media []media `json:"media"`
		} `json:"Page"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type mediaResponse struct {
	Data struct {
		Media *media `json:"Media"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type fuzzyDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

type media struct {
	ID     int    `json:"id"`
	Format string `json:"format"`
	Title  struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
	} `json:"title"`
	Episodes     *int      `json:"episodes"`
	Status       string    `json:"status"`
	StartDate    fuzzyDate `json:"startDate"`
	EndDate      fuzzyDate `json:"endDate"`
	Duration     *int      `json:"duration"`
	AverageScore *int      `json:"averageScore"`
	Genres       []string  `json:"genres"`
	Description  string    `json:"description"`
	SiteURL      string    `json:"siteUrl"`
	CoverImage   struct {
		Large      string `json:"large"`
		ExtraLarge string `json:"extraLarge"`
	} `json:"coverImage"`
}

func (m media) item() domain.SearchResultItem {
	cover := m.CoverImage.ExtraLarge
	if cover == "" {
		cover = m.CoverImage.Large
	}
	return domain.SearchResultItem{
		ID:            m.ID,
		TitleRomaji:   m.Title.Romaji,
		TitleEnglish:  m.Title.English,
		Format:        m.Format,
		CoverImageURL: cover,
	}
}

func (m media) detail() *domain.MediaDetail {
	return &domain.MediaDetail{
		SearchResultItem: m.item(),
		Episodes:         m.Episodes,
		Status:           m.Status,
		StartDate:        domain.FuzzyDate(m.StartDate),
		EndDate:          domain.FuzzyDate(m.EndDate),
		Duration:         m.Duration,
		AverageScore:     m.AverageScore,
		Genres:           m.Genres,
		Description:      m.Description,
		SiteURL:          m.SiteURL,
	}
}
