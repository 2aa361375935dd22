package domain

// FieldRecord is the canonical intermediate representation produced by both
// ingestion paths (user-typed structured blocks and remote catalog entries).
// Every field is always present, possibly as an empty string.
type FieldRecord struct {
	Title      string `json:"title"`
	Genres     string `json:"genres"`
	Type       string `json:"type"`
	Rating     string `json:"rating"`
	Status     string `json:"status"`
	FirstAired string `json:"first_aired"`
	LastAired  string `json:"last_aired"`
	Runtime    string `json:"runtime"`
	Episodes   string `json:"episodes"`
	Synopsis   string `json:"synopsis"`
}
