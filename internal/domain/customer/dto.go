// internal/domain/customer/dto.go
package customer

type LoadURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type SelectRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type RecentFilterRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type PageRequest struct {
	Page int `json:"page"`
}

type AskRequest struct {
	Question string `json:"question" binding:"required,max=2000"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type DatasetInfo struct {
	LoadID       string     `json:"load_id"`
	Source       string     `json:"source"`
	Kind         SourceKind `json:"kind"`
	LoadedAt     string     `json:"loaded_at"`
	RecordCount  int        `json:"record_count"`
	RejectedRows int        `json:"rejected_rows"`
}

// HistoryPage is one page of the active (possibly filtered) result set.
type HistoryPage struct {
	Records    []CustomerRecord `json:"records"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

// SessionView is everything a presentation layer needs to render the session.
type SessionView struct {
	Loading     bool                 `json:"loading"`
	LastError   string               `json:"last_error,omitempty"`
	Dataset     *DatasetInfo         `json:"dataset,omitempty"`
	Query       string               `json:"query"`
	Suggestions []Suggestion         `json:"suggestions"`
	NoMatch     bool                 `json:"no_match"`
	Selected    string               `json:"selected_phone,omitempty"`
	RecentOnly  bool                 `json:"recent_only"`
	Summary     *CustomerSummaryData `json:"summary,omitempty"`
	History     *HistoryPage         `json:"history,omitempty"`
}
