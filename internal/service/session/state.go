// internal/service/session/state.go
package session

import (
	"strings"
	"time"

	"customer-lookup-service/internal/domain/customer"
	"customer-lookup-service/internal/service/lookup"
)

// State is the whole interactive session. Every transition below is a pure
// function from the old state to a new one; derived data (suggestions,
// filtered set, summary) is recomputed by Render.
type State struct {
	Dataset    *customer.Dataset
	Query      string
	Selected   string
	Results    []customer.CustomerRecord
	RecentOnly bool
	Page       int
	Loading    bool
	LastError  string
}

// Initial is the empty session.
func Initial() State {
	return State{Page: 1}
}

// LoadStarted marks a load in flight without touching the current data.
func LoadStarted(st State) State {
	st.Loading = true
	return st
}

// Loaded replaces the dataset wholesale and clears everything derived from the old one.
func Loaded(st State, ds *customer.Dataset) State {
	return State{
		Dataset:    ds,
		RecentOnly: st.RecentOnly,
		Page:       1,
	}
}

// LoadFailed keeps the previous data and records the failure message.
func LoadFailed(st State, err error) State {
	st.Loading = false
	st.LastError = err.Error()
	return st
}

// Queried stores the in-progress query text.
func Queried(st State, query string) State {
	st.Query = query
	return st
}

// Selected makes phone's purchase history the active result set.
func Selected(st State, phone string) State {
	var records []customer.CustomerRecord
	if st.Dataset != nil {
		records = st.Dataset.Records
	}
	st.Query = ""
	st.Selected = phone
	st.Results = lookup.History(records, phone)
	st.Page = 1
	return st
}

// RecentToggled switches the recency window and returns to the first page.
func RecentToggled(st State, enabled bool) State {
	st.RecentOnly = enabled
	st.Page = 1
	return st
}

// PageChanged moves to page, ignoring pages outside the filtered set.
func PageChanged(st State, page int, now time.Time) State {
	filtered := lookup.FilterRecent(st.Results, st.RecentOnly, now)
	if !lookup.ValidPage(page, len(filtered)) {
		return st
	}
	st.Page = page
	return st
}

// Reset returns to the empty session.
func Reset(State) State {
	return Initial()
}

// Suggestions derives the candidate list for the current query.
func (st State) Suggestions() []customer.Suggestion {
	if st.Dataset == nil {
		return []customer.Suggestion{}
	}
	return lookup.Suggest(st.Dataset.Records, st.Query)
}

// Filtered is the active result set after the recency toggle.
func (st State) Filtered(now time.Time) []customer.CustomerRecord {
	return lookup.FilterRecent(st.Results, st.RecentOnly, now)
}

// Render derives the presentation view of st at time now.
func Render(st State, now time.Time) customer.SessionView {
	view := customer.SessionView{
		Loading:     st.Loading,
		LastError:   st.LastError,
		Query:       st.Query,
		Suggestions: st.Suggestions(),
		Selected:    st.Selected,
		RecentOnly:  st.RecentOnly,
	}
	if st.Dataset != nil {
		view.Dataset = datasetInfo(st.Dataset)
		view.NoMatch = strings.TrimSpace(st.Query) != "" && len(view.Suggestions) == 0
	}
	if len(st.Results) > 0 {
		filtered := st.Filtered(now)
		view.Summary = lookup.Summarize(st.Results, filtered)
		view.History = lookup.Page(filtered, st.Page)
	}
	return view
}

func datasetInfo(ds *customer.Dataset) *customer.DatasetInfo {
	return &customer.DatasetInfo{
		LoadID:       ds.LoadID,
		Source:       ds.Source,
		Kind:         ds.Kind,
		LoadedAt:     ds.LoadedAt.Format(time.RFC3339),
		RecordCount:  ds.Count(),
		RejectedRows: ds.Rejected,
	}
}
