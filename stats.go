package main

import "net/http"

// Stats is the dashboard summary: totals plus the most recent items of each
// kind.
type Stats struct {
	TotalNotes      int         `json:"totalNotes"`
	TotalBookmarks  int         `json:"totalBookmarks"`
	RecentNotes     []*Note     `json:"recentNotes"`
	RecentBookmarks []*Bookmark `json:"recentBookmarks"`
}

const recentLimit = 5

// statsHandler processes GET /stats.
func (s *server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	notes := s.notes.List(Query{})
	bookmarks := s.bookmarks.List(Query{})
	stats := Stats{
		TotalNotes:      len(notes),
		TotalBookmarks:  len(bookmarks),
		RecentNotes:     notes[:min(recentLimit, len(notes))],
		RecentBookmarks: bookmarks[:min(recentLimit, len(bookmarks))],
	}
	writeJSON(w, http.StatusOK, stats)
}
