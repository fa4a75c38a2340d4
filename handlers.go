package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// server wires the two collections and the suggester into HTTP handlers.
type server struct {
	notes     *Collection[*Note]
	bookmarks *Collection[*Bookmark]
	suggester Suggester
	logger    *zap.Logger
}

func newServer(notes *Collection[*Note], bookmarks *Collection[*Bookmark], suggester Suggester, logger *zap.Logger) *server {
	return &server{notes: notes, bookmarks: bookmarks, suggester: suggester, logger: logger}
}

// routes builds the request mux.
func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes", s.notesHandler)
	mux.HandleFunc("/notes/", s.noteHandler)
	mux.HandleFunc("/bookmarks", s.bookmarksHandler)
	mux.HandleFunc("/bookmarks/", s.bookmarkHandler)
	mux.HandleFunc("/ai/note-tags", s.noteTagsSuggestionHandler)
	mux.HandleFunc("/ai/bookmark-metadata", s.bookmarkMetadataSuggestionHandler)
	mux.HandleFunc("/stats", s.statsHandler)
	return mux
}

// itemPath splits "/{kind}/rest" into the item id and an optional trailing
// action ("favorite"), e.g. /notes/abc/favorite -> ("abc", "favorite").
func itemPath(path, prefix string) (id, action string) {
	rest := strings.TrimPrefix(path, prefix)
	id, action, _ = strings.Cut(rest, "/")
	return id, action
}

// listQuery extracts the filter parameters shared by both list endpoints.
func listQuery(r *http.Request) Query {
	params := r.URL.Query()
	return Query{
		Search:        params.Get("q"),
		FavoritesOnly: params.Get("favorites") == "true",
		Tag:           params.Get("tag"),
	}
}

// readJSON decodes a single JSON object from the request body, rejecting
// unknown fields and trailing content.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request payload: %w", err)
	}
	if t, err := dec.Token(); err != io.EOF || t != nil {
		return errors.New("request body must only contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps manager errors onto HTTP statuses: rejected drafts are 422 with
// the validation message, unknown ids 404, anything else a logged 500.
func (s *server) fail(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}
