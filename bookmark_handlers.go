package main

import (
	"fmt"
	"net/http"
)

// bookmarksHandler routes requests without ID: GET for list, POST for create.
func (s *server) bookmarksHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBookmarks(w, r)
	case http.MethodPost:
		s.handleCreateBookmark(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// bookmarkHandler routes requests with ID, the favorite toggle, and the tag
// index at "/bookmarks/tags".
func (s *server) bookmarkHandler(w http.ResponseWriter, r *http.Request) {
	id, action := itemPath(r.URL.Path, "/bookmarks/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bookmark id")
		return
	}
	if id == "tags" && action == "" {
		s.handleBookmarkTags(w, r)
		return
	}
	if action == "favorite" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		s.handleToggleBookmarkFavorite(w, r, id)
		return
	}
	if action != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleGetBookmark(w, r, id)
	case http.MethodPut:
		s.handleUpdateBookmark(w, r, id)
	case http.MethodDelete:
		s.handleDeleteBookmark(w, r, id)
	default:
		methodNotAllowed(w, "GET, PUT, DELETE")
	}
}

// handleListBookmarks processes GET /bookmarks.
func (s *server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bookmarks.List(listQuery(r)))
}

// handleCreateBookmark processes POST /bookmarks.
func (s *server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	var draft BookmarkDraft
	if err := readJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookmark, err := s.bookmarks.Create(r.Context(), &Bookmark{
		URL:         draft.URL,
		Title:       draft.Title,
		Description: draft.Description,
		Tags:        dedupeTags(draft.Tags),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/bookmarks/%s", bookmark.ID))
	writeJSON(w, http.StatusCreated, bookmark)
}

// handleGetBookmark processes GET /bookmarks/{id}.
func (s *server) handleGetBookmark(w http.ResponseWriter, _ *http.Request, id string) {
	bookmark, err := s.bookmarks.Get(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

// handleUpdateBookmark processes PUT /bookmarks/{id}.
func (s *server) handleUpdateBookmark(w http.ResponseWriter, r *http.Request, id string) {
	var draft BookmarkDraft
	if err := readJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookmark, err := s.bookmarks.Update(r.Context(), id, func(b *Bookmark) {
		b.URL = draft.URL
		b.Title = draft.Title
		b.Description = draft.Description
		b.Tags = dedupeTags(draft.Tags)
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

// handleDeleteBookmark processes DELETE /bookmarks/{id}.
func (s *server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.bookmarks.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleBookmarkFavorite processes POST /bookmarks/{id}/favorite.
func (s *server) handleToggleBookmarkFavorite(w http.ResponseWriter, r *http.Request, id string) {
	bookmark, err := s.bookmarks.ToggleFavorite(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

// handleBookmarkTags processes GET /bookmarks/tags.
func (s *server) handleBookmarkTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, s.bookmarks.TagIndex())
}
