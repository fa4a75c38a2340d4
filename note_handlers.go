package main

import (
	"fmt"
	"net/http"
)

// notesHandler routes requests without ID: GET for list, POST for create.
func (s *server) notesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListNotes(w, r)
	case http.MethodPost:
		s.handleCreateNote(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// noteHandler routes requests with ID: GET, PUT, DELETE, and the favorite
// toggle. "/notes/tags" serves the tag index.
func (s *server) noteHandler(w http.ResponseWriter, r *http.Request) {
	id, action := itemPath(r.URL.Path, "/notes/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing note id")
		return
	}
	if id == "tags" && action == "" {
		s.handleNoteTags(w, r)
		return
	}
	if action == "favorite" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		s.handleToggleNoteFavorite(w, r, id)
		return
	}
	if action != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleGetNote(w, r, id)
	case http.MethodPut:
		s.handleUpdateNote(w, r, id)
	case http.MethodDelete:
		s.handleDeleteNote(w, r, id)
	default:
		methodNotAllowed(w, "GET, PUT, DELETE")
	}
}

// handleListNotes processes GET /notes.
func (s *server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.notes.List(listQuery(r)))
}

// handleCreateNote processes POST /notes.
func (s *server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var draft NoteDraft
	if err := readJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	note, err := s.notes.Create(r.Context(), &Note{
		Title:   draft.Title,
		Content: draft.Content,
		Tags:    dedupeTags(draft.Tags),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/notes/%s", note.ID))
	writeJSON(w, http.StatusCreated, note)
}

// handleGetNote processes GET /notes/{id}.
func (s *server) handleGetNote(w http.ResponseWriter, _ *http.Request, id string) {
	note, err := s.notes.Get(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// handleUpdateNote processes PUT /notes/{id}.
func (s *server) handleUpdateNote(w http.ResponseWriter, r *http.Request, id string) {
	var draft NoteDraft
	if err := readJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	note, err := s.notes.Update(r.Context(), id, func(n *Note) {
		n.Title = draft.Title
		n.Content = draft.Content
		n.Tags = dedupeTags(draft.Tags)
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// handleDeleteNote processes DELETE /notes/{id}.
func (s *server) handleDeleteNote(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.notes.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleNoteFavorite processes POST /notes/{id}/favorite.
func (s *server) handleToggleNoteFavorite(w http.ResponseWriter, r *http.Request, id string) {
	note, err := s.notes.ToggleFavorite(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// handleNoteTags processes GET /notes/tags.
func (s *server) handleNoteTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, s.notes.TagIndex())
}
