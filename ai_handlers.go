package main

import (
	"net/http"

	"go.uber.org/zap"
)

// The suggestion endpoints take the current form draft and return it with
// AI suggestions merged in. Suggestions never overwrite user-entered text,
// and any adapter failure returns the draft unchanged: the create/edit flow
// must not break because the model did.

// noteTagsSuggestionHandler processes POST /ai/note-tags.
func (s *server) noteTagsSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var draft NoteDraft
	if err := readJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.suggester == nil {
		writeJSON(w, http.StatusOK, draft)
		return
	}
	tags, err := s.suggester.SuggestNoteTags(r.Context(), draft.Title, draft.Content)
	if err != nil {
		s.logger.Warn("note tag suggestion failed", zap.Error(err))
		writeJSON(w, http.StatusOK, draft)
		return
	}
	writeJSON(w, http.StatusOK, mergeNoteDraft(draft, tags))
}

// bookmarkMetadataSuggestionHandler processes POST /ai/bookmark-metadata.
func (s *server) bookmarkMetadataSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var draft BookmarkDraft
	if err := readJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.suggester == nil || draft.URL == "" {
		writeJSON(w, http.StatusOK, draft)
		return
	}
	meta, err := s.suggester.SuggestBookmarkMetadata(r.Context(), draft.URL)
	if err != nil {
		s.logger.Warn("bookmark metadata suggestion failed", zap.Error(err))
		writeJSON(w, http.StatusOK, draft)
		return
	}
	writeJSON(w, http.StatusOK, mergeBookmarkDraft(draft, meta))
}
