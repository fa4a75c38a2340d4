package main

import "context"

// BookmarkSuggestion is the structured output of a bookmark metadata request.
type BookmarkSuggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Suggester produces best-effort metadata suggestions from a generative
// model. Implementations return an error on any transport or parse failure;
// callers degrade to "no suggestion" instead of surfacing it.
type Suggester interface {
	SuggestBookmarkMetadata(ctx context.Context, url string) (*BookmarkSuggestion, error)
	SuggestNoteTags(ctx context.Context, title, content string) ([]string, error)
}

// mergeTags unions suggested tags into existing ones, preserving the
// existing order and appending new tags in suggestion order.
func mergeTags(existing, suggested []string) []string {
	return dedupeTags(append(append([]string(nil), existing...), suggested...))
}

// mergeNoteDraft applies suggested tags to a note draft.
func mergeNoteDraft(d NoteDraft, tags []string) NoteDraft {
	d.Tags = mergeTags(d.Tags, tags)
	return d
}

// mergeBookmarkDraft applies a metadata suggestion to a bookmark draft.
// Suggested title and description fill only empty fields; user-entered text
// is never overwritten.
func mergeBookmarkDraft(d BookmarkDraft, s *BookmarkSuggestion) BookmarkDraft {
	if s == nil {
		return d
	}
	if d.Title == "" {
		d.Title = s.Title
	}
	if d.Description == "" {
		d.Description = s.Description
	}
	d.Tags = mergeTags(d.Tags, s.Tags)
	return d
}
