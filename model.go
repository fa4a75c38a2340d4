package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Collection kinds, also used as persistence namespaces.
const (
	KindNotes     = "notes"
	KindBookmarks = "bookmarks"
)

// Item is the contract both entity types satisfy so a single generic
// collection can manage either. The type parameter is the concrete pointer
// type, so Clone can return it without casts.
type Item[T any] interface {
	ItemID() string
	Clone() T
	Validate() error
	// Stamp assigns identity and creation metadata to a freshly created item.
	Stamp(id string, now time.Time)
	// Touch refreshes the update timestamp on types that track one.
	Touch(now time.Time)
	Favorite() bool
	SetFavorite(fav bool)
	TagList() []string
	// SearchText returns every field a text search should match against.
	SearchText() []string
	SortKey() time.Time
}

// Note is a free-form text note.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content" validate:"notblank"`
	Tags       []string  `json:"tags"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (n *Note) ItemID() string { return n.ID }

func (n *Note) Clone() *Note {
	c := *n
	if n.Tags != nil {
		c.Tags = append([]string(nil), n.Tags...)
	}
	return &c
}

func (n *Note) Validate() error {
	if err := validate.Struct(n); err != nil {
		return validationError(err)
	}
	return nil
}

func (n *Note) Stamp(id string, now time.Time) {
	n.ID = id
	n.IsFavorite = false
	n.CreatedAt = now
	n.UpdatedAt = now
}

func (n *Note) Touch(now time.Time) { n.UpdatedAt = now }

func (n *Note) Favorite() bool { return n.IsFavorite }

func (n *Note) SetFavorite(fav bool) { n.IsFavorite = fav }

func (n *Note) TagList() []string { return n.Tags }

func (n *Note) SortKey() time.Time { return n.UpdatedAt }

func (n *Note) SearchText() []string { return append([]string{n.Title, n.Content}, n.Tags...) }

// Bookmark is a saved URL with optional metadata.
type Bookmark struct {
	ID          string    `json:"id"`
	URL         string    `json:"url" validate:"required,url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	IsFavorite  bool      `json:"isFavorite"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (b *Bookmark) ItemID() string { return b.ID }

func (b *Bookmark) Clone() *Bookmark {
	c := *b
	if b.Tags != nil {
		c.Tags = append([]string(nil), b.Tags...)
	}
	return &c
}

func (b *Bookmark) Validate() error {
	if err := validate.Struct(b); err != nil {
		return validationError(err)
	}
	return nil
}

func (b *Bookmark) Stamp(id string, now time.Time) {
	b.ID = id
	b.IsFavorite = false
	b.CreatedAt = now
}

// Touch is a no-op: bookmarks only track creation time.
func (b *Bookmark) Touch(time.Time) {}

func (b *Bookmark) Favorite() bool { return b.IsFavorite }

func (b *Bookmark) SetFavorite(fav bool) { b.IsFavorite = fav }

func (b *Bookmark) TagList() []string { return b.Tags }

func (b *Bookmark) SortKey() time.Time { return b.CreatedAt }

func (b *Bookmark) SearchText() []string {
	return append([]string{b.Title, b.URL, b.Description}, b.Tags...)
}

// NoteDraft is the payload for creating or updating a note.
type NoteDraft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// BookmarkDraft is the payload for creating or updating a bookmark.
type BookmarkDraft struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "required" accepts whitespace-only strings; notes must have real content.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validationError converts validator output into a user-facing ValidationError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "notblank", "required":
			return &ValidationError{Field: field, Msg: fmt.Sprintf("%s is required", field)}
		case "url":
			return &ValidationError{Field: field, Msg: fmt.Sprintf("%s must be a valid URL", field)}
		default:
			return &ValidationError{Field: field, Msg: fmt.Sprintf("%s is invalid", field)}
		}
	}
	return &ValidationError{Msg: err.Error()}
}

// dedupeTags removes duplicate tags while preserving first-seen order.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
