package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DefaultAuthorName is the display name used when a post carries no
// author reference and no client-supplied literal.
const DefaultAuthorName = "Admin"

// Post is a stored blog post. AuthorID is a weak reference: it is kept
// as given even when it points at no existing author, and the Author
// display name is a cached snapshot resolved at write time.
type Post struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Content     string     `json:"content" db:"content"`
	Photo       string     `json:"photo" db:"photo"`
	Tags        []string   `json:"tags" db:"tags"`
	Author      string     `json:"author" db:"author"`
	AuthorID    *uuid.UUID `json:"authorId" db:"author_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Validate enforces the required fields. Runs on create and again on
// the merged entity after a partial update.
func (p Post) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title,
			validation.Required.Error("title is required"),
		),
		validation.Field(&p.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&p.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&p.Photo,
			validation.Required.Error("photo is required"),
		),
	)
}
