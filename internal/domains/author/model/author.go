package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Author is a profile a post can point at. Authors are created and
// listed only; rename/delete is deliberately not exposed.
type Author struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Profession string    `json:"profession" db:"profession"`
	Link       string    `json:"link" db:"link"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateAuthorRequest - POST /api/v1/authors
type CreateAuthorRequest struct {
	Name       string `json:"name"`
	Profession string `json:"profession"`
	Link       string `json:"link"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Profession,
			validation.Required.Error("profession is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Link,
			validation.Required.Error("link is required"),
			validation.Length(1, 2048),
		),
	)
}

// ToEntity converts the request to an Author entity.
func (r *CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		Name:       r.Name,
		Profession: r.Profession,
		Link:       r.Link,
	}
}

// AuthorResponse is the external representation. All identifiers are
// strings on the wire.
type AuthorResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Profession string    `json:"profession"`
	Link       string    `json:"link"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToResponse converts Author to AuthorResponse.
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:         a.ID.String(),
		Name:       a.Name,
		Profession: a.Profession,
		Link:       a.Link,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
