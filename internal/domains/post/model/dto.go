package model

import (
	"encoding/json"
	"strings"
	"time"

	authormodel "blogcms-backend/internal/domains/author/model"
)

// TagList accepts either a JSON array of strings or a single
// comma-separated string, which is how the admin form submits tags.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if strings.TrimSpace(s) == "" {
		*t = TagList{}
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*t = out
	return nil
}

// CreatePostRequest - POST /api/v1/posts
type CreatePostRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	Photo       string  `json:"photo"`
	Tags        TagList `json:"tags"`
	Author      string  `json:"author"`
	AuthorID    string  `json:"authorId"`
}

// ToEntity converts the request to a Post entity. Author resolution
// happens in the service; here the literal is carried through.
func (r *CreatePostRequest) ToEntity() *Post {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &Post{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Photo:       r.Photo,
		Tags:        tags,
		Author:      r.Author,
	}
}

// UpdatePostRequest - PUT /api/v1/posts/:id
// All fields optional: present fields replace, absent fields are
// retained. An explicit struct keeps unknown fields out of storage.
type UpdatePostRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Content     *string  `json:"content,omitempty"`
	Photo       *string  `json:"photo,omitempty"`
	Tags        *TagList `json:"tags,omitempty"`
	Author      *string  `json:"author,omitempty"`
	AuthorID    *string  `json:"authorId,omitempty"`
}

// ApplyToEntity merges the present fields into an existing Post.
// AuthorID handling lives in the service since clearing it ("" →
// null) and re-resolving the display name need the author store.
func (r *UpdatePostRequest) ApplyToEntity(p *Post) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.Photo != nil {
		p.Photo = *r.Photo
	}
	if r.Tags != nil {
		p.Tags = []string(*r.Tags)
	}
	if r.Author != nil {
		p.Author = *r.Author
	}
}

// AuthorDetails is the embedded author shape on a serialized post.
type AuthorDetails struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Profession string    `json:"profession"`
	Link       string    `json:"link"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostResponse is the external representation of a post.
// authorId is omitted when absent; authorDetails is an explicit null
// when the reference does not resolve.
type PostResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Content       string         `json:"content"`
	Photo         string         `json:"photo"`
	Tags          []string       `json:"tags"`
	Author        string         `json:"author"`
	AuthorID      *string        `json:"authorId,omitempty"`
	AuthorDetails *AuthorDetails `json:"authorDetails"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewPostResponse joins a stored post with its optionally resolved
// author. Display name precedence: resolved author's name, then the
// stored literal, then "Admin". Pure function of its inputs, so
// serializing the same pair twice yields identical output.
func NewPostResponse(p *Post, a *authormodel.Author) *PostResponse {
	resp := &PostResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		Photo:       p.Photo,
		Tags:        p.Tags,
		Author:      p.Author,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	if p.AuthorID != nil {
		id := p.AuthorID.String()
		resp.AuthorID = &id
	}

	if a != nil {
		resp.Author = a.Name
		resp.AuthorDetails = &AuthorDetails{
			ID:         a.ID.String(),
			Name:       a.Name,
			Profession: a.Profession,
			Link:       a.Link,
			CreatedAt:  a.CreatedAt,
			UpdatedAt:  a.UpdatedAt,
		}
	}

	if resp.Author == "" {
		resp.Author = DefaultAuthorName
	}

	return resp
}
