package dto

import (
	"time"

	"blog-api/models"
)

// PostDTO is the view object returned to API consumers.
// Author is flattened to a single "first last" display string.
type PostDTO struct {
	ID      string    `json:"id" example:"5f1d7a3e9b1e8a0012345678"`
	Author  string    `json:"author" example:"April Oneal"`
	Title   string    `json:"title" example:"here is a title"`
	Content string    `json:"content" example:"so much content"`
	Created time.Time `json:"created"`
}

// NewPostDTO constructs PostDTO from models.BlogPost
func NewPostDTO(p models.BlogPost) PostDTO {
	return PostDTO{
		ID:      p.ID.Hex(),
		Author:  p.Author.DisplayName(),
		Title:   p.Title,
		Content: p.Content,
		Created: p.Created,
	}
}

// AuthorDTO is the author shape accepted on input.
type AuthorDTO struct {
	FirstName string `json:"firstName" example:"April"`
	LastName  string `json:"lastName" example:"Oneal"`
}

func (a AuthorDTO) Model() models.Author {
	return models.Author{FirstName: a.FirstName, LastName: a.LastName}
}

// CreatePostRequest is the POST /posts payload.
type CreatePostRequest struct {
	Author  AuthorDTO  `json:"author"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Created *time.Time `json:"created,omitempty"`
}

// Model converts the request into an unsaved post.
func (r CreatePostRequest) Model() *models.BlogPost {
	p := &models.BlogPost{
		Author:  r.Author.Model(),
		Title:   r.Title,
		Content: r.Content,
	}
	if r.Created != nil {
		p.Created = *r.Created
	}
	return p
}

// UpdatePostRequest is the PUT /posts/:id payload. Absent fields are left untouched.
// ID is optional; when supplied it must match the path id.
type UpdatePostRequest struct {
	ID      string     `json:"id,omitempty"`
	Author  *AuthorDTO `json:"author,omitempty"`
	Title   *string    `json:"title,omitempty"`
	Content *string    `json:"content,omitempty"`
	Created *time.Time `json:"created,omitempty"`
}

func (r UpdatePostRequest) Model() models.PostUpdate {
	upd := models.PostUpdate{
		Title:   r.Title,
		Content: r.Content,
		Created: r.Created,
	}
	if r.Author != nil {
		a := r.Author.Model()
		upd.Author = &a
	}
	return upd
}
