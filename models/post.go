package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is the composite author value embedded in every post.
type Author struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
}

// DisplayName renders the author the way API consumers see it: "first last".
func (a Author) DisplayName() string {
	return a.FirstName + " " + a.LastName
}

func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FirstName, validation.Required.Error("first name is required")),
		validation.Field(&a.LastName, validation.Required.Error("last name is required")),
	)
}

// BlogPost is a single blog post document
// Collection: posts
type BlogPost struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author  Author             `bson:"author" json:"author"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
	Created time.Time          `bson:"created" json:"created"`
}

// Validate checks the fields the collection schema requires.
func (p BlogPost) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Author),
		validation.Field(&p.Title, validation.Required.Error("title is required")),
	)
	return wrapValidation(err)
}

// PostUpdate describes a partial update. Nil fields are left untouched.
type PostUpdate struct {
	Title   *string    `json:"title,omitempty"`
	Content *string    `json:"content,omitempty"`
	Author  *Author    `json:"author,omitempty"`
	Created *time.Time `json:"created,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Author == nil && u.Created == nil
}

func (u PostUpdate) Validate() error {
	if u.IsEmpty() {
		return NewValidationError(map[string]string{"body": "no updatable fields supplied"})
	}
	err := validation.ValidateStruct(&u,
		validation.Field(&u.Title, validation.NilOrNotEmpty.Error("title must not be empty")),
		validation.Field(&u.Author),
	)
	return wrapValidation(err)
}

// Apply copies the supplied fields onto p.
func (u PostUpdate) Apply(p *BlogPost) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Author != nil {
		p.Author = *u.Author
	}
	if u.Created != nil {
		p.Created = *u.Created
	}
}
