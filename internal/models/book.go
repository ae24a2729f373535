package models

import "time"

// Author represents a catalog author. One author can have many books.
type Author struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorWithBooks is an author together with their books, resolved by an
// explicit query on the book store rather than an implicit reverse relation.
type AuthorWithBooks struct {
	Author
	Books []Book `json:"books"`
}

// Book represents a catalog book linked to an Author
type Book struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"size:255;index"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        uint      `json:"author_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateAuthorRequest defines the request body for creating an author
type CreateAuthorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// CreateBookRequest defines the request body for creating a book.
// PublicationYear is additionally checked against the current calendar
// year at write time.
type CreateBookRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=255"`
	PublicationYear int    `json:"publication_year" validate:"required"`
	AuthorID        uint   `json:"author_id" validate:"required"`
}

// UpdateBookRequest defines the request body for updating a book
type UpdateBookRequest struct {
	Title           string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	PublicationYear int    `json:"publication_year,omitempty"`
	AuthorID        uint   `json:"author_id,omitempty"`
}

// BookQuery captures the supported list filters for books
type BookQuery struct {
	Title           string // exact match
	PublicationYear int    // exact match, 0 means unset
	AuthorID        uint   // exact match, 0 means unset
	Search          string // partial match across title and author name
	Ordering        string // whitelisted: title, publication_year, optionally "-" prefixed
	Page            int
	PageSize        int
}
