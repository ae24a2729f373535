package repositories

import (
	"github.com/socialite-app/backend/internal/models"
	"gorm.io/gorm"
)

// BookRepository defines the interface for catalog book operations
type BookRepository interface {
	CreateBook(book *models.Book) error
	GetBookByID(id uint) (*models.Book, error)
	// GetBooks applies the exact-match filters, free-text search and
	// whitelisted ordering of the query, paginated.
	GetBooks(query models.BookQuery) ([]models.Book, int64, error)
	UpdateBook(book *models.Book) error
	DeleteBook(id uint) error
}

// PostgresBookRepository implements BookRepository for PostgreSQL
type PostgresBookRepository struct {
	db *gorm.DB
}

// NewPostgresBookRepository creates a new PostgresBookRepository
func NewPostgresBookRepository(db *gorm.DB) *PostgresBookRepository {
	return &PostgresBookRepository{db: db}
}

// CreateBook creates a new book
func (r *PostgresBookRepository) CreateBook(book *models.Book) error {
	return r.db.Create(book).Error
}

// GetBookByID retrieves a book by ID
func (r *PostgresBookRepository) GetBookByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// orderings whitelists the sortable book columns
var orderings = map[string]string{
	"title":             "title ASC",
	"-title":            "title DESC",
	"publication_year":  "publication_year ASC",
	"-publication_year": "publication_year DESC",
}

// GetBooks retrieves books matching the query
func (r *PostgresBookRepository) GetBooks(query models.BookQuery) ([]models.Book, int64, error) {
	q := r.db.Model(&models.Book{})

	if query.Title != "" {
		q = q.Where("books.title = ?", query.Title)
	}
	if query.PublicationYear != 0 {
		q = q.Where("books.publication_year = ?", query.PublicationYear)
	}
	if query.AuthorID != 0 {
		q = q.Where("books.author_id = ?", query.AuthorID)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Joins("JOIN authors ON authors.id = books.author_id").
			Where("LOWER(books.title) LIKE LOWER(?) OR LOWER(authors.name) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := orderings[query.Ordering]
	if !ok {
		order = orderings["title"]
	}

	var books []models.Book
	offset := (query.Page - 1) * query.PageSize
	err := q.Order(order).Offset(offset).Limit(query.PageSize).Find(&books).Error
	return books, total, err
}

// UpdateBook updates an existing book
func (r *PostgresBookRepository) UpdateBook(book *models.Book) error {
	return r.db.Save(book).Error
}

// DeleteBook deletes a book by ID
func (r *PostgresBookRepository) DeleteBook(id uint) error {
	return r.db.Delete(&models.Book{}, id).Error
}
