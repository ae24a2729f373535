package repositories

import (
	"github.com/socialite-app/backend/internal/models"
	"gorm.io/gorm"
)

// AuthorRepository defines the interface for catalog author operations
type AuthorRepository interface {
	CreateAuthor(author *models.Author) error
	GetAuthorByID(id uint) (*models.Author, error)
	GetAuthors() ([]models.Author, error)
	// GetBooksByAuthorID is the explicit secondary query standing in for a
	// reverse relation from author to books.
	GetBooksByAuthorID(authorID uint) ([]models.Book, error)
	DeleteAuthor(id uint) error
}

// PostgresAuthorRepository implements AuthorRepository for PostgreSQL
type PostgresAuthorRepository struct {
	db *gorm.DB
}

// NewPostgresAuthorRepository creates a new PostgresAuthorRepository
func NewPostgresAuthorRepository(db *gorm.DB) *PostgresAuthorRepository {
	return &PostgresAuthorRepository{db: db}
}

// CreateAuthor creates a new author
func (r *PostgresAuthorRepository) CreateAuthor(author *models.Author) error {
	return r.db.Create(author).Error
}

// GetAuthorByID retrieves an author by ID
func (r *PostgresAuthorRepository) GetAuthorByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAuthors retrieves all authors ordered by name
func (r *PostgresAuthorRepository) GetAuthors() ([]models.Author, error) {
	var authors []models.Author
	if err := r.db.Order("name").Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// GetBooksByAuthorID retrieves all books of an author ordered by title
func (r *PostgresAuthorRepository) GetBooksByAuthorID(authorID uint) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("author_id = ?", authorID).Order("title").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// DeleteAuthor deletes an author and cascades their books in one transaction
func (r *PostgresAuthorRepository) DeleteAuthor(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.Book{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Author{}, id).Error
	})
}
