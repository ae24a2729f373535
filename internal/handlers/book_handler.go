package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// BookHandler handles HTTP requests for the book/author catalog
type BookHandler struct {
	bookRepository   repositories.BookRepository
	authorRepository repositories.AuthorRepository
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookRepo repositories.BookRepository, authorRepo repositories.AuthorRepository) *BookHandler {
	return &BookHandler{
		bookRepository:   bookRepo,
		authorRepository: authorRepo,
	}
}

// RegisterBookRoutes registers catalog routes that require authentication
func (h *BookHandler) RegisterBookRoutes(g *echo.Group) {
	g.POST("/books/create/", h.CreateBook)
	g.PUT("/books/update/:id/", h.UpdateBook)
	g.DELETE("/books/delete/:id/", h.DeleteBook)
	g.POST("/authors/create/", h.CreateAuthor)
}

// RegisterPublicBookRoutes registers public read-only catalog routes
func (h *BookHandler) RegisterPublicBookRoutes(g *echo.Group) {
	g.GET("/books/", h.GetBooks)
	g.GET("/books/:id/", h.GetBook)
	g.GET("/authors/", h.GetAuthors)
	g.GET("/authors/:id/", h.GetAuthor)
}

// validatePublicationYear rejects years after the current calendar year
func validatePublicationYear(year int) error {
	if year > time.Now().Year() {
		return echo.NewHTTPError(http.StatusBadRequest, "publication_year cannot be in the future.")
	}
	return nil
}

// CreateBook creates a new book
func (h *BookHandler) CreateBook(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validatePublicationYear(req.PublicationYear); err != nil {
		return err
	}

	if _, err := h.authorRepository.GetAuthorByID(req.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Author not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	book := &models.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}

	if err := h.bookRepository.CreateBook(book); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, book)
}

// GetBook retrieves a book by ID, public
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	book, err := h.bookRepository.GetBookByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, book)
}

// GetBooks lists books, public, with exact filters, free-text search over
// title and author name, and whitelisted ordering
func (h *BookHandler) GetBooks(c echo.Context) error {
	page, limit := parsePagination(c)

	query := models.BookQuery{
		Title:    c.QueryParam("title"),
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
		Page:     page,
		PageSize: limit,
	}

	if v := c.QueryParam("publication_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid publication_year")
		}
		query.PublicationYear = year
	}
	if v := c.QueryParam("author"); v != "" {
		authorID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		query.AuthorID = uint(authorID)
	}

	books, total, err := h.bookRepository.GetBooks(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"books": books},
		"meta":    paginationMeta(page, limit, total),
	})
}

// UpdateBook updates an existing book, authenticated only
func (h *BookHandler) UpdateBook(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	var req models.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.bookRepository.GetBookByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Title != "" {
		book.Title = req.Title
	}
	if req.PublicationYear != 0 {
		if err := validatePublicationYear(req.PublicationYear); err != nil {
			return err
		}
		book.PublicationYear = req.PublicationYear
	}
	if req.AuthorID != 0 {
		if _, err := h.authorRepository.GetAuthorByID(req.AuthorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Author not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		book.AuthorID = req.AuthorID
	}

	if err := h.bookRepository.UpdateBook(book); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, book)
}

// DeleteBook deletes a book, authenticated only
func (h *BookHandler) DeleteBook(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	if _, err := h.bookRepository.GetBookByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.bookRepository.DeleteBook(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateAuthor creates a new author, authenticated only
func (h *BookHandler) CreateAuthor(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	author := &models.Author{Name: req.Name}
	if err := h.authorRepository.CreateAuthor(author); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, author)
}

// GetAuthors lists all authors, public
func (h *BookHandler) GetAuthors(c echo.Context) error {
	authors, err := h.authorRepository.GetAuthors()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, authors)
}

// GetAuthor retrieves an author with their books, public
func (h *BookHandler) GetAuthor(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
	}

	author, err := h.authorRepository.GetAuthorByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Author not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	books, err := h.authorRepository.GetBooksByAuthorID(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, models.AuthorWithBooks{Author: *author, Books: books})
}
