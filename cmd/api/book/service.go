package book

//go:generate mockgen -destination=mocks/mock_repository.go -package=bookmock github.com/library-service/cmd/api/book Repository,Notifier

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ServiceAPI interface {
	CreateBook(ctx context.Context, req CreateBookRequest) (Book, error)
	UpdateBook(ctx context.Context, req UpdateBookRequest) (Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (Book, error)
	DeleteBook(ctx context.Context, req DeleteBookRequest) error
	DeleteAllBooks(ctx context.Context) (int, error)
	SearchBooks(ctx context.Context, req SearchBooksRequest) ([]Book, error)

	Checkout(ctx context.Context, req ConfirmedCheckoutRequest) (Book, error)
	Checkin(ctx context.Context, id uuid.UUID) (Book, error)

	CreateAuthor(ctx context.Context, req CreateAuthorRequest) (Author, error)
	UpdateAuthor(ctx context.Context, req UpdateAuthorRequest) (Author, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (Author, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
	SearchAuthors(ctx context.Context, query string) ([]Author, error)

	CreateBorrower(ctx context.Context, req CreateBorrowerRequest) (Borrower, error)
	UpdateBorrower(ctx context.Context, req UpdateBorrowerRequest) (Borrower, error)
	GetBorrower(ctx context.Context, id uuid.UUID) (Borrower, error)
	DeleteBorrower(ctx context.Context, id uuid.UUID) error
	SearchBorrowers(ctx context.Context, query string) ([]Borrower, error)
}

// Repository is the Catalog Store. Reads of books populate Author and Loan.Borrower.
type Repository interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Repository, driver.Tx, error)

	CreateBook(ctx context.Context, b Book) (Book, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (Book, error)
	UpdateBook(ctx context.Context, b Book) (Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	DeleteAllBooks(ctx context.Context) (int, error)
	SearchBooks(ctx context.Context, query string, availability Availability) ([]Book, error)
	// SetLoan writes the loan only if the book is still available, else ErrResponseCheckoutConflict.
	SetLoan(ctx context.Context, bookID uuid.UUID, loan Loan) (Book, error)
	// ClearLoan removes the loan only if the book is still borrowed, else ErrResponseCheckoutConflict.
	ClearLoan(ctx context.Context, bookID uuid.UUID) (Book, error)
	ReleaseLoans(ctx context.Context, borrowerID uuid.UUID) (int, error)
	UnlinkAuthor(ctx context.Context, authorID uuid.UUID) (int, error)

	CreateAuthor(ctx context.Context, a Author) (Author, error)
	GetAuthorByID(ctx context.Context, id uuid.UUID) (Author, error)
	GetAuthorByName(ctx context.Context, name string) (Author, error)
	UpdateAuthor(ctx context.Context, a Author) (Author, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
	SearchAuthors(ctx context.Context, query string) ([]Author, error)

	CreateBorrower(ctx context.Context, b Borrower) (Borrower, error)
	GetBorrowerByID(ctx context.Context, id uuid.UUID) (Borrower, error)
	UpdateBorrower(ctx context.Context, b Borrower) (Borrower, error)
	DeleteBorrower(ctx context.Context, id uuid.UUID) error
	SearchBorrowers(ctx context.Context, query string) ([]Borrower, error)
}

type Notifier interface {
	BookCheckedOut(ctx context.Context, b Book) error
	BookCheckedIn(ctx context.Context, b Book) error
}

type Service struct {
	repo                 Repository
	ntfy                 Notifier
	notificationsTimeout time.Duration
	now                  func() time.Time
	logger               *zap.Logger
}

type Option func(*Service)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

/* ntfy may be nil, in which case no notifications are sent. */
func NewService(repo Repository, ntfy Notifier, notificationsTimeout time.Duration, options ...Option) *Service {
	s := &Service{
		repo:                 repo,
		ntfy:                 ntfy,
		notificationsTimeout: notificationsTimeout,
		now:                  time.Now,
		logger:               zap.NewNop(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Round(time.Millisecond)
}

// -- Books --

type CreateBookRequest struct {
	Title       string
	AuthorName  string
	Category    string
	Price       *float64
	ImageURL    string
	Description string
}

type UpdateBookRequest struct {
	ID          uuid.UUID
	Title       string
	AuthorName  string
	Category    string
	Price       *float64
	PreAuthorID *uuid.UUID
	ImageURL    string
	Description string
}

type DeleteBookRequest struct {
	ID       uuid.UUID
	AuthorID *uuid.UUID
}

type SearchBooksRequest struct {
	Query        string
	Availability Availability
}

func validateBookFields(title string, price *float64) error {
	if strings.TrimSpace(title) == "" {
		return ErrResponseBookEntryBlankFields
	}
	if price != nil && *price < 0 {
		return ErrResponsePriceInvalid
	}
	return nil
}

func (s *Service) CreateBook(ctx context.Context, req CreateBookRequest) (Book, error) {
	if err := validateBookFields(req.Title, req.Price); err != nil {
		return Book{}, err
	}

	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return Book{}, fmt.Errorf("creating book: %w", err)
	}
	defer tx.Rollback()

	now := s.timestamp()
	newBook := Book{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if name := strings.TrimSpace(req.AuthorName); name != "" {
		author, err := s.resolveAuthor(ctx, txRepo, name, now)
		if err != nil {
			return Book{}, fmt.Errorf("creating book: %w", err)
		}
		newBook.AuthorID = &author.ID
	}

	created, err := txRepo.CreateBook(ctx, newBook)
	if err != nil {
		return Book{}, fmt.Errorf("creating book: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Book{}, fmt.Errorf("creating book, committing: %w", err)
	}
	return created, nil
}

/* Finds the author with this exact name, creating it when there is none. */
func (s *Service) resolveAuthor(ctx context.Context, repo Repository, name string, now time.Time) (Author, error) {
	author, err := repo.GetAuthorByName(ctx, name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, ErrResponseAuthorNotFound) {
		return Author{}, fmt.Errorf("resolving author %q: %w", name, err)
	}
	author, err = repo.CreateAuthor(ctx, Author{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return Author{}, fmt.Errorf("resolving author %q: %w", name, err)
	}
	return author, nil
}

/* Replaces the catalog fields of a book. The loan is never touched here. */
func (s *Service) UpdateBook(ctx context.Context, req UpdateBookRequest) (Book, error) {
	if err := validateBookFields(req.Title, req.Price); err != nil {
		return Book{}, err
	}

	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	defer tx.Rollback()

	current, err := txRepo.GetBookByID(ctx, req.ID)
	if err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	if req.PreAuthorID != nil && !sameID(current.AuthorID, req.PreAuthorID) {
		return Book{}, fmt.Errorf("updating book %s: %w", req.ID, ErrResponseAuthorReferenceStale)
	}

	now := s.timestamp()
	updated := current
	updated.Title = strings.TrimSpace(req.Title)
	updated.Category = strings.TrimSpace(req.Category)
	updated.Price = req.Price
	updated.ImageURL = req.ImageURL
	updated.Description = req.Description
	updated.UpdatedAt = now
	updated.AuthorID = nil
	if name := strings.TrimSpace(req.AuthorName); name != "" {
		author, err := s.resolveAuthor(ctx, txRepo, name, now)
		if err != nil {
			return Book{}, fmt.Errorf("updating book: %w", err)
		}
		updated.AuthorID = &author.ID
	}

	stored, err := txRepo.UpdateBook(ctx, updated)
	if err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Book{}, fmt.Errorf("updating book, committing: %w", err)
	}
	if !sameID(current.AuthorID, stored.AuthorID) {
		s.logger.Info("book author replaced",
			zap.Stringer("book_id", stored.ID),
			zap.Stringp("previous_author_id", idString(current.AuthorID)),
			zap.Stringp("author_id", idString(stored.AuthorID)))
	}
	return stored, nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (Book, error) {
	return s.repo.GetBookByID(ctx, id)
}

/* Deletes a book whatever its borrowing status. A given AuthorID must match the stored author. */
func (s *Service) DeleteBook(ctx context.Context, req DeleteBookRequest) error {
	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	defer tx.Rollback()

	current, err := txRepo.GetBookByID(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if req.AuthorID != nil && !sameID(current.AuthorID, req.AuthorID) {
		return fmt.Errorf("deleting book %s: %w", req.ID, ErrResponseBookAuthorMismatch)
	}
	if err := txRepo.DeleteBook(ctx, req.ID); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("deleting book, committing: %w", err)
	}
	if current.Borrowed() {
		s.logger.Info("deleted a borrowed book", zap.Stringer("book_id", current.ID), zap.Stringer("borrower_id", current.Loan.BorrowerID))
	}
	return nil
}

func (s *Service) DeleteAllBooks(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteAllBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting all books: %w", err)
	}
	return n, nil
}

func (s *Service) SearchBooks(ctx context.Context, req SearchBooksRequest) ([]Book, error) {
	availability, err := ParseAvailability(string(req.Availability))
	if err != nil {
		return nil, err
	}
	books, err := s.repo.SearchBooks(ctx, strings.TrimSpace(req.Query), availability)
	if err != nil {
		return nil, fmt.Errorf("searching books: %w", err)
	}
	return books, nil
}

// -- Authors --

type CreateAuthorRequest struct {
	Name  string
	Email string
	Phone string
}

type UpdateAuthorRequest struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

func (s *Service) CreateAuthor(ctx context.Context, req CreateAuthorRequest) (Author, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Author{}, ErrResponseAuthorEntryBlankFields
	}

	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return Author{}, fmt.Errorf("creating author: %w", err)
	}
	defer tx.Rollback()

	if err := checkAuthorNameFree(ctx, txRepo, name, uuid.Nil); err != nil {
		return Author{}, fmt.Errorf("creating author: %w", err)
	}
	now := s.timestamp()
	created, err := txRepo.CreateAuthor(ctx, Author{
		ID:        uuid.New(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Author{}, fmt.Errorf("creating author: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Author{}, fmt.Errorf("creating author, committing: %w", err)
	}
	return created, nil
}

/* Returns ErrResponseAuthorNameConflict when another author than self already uses name. */
func checkAuthorNameFree(ctx context.Context, repo Repository, name string, self uuid.UUID) error {
	existing, err := repo.GetAuthorByName(ctx, name)
	switch {
	case errors.Is(err, ErrResponseAuthorNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return ErrResponseAuthorNameConflict
	}
	return nil
}

func (s *Service) UpdateAuthor(ctx context.Context, req UpdateAuthorRequest) (Author, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Author{}, ErrResponseAuthorEntryBlankFields
	}

	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return Author{}, fmt.Errorf("updating author: %w", err)
	}
	defer tx.Rollback()

	current, err := txRepo.GetAuthorByID(ctx, req.ID)
	if err != nil {
		return Author{}, fmt.Errorf("updating author: %w", err)
	}
	if err := checkAuthorNameFree(ctx, txRepo, name, current.ID); err != nil {
		return Author{}, fmt.Errorf("updating author: %w", err)
	}
	current.Name = name
	current.Email = strings.TrimSpace(req.Email)
	current.Phone = strings.TrimSpace(req.Phone)
	current.UpdatedAt = s.timestamp()

	updated, err := txRepo.UpdateAuthor(ctx, current)
	if err != nil {
		return Author{}, fmt.Errorf("updating author: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Author{}, fmt.Errorf("updating author, committing: %w", err)
	}
	return updated, nil
}

func (s *Service) GetAuthor(ctx context.Context, id uuid.UUID) (Author, error) {
	return s.repo.GetAuthorByID(ctx, id)
}

/* Deletes an author and nulls the author reference of its books in the same transaction. */
func (s *Service) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	defer tx.Rollback()

	if _, err := txRepo.GetAuthorByID(ctx, id); err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	unlinked, err := txRepo.UnlinkAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting author, unlinking books: %w", err)
	}
	if err := txRepo.DeleteAuthor(ctx, id); err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("deleting author, committing: %w", err)
	}
	s.logger.Info("author deleted", zap.Stringer("author_id", id), zap.Int("unlinked_books", unlinked))
	return nil
}

func (s *Service) SearchAuthors(ctx context.Context, query string) ([]Author, error) {
	authors, err := s.repo.SearchAuthors(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("searching authors: %w", err)
	}
	return authors, nil
}

// -- Borrowers --

type CreateBorrowerRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type UpdateBorrowerRequest struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Phone   string
	Address string
}

func (s *Service) CreateBorrower(ctx context.Context, req CreateBorrowerRequest) (Borrower, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Borrower{}, ErrResponseBorrowerEntryBlankFields
	}
	now := s.timestamp()
	created, err := s.repo.CreateBorrower(ctx, Borrower{
		ID:        uuid.New(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Borrower{}, fmt.Errorf("creating borrower: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateBorrower(ctx context.Context, req UpdateBorrowerRequest) (Borrower, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Borrower{}, ErrResponseBorrowerEntryBlankFields
	}

	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return Borrower{}, fmt.Errorf("updating borrower: %w", err)
	}
	defer tx.Rollback()

	current, err := txRepo.GetBorrowerByID(ctx, req.ID)
	if err != nil {
		return Borrower{}, fmt.Errorf("updating borrower: %w", err)
	}
	current.Name = name
	current.Email = strings.TrimSpace(req.Email)
	current.Phone = strings.TrimSpace(req.Phone)
	current.Address = strings.TrimSpace(req.Address)
	current.UpdatedAt = s.timestamp()

	updated, err := txRepo.UpdateBorrower(ctx, current)
	if err != nil {
		return Borrower{}, fmt.Errorf("updating borrower: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Borrower{}, fmt.Errorf("updating borrower, committing: %w", err)
	}
	return updated, nil
}

func (s *Service) GetBorrower(ctx context.Context, id uuid.UUID) (Borrower, error) {
	return s.repo.GetBorrowerByID(ctx, id)
}

/* Deletes a borrower. Every book it holds is checked in within the same transaction. */
func (s *Service) DeleteBorrower(ctx context.Context, id uuid.UUID) error {
	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("deleting borrower: %w", err)
	}
	defer tx.Rollback()

	if _, err := txRepo.GetBorrowerByID(ctx, id); err != nil {
		return fmt.Errorf("deleting borrower: %w", err)
	}
	released, err := txRepo.ReleaseLoans(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting borrower, releasing loans: %w", err)
	}
	if err := txRepo.DeleteBorrower(ctx, id); err != nil {
		return fmt.Errorf("deleting borrower: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("deleting borrower, committing: %w", err)
	}
	s.logger.Info("borrower deleted", zap.Stringer("borrower_id", id), zap.Int("released_books", released))
	return nil
}

func (s *Service) SearchBorrowers(ctx context.Context, query string) ([]Borrower, error) {
	borrowers, err := s.repo.SearchBorrowers(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("searching borrowers: %w", err)
	}
	return borrowers, nil
}
