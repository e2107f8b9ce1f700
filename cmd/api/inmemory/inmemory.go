package inmemory

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/library-service/cmd/api/book"
)

/*
InMemoryStore is a book.Repository on go-memdb. Write transactions in memdb are
serialized, so a read followed by a conditional write inside one transaction
is atomic.
*/
type InMemoryStore struct {
	db  *memdb.MemDB
	txn *memdb.Txn // only set on the store returned by BeginTx
}

func NewInMemoryStore() (*InMemoryStore, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			"book": {
				Name: "book",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"author_id": {
						Name:         "author_id",
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "AuthorID"},
					},
					"borrower_id": {
						Name:         "borrower_id",
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "BorrowerID"},
					},
				},
			},
			"author": {
				Name: "author",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"name": {
						Name:    "name",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Name"},
					},
				},
			},
			"borrower": {
				Name: "borrower",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("validating in-memory schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &InMemoryStore{db: db}, nil
}

type AdaptedBook struct {
	ID          string
	Title       string
	Category    string
	Price       *float64
	ImageURL    string
	Description string
	AuthorID    string // empty when the book has no author
	BorrowerID  string // empty while the book is available
	BorrowDate  time.Time
	ReturnDate  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func adaptBookToRecord(b book.Book) AdaptedBook {
	rec := AdaptedBook{
		ID:          b.ID.String(),
		Title:       b.Title,
		Category:    b.Category,
		Price:       b.Price,
		ImageURL:    b.ImageURL,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.AuthorID != nil {
		rec.AuthorID = b.AuthorID.String()
	}
	if b.Loan != nil {
		rec.BorrowerID = b.Loan.BorrowerID.String()
		rec.BorrowDate = b.Loan.BorrowDate
		rec.ReturnDate = b.Loan.ReturnDate
	}
	return rec
}

/* Converts a record back to a book, resolving its author and borrower inside txn. Unresolvable references read as nil. */
func adaptRecordToBook(txn *memdb.Txn, rec AdaptedBook) (book.Book, error) {
	b := book.Book{
		ID:          uuid.MustParse(rec.ID),
		Title:       rec.Title,
		Category:    rec.Category,
		Price:       rec.Price,
		ImageURL:    rec.ImageURL,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.AuthorID != "" {
		authorID := uuid.MustParse(rec.AuthorID)
		b.AuthorID = &authorID
		raw, err := txn.First("author", "id", rec.AuthorID)
		if err != nil {
			return book.Book{}, fmt.Errorf("populating author: %w", err)
		}
		if raw != nil {
			a := adaptRecordToAuthor(raw.(AdaptedAuthor))
			b.Author = &a
		}
	}
	if rec.BorrowerID != "" {
		b.Loan = &book.Loan{
			BorrowerID: uuid.MustParse(rec.BorrowerID),
			BorrowDate: rec.BorrowDate,
			ReturnDate: rec.ReturnDate,
		}
		raw, err := txn.First("borrower", "id", rec.BorrowerID)
		if err != nil {
			return book.Book{}, fmt.Errorf("populating borrower: %w", err)
		}
		if raw != nil {
			br := adaptRecordToBorrower(raw.(AdaptedBorrower))
			b.Loan.Borrower = &br
		}
	}
	return b, nil
}

type AdaptedAuthor struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func adaptAuthorToRecord(a book.Author) AdaptedAuthor {
	return AdaptedAuthor{
		ID:        a.ID.String(),
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func adaptRecordToAuthor(rec AdaptedAuthor) book.Author {
	return book.Author{
		ID:        uuid.MustParse(rec.ID),
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

type AdaptedBorrower struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func adaptBorrowerToRecord(b book.Borrower) AdaptedBorrower {
	return AdaptedBorrower{
		ID:        b.ID.String(),
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func adaptRecordToBorrower(rec AdaptedBorrower) book.Borrower {
	return book.Borrower{
		ID:        uuid.MustParse(rec.ID),
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		Address:   rec.Address,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

/* Returns the transaction to work in. owned is false when the store is bound to a larger transaction. */
func (store *InMemoryStore) begin(write bool) (txn *memdb.Txn, owned bool) {
	if store.txn != nil {
		return store.txn, false
	}
	return store.db.Txn(write), true
}

func finish(txn *memdb.Txn, owned bool) {
	if owned {
		txn.Commit()
	}
}

func abort(txn *memdb.Txn, owned bool) {
	if owned {
		txn.Abort()
	}
}

// -- Books --

func (store *InMemoryStore) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	if bookEntry.AuthorID != nil {
		raw, err := txn.First("author", "id", bookEntry.AuthorID.String())
		if err != nil {
			return book.Book{}, fmt.Errorf("storing book: %w", err)
		}
		if raw == nil {
			return book.Book{}, fmt.Errorf("storing book: %w", book.ErrResponseAuthorNotFound)
		}
	}

	rec := adaptBookToRecord(bookEntry)
	if err := txn.Insert("book", rec); err != nil {
		return book.Book{}, fmt.Errorf("storing book: %w", err)
	}
	created, err := adaptRecordToBook(txn, rec)
	if err != nil {
		return book.Book{}, fmt.Errorf("storing book: %w", err)
	}

	finish(txn, owned)
	return created, nil
}

func (store *InMemoryStore) GetBookByID(ctx context.Context, id uuid.UUID) (book.Book, error) {
	txn, owned := store.begin(false)
	defer abort(txn, owned)

	rec, err := firstBook(txn, id)
	if err != nil {
		return book.Book{}, fmt.Errorf("searching book by ID: %w", err)
	}
	return adaptRecordToBook(txn, rec)
}

func firstBook(txn *memdb.Txn, id uuid.UUID) (AdaptedBook, error) {
	raw, err := txn.First("book", "id", id.String())
	if err != nil {
		return AdaptedBook{}, err
	}
	if raw == nil {
		return AdaptedBook{}, book.ErrResponseBookNotFound
	}
	return raw.(AdaptedBook), nil
}

/* Stores the catalog fields of bookEntry. The loan stored for the book is kept as it is. */
func (store *InMemoryStore) UpdateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	current, err := firstBook(txn, bookEntry.ID)
	if err != nil {
		return book.Book{}, fmt.Errorf("updating book: %w", err)
	}
	if bookEntry.AuthorID != nil {
		raw, err := txn.First("author", "id", bookEntry.AuthorID.String())
		if err != nil {
			return book.Book{}, fmt.Errorf("updating book: %w", err)
		}
		if raw == nil {
			return book.Book{}, fmt.Errorf("updating book: %w", book.ErrResponseAuthorNotFound)
		}
	}

	rec := adaptBookToRecord(bookEntry)
	rec.BorrowerID = current.BorrowerID
	rec.BorrowDate = current.BorrowDate
	rec.ReturnDate = current.ReturnDate
	rec.CreatedAt = current.CreatedAt
	if err := txn.Insert("book", rec); err != nil {
		return book.Book{}, fmt.Errorf("updating book: %w", err)
	}
	updated, err := adaptRecordToBook(txn, rec)
	if err != nil {
		return book.Book{}, fmt.Errorf("updating book: %w", err)
	}

	finish(txn, owned)
	return updated, nil
}

func (store *InMemoryStore) DeleteBook(ctx context.Context, id uuid.UUID) error {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	rec, err := firstBook(txn, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if err := txn.Delete("book", rec); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	finish(txn, owned)
	return nil
}

func (store *InMemoryStore) DeleteAllBooks(ctx context.Context) (int, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	n, err := txn.DeleteAll("book", "id")
	if err != nil {
		return 0, fmt.Errorf("deleting all books: %w", err)
	}

	finish(txn, owned)
	return n, nil
}

func (store *InMemoryStore) SearchBooks(ctx context.Context, query string, availability book.Availability) ([]book.Book, error) {
	txn, owned := store.begin(false)
	defer abort(txn, owned)

	it, err := txn.Get("book", "id")
	if err != nil {
		return nil, fmt.Errorf("searching books: %w", err)
	}

	books := []book.Book{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		b, err := adaptRecordToBook(txn, obj.(AdaptedBook))
		if err != nil {
			return nil, fmt.Errorf("searching books: %w", err)
		}
		if !availability.Matches(b) || !b.MatchesQuery(query) {
			continue
		}
		books = append(books, b)
	}

	sort.SliceStable(books, func(i, j int) bool {
		return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
	})
	return books, nil
}

func (store *InMemoryStore) SetLoan(ctx context.Context, bookID uuid.UUID, loan book.Loan) (book.Book, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	rec, err := firstBook(txn, bookID)
	if err != nil {
		return book.Book{}, fmt.Errorf("setting loan: %w", err)
	}
	if rec.BorrowerID != "" {
		return book.Book{}, fmt.Errorf("setting loan: %w", book.ErrResponseCheckoutConflict)
	}
	raw, err := txn.First("borrower", "id", loan.BorrowerID.String())
	if err != nil {
		return book.Book{}, fmt.Errorf("setting loan: %w", err)
	}
	if raw == nil {
		return book.Book{}, fmt.Errorf("setting loan: %w", book.ErrResponseBorrowerNotFound)
	}

	rec.BorrowerID = loan.BorrowerID.String()
	rec.BorrowDate = loan.BorrowDate
	rec.ReturnDate = loan.ReturnDate
	if err := txn.Insert("book", rec); err != nil {
		return book.Book{}, fmt.Errorf("setting loan: %w", err)
	}
	borrowed, err := adaptRecordToBook(txn, rec)
	if err != nil {
		return book.Book{}, fmt.Errorf("setting loan: %w", err)
	}

	finish(txn, owned)
	return borrowed, nil
}

func (store *InMemoryStore) ClearLoan(ctx context.Context, bookID uuid.UUID) (book.Book, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	rec, err := firstBook(txn, bookID)
	if err != nil {
		return book.Book{}, fmt.Errorf("clearing loan: %w", err)
	}
	if rec.BorrowerID == "" {
		return book.Book{}, fmt.Errorf("clearing loan: %w", book.ErrResponseCheckoutConflict)
	}

	rec = withoutLoan(rec)
	if err := txn.Insert("book", rec); err != nil {
		return book.Book{}, fmt.Errorf("clearing loan: %w", err)
	}
	returned, err := adaptRecordToBook(txn, rec)
	if err != nil {
		return book.Book{}, fmt.Errorf("clearing loan: %w", err)
	}

	finish(txn, owned)
	return returned, nil
}

func withoutLoan(rec AdaptedBook) AdaptedBook {
	rec.BorrowerID = ""
	rec.BorrowDate = time.Time{}
	rec.ReturnDate = time.Time{}
	return rec
}

/* Collects the books matching an index value. Records are collected before any of them is rewritten. */
func booksBy(txn *memdb.Txn, index string, id uuid.UUID) ([]AdaptedBook, error) {
	it, err := txn.Get("book", index, id.String())
	if err != nil {
		return nil, err
	}
	recs := []AdaptedBook{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		recs = append(recs, obj.(AdaptedBook))
	}
	return recs, nil
}

func (store *InMemoryStore) ReleaseLoans(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	recs, err := booksBy(txn, "borrower_id", borrowerID)
	if err != nil {
		return 0, fmt.Errorf("releasing loans: %w", err)
	}
	for _, rec := range recs {
		if err := txn.Insert("book", withoutLoan(rec)); err != nil {
			return 0, fmt.Errorf("releasing loans: %w", err)
		}
	}

	finish(txn, owned)
	return len(recs), nil
}

func (store *InMemoryStore) UnlinkAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	recs, err := booksBy(txn, "author_id", authorID)
	if err != nil {
		return 0, fmt.Errorf("unlinking author: %w", err)
	}
	for _, rec := range recs {
		rec.AuthorID = ""
		if err := txn.Insert("book", rec); err != nil {
			return 0, fmt.Errorf("unlinking author: %w", err)
		}
	}

	finish(txn, owned)
	return len(recs), nil
}

// -- Authors --

func (store *InMemoryStore) CreateAuthor(ctx context.Context, a book.Author) (book.Author, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	raw, err := txn.First("author", "name", a.Name)
	if err != nil {
		return book.Author{}, fmt.Errorf("storing author: %w", err)
	}
	if raw != nil {
		return book.Author{}, fmt.Errorf("storing author: %w", book.ErrResponseAuthorNameConflict)
	}
	if err := txn.Insert("author", adaptAuthorToRecord(a)); err != nil {
		return book.Author{}, fmt.Errorf("storing author: %w", err)
	}

	finish(txn, owned)
	return a, nil
}

func (store *InMemoryStore) GetAuthorByID(ctx context.Context, id uuid.UUID) (book.Author, error) {
	return store.getAuthor("id", id.String())
}

func (store *InMemoryStore) GetAuthorByName(ctx context.Context, name string) (book.Author, error) {
	return store.getAuthor("name", name)
}

func (store *InMemoryStore) getAuthor(index, value string) (book.Author, error) {
	txn, owned := store.begin(false)
	defer abort(txn, owned)

	raw, err := txn.First("author", index, value)
	if err != nil {
		return book.Author{}, fmt.Errorf("searching author by %s: %w", index, err)
	}
	if raw == nil {
		return book.Author{}, fmt.Errorf("searching author by %s: %w", index, book.ErrResponseAuthorNotFound)
	}
	return adaptRecordToAuthor(raw.(AdaptedAuthor)), nil
}

func (store *InMemoryStore) UpdateAuthor(ctx context.Context, a book.Author) (book.Author, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	raw, err := txn.First("author", "id", a.ID.String())
	if err != nil {
		return book.Author{}, fmt.Errorf("updating author: %w", err)
	}
	if raw == nil {
		return book.Author{}, fmt.Errorf("updating author: %w", book.ErrResponseAuthorNotFound)
	}
	sameName, err := txn.First("author", "name", a.Name)
	if err != nil {
		return book.Author{}, fmt.Errorf("updating author: %w", err)
	}
	if sameName != nil && sameName.(AdaptedAuthor).ID != a.ID.String() {
		return book.Author{}, fmt.Errorf("updating author: %w", book.ErrResponseAuthorNameConflict)
	}

	rec := adaptAuthorToRecord(a)
	rec.CreatedAt = raw.(AdaptedAuthor).CreatedAt
	if err := txn.Insert("author", rec); err != nil {
		return book.Author{}, fmt.Errorf("updating author: %w", err)
	}

	finish(txn, owned)
	return adaptRecordToAuthor(rec), nil
}

func (store *InMemoryStore) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	raw, err := txn.First("author", "id", id.String())
	if err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("deleting author: %w", book.ErrResponseAuthorNotFound)
	}
	if err := txn.Delete("author", raw); err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}

	finish(txn, owned)
	return nil
}

func (store *InMemoryStore) SearchAuthors(ctx context.Context, query string) ([]book.Author, error) {
	txn, owned := store.begin(false)
	defer abort(txn, owned)

	it, err := txn.Get("author", "name")
	if err != nil {
		return nil, fmt.Errorf("searching authors: %w", err)
	}
	authors := []book.Author{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		a := adaptRecordToAuthor(obj.(AdaptedAuthor))
		if a.MatchesQuery(query) {
			authors = append(authors, a)
		}
	}
	return authors, nil
}

// -- Borrowers --

func (store *InMemoryStore) CreateBorrower(ctx context.Context, b book.Borrower) (book.Borrower, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	if err := txn.Insert("borrower", adaptBorrowerToRecord(b)); err != nil {
		return book.Borrower{}, fmt.Errorf("storing borrower: %w", err)
	}

	finish(txn, owned)
	return b, nil
}

func (store *InMemoryStore) GetBorrowerByID(ctx context.Context, id uuid.UUID) (book.Borrower, error) {
	txn, owned := store.begin(false)
	defer abort(txn, owned)

	raw, err := txn.First("borrower", "id", id.String())
	if err != nil {
		return book.Borrower{}, fmt.Errorf("searching borrower by ID: %w", err)
	}
	if raw == nil {
		return book.Borrower{}, fmt.Errorf("searching borrower by ID: %w", book.ErrResponseBorrowerNotFound)
	}
	return adaptRecordToBorrower(raw.(AdaptedBorrower)), nil
}

func (store *InMemoryStore) UpdateBorrower(ctx context.Context, b book.Borrower) (book.Borrower, error) {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	raw, err := txn.First("borrower", "id", b.ID.String())
	if err != nil {
		return book.Borrower{}, fmt.Errorf("updating borrower: %w", err)
	}
	if raw == nil {
		return book.Borrower{}, fmt.Errorf("updating borrower: %w", book.ErrResponseBorrowerNotFound)
	}

	rec := adaptBorrowerToRecord(b)
	rec.CreatedAt = raw.(AdaptedBorrower).CreatedAt
	if err := txn.Insert("borrower", rec); err != nil {
		return book.Borrower{}, fmt.Errorf("updating borrower: %w", err)
	}

	finish(txn, owned)
	return adaptRecordToBorrower(rec), nil
}

func (store *InMemoryStore) DeleteBorrower(ctx context.Context, id uuid.UUID) error {
	txn, owned := store.begin(true)
	defer abort(txn, owned)

	raw, err := txn.First("borrower", "id", id.String())
	if err != nil {
		return fmt.Errorf("deleting borrower: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("deleting borrower: %w", book.ErrResponseBorrowerNotFound)
	}
	if err := txn.Delete("borrower", raw); err != nil {
		return fmt.Errorf("deleting borrower: %w", err)
	}

	finish(txn, owned)
	return nil
}

func (store *InMemoryStore) SearchBorrowers(ctx context.Context, query string) ([]book.Borrower, error) {
	txn, owned := store.begin(false)
	defer abort(txn, owned)

	it, err := txn.Get("borrower", "id")
	if err != nil {
		return nil, fmt.Errorf("searching borrowers: %w", err)
	}
	borrowers := []book.Borrower{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		b := adaptRecordToBorrower(obj.(AdaptedBorrower))
		if b.MatchesQuery(query) {
			borrowers = append(borrowers, b)
		}
	}
	sort.SliceStable(borrowers, func(i, j int) bool {
		return strings.ToLower(borrowers[i].Name) < strings.ToLower(borrowers[j].Name)
	})
	return borrowers, nil
}

// -- Transactions --

/* Opens a write transaction and returns a store bound to it. Other writers wait until it is committed or rolled back. */
func (store *InMemoryStore) BeginTx(ctx context.Context, opts *sql.TxOptions) (book.Repository, driver.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}
	txn := store.db.Txn(true)
	return &InMemoryStore{db: store.db, txn: txn}, &TxWrapper{txn: txn}, nil
}

type TxWrapper struct {
	txn *memdb.Txn
}

func (tx *TxWrapper) Commit() error {
	tx.txn.Commit()
	return nil
}

func (tx *TxWrapper) Rollback() error {
	tx.txn.Abort()
	return nil
}
