package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/library-service/cmd/api/book"

	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const dialect = "postgres"

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type Store struct {
	db  *sqlx.DB
	exc sqlx.ExtContext // the db itself, or the transaction the store is bound to
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:  db,
		exc: db,
	}
}

func (store *Store) BeginTx(ctx context.Context, opts *sql.TxOptions) (book.Repository, driver.Tx, error) {
	tx, err := store.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}

	txRepo := &Store{db: store.db, exc: tx}
	return txRepo, tx, nil
}

/* Connects to the database trought a connection string and returns a pinged *sqlx.DB. */
func ConnectDb(ctx context.Context, connStr string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to db, openning: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to db, pingging: %w", err)
	}
	return db, nil
}

func newMigrate(store *Store, path string) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(store.db.DB, &postgres.Config{})
	if err != nil {
		return nil, err
	}
	return migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", path), "postgres", driver)
}

/* Applies every pending migration found in path. migrate.ErrNoChange is returned wrapped when there is nothing to do. */
func MigrationUp(store *Store, path string) error {
	m, err := newMigrate(store, path)
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}
	if err := m.Up(); err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}

func MigrationDown(store *Store, path string) error {
	m, err := newMigrate(store, path)
	if err != nil {
		return fmt.Errorf("migrating down: %w", err)
	}
	if err := m.Down(); err != nil {
		return fmt.Errorf("migrating down: %w", err)
	}
	return nil
}

/* Translates constraint violations into the error the caller can act on. Other errors pass through. */
func classify(err error, onForeignKey error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return book.ErrResponseAuthorNameConflict
		case codeForeignKeyViolation:
			if onForeignKey != nil {
				return onForeignKey
			}
		}
	}
	return err
}

func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	return int(n), err
}

// -- Books --

type bookRow struct {
	ID          uuid.UUID       `db:"id"`
	Title       string          `db:"title"`
	Category    string          `db:"category"`
	Price       sql.NullFloat64 `db:"price"`
	ImageURL    string          `db:"image_url"`
	Description string          `db:"description"`
	AuthorID    uuid.NullUUID   `db:"author_id"`
	BorrowerID  uuid.NullUUID   `db:"borrower_id"`
	BorrowDate  sql.NullTime    `db:"borrow_date"`
	ReturnDate  sql.NullTime    `db:"return_date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	AuthorName      sql.NullString `db:"author_name"`
	AuthorEmail     sql.NullString `db:"author_email"`
	AuthorPhone     sql.NullString `db:"author_phone"`
	AuthorCreatedAt sql.NullTime   `db:"author_created_at"`
	AuthorUpdatedAt sql.NullTime   `db:"author_updated_at"`

	BorrowerName      sql.NullString `db:"borrower_name"`
	BorrowerEmail     sql.NullString `db:"borrower_email"`
	BorrowerPhone     sql.NullString `db:"borrower_phone"`
	BorrowerAddress   sql.NullString `db:"borrower_address"`
	BorrowerCreatedAt sql.NullTime   `db:"borrower_created_at"`
	BorrowerUpdatedAt sql.NullTime   `db:"borrower_updated_at"`
}

func (r bookRow) toBook() book.Book {
	b := book.Book{
		ID:          r.ID,
		Title:       r.Title,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Price.Valid {
		price := r.Price.Float64
		b.Price = &price
	}
	if r.AuthorID.Valid {
		authorID := r.AuthorID.UUID
		b.AuthorID = &authorID
		if r.AuthorName.Valid {
			b.Author = &book.Author{
				ID:        authorID,
				Name:      r.AuthorName.String,
				Email:     r.AuthorEmail.String,
				Phone:     r.AuthorPhone.String,
				CreatedAt: r.AuthorCreatedAt.Time,
				UpdatedAt: r.AuthorUpdatedAt.Time,
			}
		}
	}
	if r.BorrowerID.Valid {
		b.Loan = &book.Loan{
			BorrowerID: r.BorrowerID.UUID,
			BorrowDate: r.BorrowDate.Time.UTC(),
			ReturnDate: r.ReturnDate.Time.UTC(),
		}
		if r.BorrowerName.Valid {
			b.Loan.Borrower = &book.Borrower{
				ID:        r.BorrowerID.UUID,
				Name:      r.BorrowerName.String,
				Email:     r.BorrowerEmail.String,
				Phone:     r.BorrowerPhone.String,
				Address:   r.BorrowerAddress.String,
				CreatedAt: r.BorrowerCreatedAt.Time,
				UpdatedAt: r.BorrowerUpdatedAt.Time,
			}
		}
	}
	return b
}

/* Selects books joined with their author and borrower, so every read comes back populated. */
func selectBooks() *goqu.SelectDataset {
	return goqu.Dialect(dialect).
		From(goqu.T("books").As("b")).
		LeftJoin(goqu.T("authors").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("b.author_id")))).
		LeftJoin(goqu.T("borrowers").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("b.borrower_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.category"), goqu.I("b.price"),
			goqu.I("b.image_url"), goqu.I("b.description"), goqu.I("b.author_id"), goqu.I("b.borrower_id"),
			goqu.I("b.borrow_date"), goqu.I("b.return_date"), goqu.I("b.created_at"), goqu.I("b.updated_at"),
			goqu.I("a.name").As("author_name"),
			goqu.I("a.email").As("author_email"),
			goqu.I("a.phone").As("author_phone"),
			goqu.I("a.created_at").As("author_created_at"),
			goqu.I("a.updated_at").As("author_updated_at"),
			goqu.I("r.name").As("borrower_name"),
			goqu.I("r.email").As("borrower_email"),
			goqu.I("r.phone").As("borrower_phone"),
			goqu.I("r.address").As("borrower_address"),
			goqu.I("r.created_at").As("borrower_created_at"),
			goqu.I("r.updated_at").As("borrower_updated_at"),
		)
}

func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}

/* Stores the book into the database and returns it populated. */
func (store *Store) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	sqlStatement := `
	INSERT INTO books (id, title, category, price, image_url, description, author_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := store.exc.ExecContext(ctx, sqlStatement, bookEntry.ID, bookEntry.Title, bookEntry.Category, bookEntry.Price,
		bookEntry.ImageURL, bookEntry.Description, bookEntry.AuthorID, bookEntry.CreatedAt, bookEntry.UpdatedAt)
	if err != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", classify(err, book.ErrResponseAuthorNotFound))
	}
	return store.GetBookByID(ctx, bookEntry.ID)
}

func (store *Store) GetBookByID(ctx context.Context, id uuid.UUID) (book.Book, error) {
	query, args, err := selectBooks().Where(goqu.I("b.id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return book.Book{}, fmt.Errorf("searching book by ID, building query: %w", err)
	}

	var row bookRow
	if err := sqlx.GetContext(ctx, store.exc, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, fmt.Errorf("searching book by ID: %w", book.ErrResponseBookNotFound)
		}
		return book.Book{}, fmt.Errorf("searching book by ID: %w", err)
	}
	return row.toBook(), nil
}

/* Updates the catalog columns of a book. Loan columns are left untouched. */
func (store *Store) UpdateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	sqlStatement := `
	UPDATE books
	SET title = $2, category = $3, price = $4, image_url = $5, description = $6, author_id = $7, updated_at = $8
	WHERE id = $1`
	res, err := store.exc.ExecContext(ctx, sqlStatement, bookEntry.ID, bookEntry.Title, bookEntry.Category, bookEntry.Price,
		bookEntry.ImageURL, bookEntry.Description, bookEntry.AuthorID, bookEntry.UpdatedAt)
	if err != nil {
		return book.Book{}, fmt.Errorf("updating book on db: %w", classify(err, book.ErrResponseAuthorNotFound))
	}
	n, err := rowsAffected(res)
	if err != nil {
		return book.Book{}, fmt.Errorf("updating book on db: %w", err)
	}
	if n == 0 {
		return book.Book{}, fmt.Errorf("updating book on db: %w", book.ErrResponseBookNotFound)
	}
	return store.GetBookByID(ctx, bookEntry.ID)
}

func (store *Store) DeleteBook(ctx context.Context, id uuid.UUID) error {
	res, err := store.exc.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting book on db: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return fmt.Errorf("deleting book on db: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deleting book on db: %w", book.ErrResponseBookNotFound)
	}
	return nil
}

func (store *Store) DeleteAllBooks(ctx context.Context) (int, error) {
	res, err := store.exc.ExecContext(ctx, `DELETE FROM books`)
	if err != nil {
		return 0, fmt.Errorf("deleting all books on db: %w", err)
	}
	return rowsAffected(res)
}

func (store *Store) SearchBooks(ctx context.Context, query string, availability book.Availability) ([]book.Book, error) {
	ds := selectBooks()
	if query != "" {
		pattern := likePattern(query)
		ds = ds.Where(goqu.Or(
			goqu.I("b.title").ILike(pattern),
			goqu.I("b.category").ILike(pattern),
		))
	}
	switch availability {
	case book.AvailabilityAvailable:
		ds = ds.Where(goqu.I("b.borrower_id").IsNull())
	case book.AvailabilityBorrowed:
		ds = ds.Where(goqu.I("b.borrower_id").IsNotNull())
	}
	sqlQuery, args, err := ds.Order(goqu.L("lower(b.title)").Asc(), goqu.I("b.id").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("searching books, building query: %w", err)
	}

	var rows []bookRow
	if err := sqlx.SelectContext(ctx, store.exc, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("searching books: %w", err)
	}
	books := make([]book.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.toBook())
	}
	return books, nil
}

/* Tells a missing book apart from a guard miss after a conditional update touched no row. */
func (store *Store) guardMiss(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := sqlx.GetContext(ctx, store.exc, &exists, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id); err != nil {
		return err
	}
	if !exists {
		return book.ErrResponseBookNotFound
	}
	return book.ErrResponseCheckoutConflict
}

func (store *Store) SetLoan(ctx context.Context, bookID uuid.UUID, loan book.Loan) (book.Book, error) {
	sqlStatement := `
	UPDATE books
	SET borrower_id = $2, borrow_date = $3, return_date = $4
	WHERE id = $1 AND borrower_id IS NULL`
	res, err := store.exc.ExecContext(ctx, sqlStatement, bookID, loan.BorrowerID, loan.BorrowDate, loan.ReturnDate)
	if err != nil {
		return book.Book{}, fmt.Errorf("setting loan on db: %w", classify(err, book.ErrResponseBorrowerNotFound))
	}
	n, err := rowsAffected(res)
	if err != nil {
		return book.Book{}, fmt.Errorf("setting loan on db: %w", err)
	}
	if n == 0 {
		return book.Book{}, fmt.Errorf("setting loan on db: %w", store.guardMiss(ctx, bookID))
	}
	return store.GetBookByID(ctx, bookID)
}

func (store *Store) ClearLoan(ctx context.Context, bookID uuid.UUID) (book.Book, error) {
	sqlStatement := `
	UPDATE books
	SET borrower_id = NULL, borrow_date = NULL, return_date = NULL
	WHERE id = $1 AND borrower_id IS NOT NULL`
	res, err := store.exc.ExecContext(ctx, sqlStatement, bookID)
	if err != nil {
		return book.Book{}, fmt.Errorf("clearing loan on db: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return book.Book{}, fmt.Errorf("clearing loan on db: %w", err)
	}
	if n == 0 {
		return book.Book{}, fmt.Errorf("clearing loan on db: %w", store.guardMiss(ctx, bookID))
	}
	return store.GetBookByID(ctx, bookID)
}

func (store *Store) ReleaseLoans(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	sqlStatement := `
	UPDATE books
	SET borrower_id = NULL, borrow_date = NULL, return_date = NULL
	WHERE borrower_id = $1`
	res, err := store.exc.ExecContext(ctx, sqlStatement, borrowerID)
	if err != nil {
		return 0, fmt.Errorf("releasing loans on db: %w", err)
	}
	return rowsAffected(res)
}

func (store *Store) UnlinkAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	res, err := store.exc.ExecContext(ctx, `UPDATE books SET author_id = NULL WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("unlinking author on db: %w", err)
	}
	return rowsAffected(res)
}

// -- Authors --

type authorRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r authorRow) toAuthor() book.Author {
	return book.Author{ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

const authorColumns = `id, name, email, phone, created_at, updated_at`

func (store *Store) CreateAuthor(ctx context.Context, a book.Author) (book.Author, error) {
	sqlStatement := `
	INSERT INTO authors (id, name, email, phone, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + authorColumns
	var row authorRow
	err := sqlx.GetContext(ctx, store.exc, &row, sqlStatement, a.ID, a.Name, a.Email, a.Phone, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return book.Author{}, fmt.Errorf("storing author on db: %w", classify(err, nil))
	}
	return row.toAuthor(), nil
}

func (store *Store) GetAuthorByID(ctx context.Context, id uuid.UUID) (book.Author, error) {
	return store.getAuthor(ctx, "id", id)
}

func (store *Store) GetAuthorByName(ctx context.Context, name string) (book.Author, error) {
	return store.getAuthor(ctx, "name", name)
}

func (store *Store) getAuthor(ctx context.Context, column string, value any) (book.Author, error) {
	query, args, err := goqu.Dialect(dialect).From("authors").Select(goqu.L(authorColumns)).
		Where(goqu.C(column).Eq(value)).Prepared(true).ToSQL()
	if err != nil {
		return book.Author{}, fmt.Errorf("searching author by %s, building query: %w", column, err)
	}
	var row authorRow
	if err := sqlx.GetContext(ctx, store.exc, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Author{}, fmt.Errorf("searching author by %s: %w", column, book.ErrResponseAuthorNotFound)
		}
		return book.Author{}, fmt.Errorf("searching author by %s: %w", column, err)
	}
	return row.toAuthor(), nil
}

func (store *Store) UpdateAuthor(ctx context.Context, a book.Author) (book.Author, error) {
	sqlStatement := `
	UPDATE authors
	SET name = $2, email = $3, phone = $4, updated_at = $5
	WHERE id = $1
	RETURNING ` + authorColumns
	var row authorRow
	err := sqlx.GetContext(ctx, store.exc, &row, sqlStatement, a.ID, a.Name, a.Email, a.Phone, a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Author{}, fmt.Errorf("updating author on db: %w", book.ErrResponseAuthorNotFound)
		}
		return book.Author{}, fmt.Errorf("updating author on db: %w", classify(err, nil))
	}
	return row.toAuthor(), nil
}

func (store *Store) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	res, err := store.exc.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting author on db: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return fmt.Errorf("deleting author on db: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deleting author on db: %w", book.ErrResponseAuthorNotFound)
	}
	return nil
}

func (store *Store) SearchAuthors(ctx context.Context, query string) ([]book.Author, error) {
	ds := goqu.Dialect(dialect).From("authors").Select(goqu.L(authorColumns))
	if query != "" {
		ds = ds.Where(goqu.C("name").ILike(likePattern(query)))
	}
	sqlQuery, args, err := ds.Order(goqu.C("name").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("searching authors, building query: %w", err)
	}

	var rows []authorRow
	if err := sqlx.SelectContext(ctx, store.exc, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("searching authors: %w", err)
	}
	authors := make([]book.Author, 0, len(rows))
	for _, row := range rows {
		authors = append(authors, row.toAuthor())
	}
	return authors, nil
}

// -- Borrowers --

type borrowerRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r borrowerRow) toBorrower() book.Borrower {
	return book.Borrower{ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

const borrowerColumns = `id, name, email, phone, address, created_at, updated_at`

func (store *Store) CreateBorrower(ctx context.Context, b book.Borrower) (book.Borrower, error) {
	sqlStatement := `
	INSERT INTO borrowers (id, name, email, phone, address, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + borrowerColumns
	var row borrowerRow
	err := sqlx.GetContext(ctx, store.exc, &row, sqlStatement, b.ID, b.Name, b.Email, b.Phone, b.Address, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return book.Borrower{}, fmt.Errorf("storing borrower on db: %w", err)
	}
	return row.toBorrower(), nil
}

func (store *Store) GetBorrowerByID(ctx context.Context, id uuid.UUID) (book.Borrower, error) {
	var row borrowerRow
	err := sqlx.GetContext(ctx, store.exc, &row, `SELECT `+borrowerColumns+` FROM borrowers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Borrower{}, fmt.Errorf("searching borrower by ID: %w", book.ErrResponseBorrowerNotFound)
		}
		return book.Borrower{}, fmt.Errorf("searching borrower by ID: %w", err)
	}
	return row.toBorrower(), nil
}

func (store *Store) UpdateBorrower(ctx context.Context, b book.Borrower) (book.Borrower, error) {
	sqlStatement := `
	UPDATE borrowers
	SET name = $2, email = $3, phone = $4, address = $5, updated_at = $6
	WHERE id = $1
	RETURNING ` + borrowerColumns
	var row borrowerRow
	err := sqlx.GetContext(ctx, store.exc, &row, sqlStatement, b.ID, b.Name, b.Email, b.Phone, b.Address, b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Borrower{}, fmt.Errorf("updating borrower on db: %w", book.ErrResponseBorrowerNotFound)
		}
		return book.Borrower{}, fmt.Errorf("updating borrower on db: %w", err)
	}
	return row.toBorrower(), nil
}

func (store *Store) DeleteBorrower(ctx context.Context, id uuid.UUID) error {
	res, err := store.exc.ExecContext(ctx, `DELETE FROM borrowers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting borrower on db: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return fmt.Errorf("deleting borrower on db: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deleting borrower on db: %w", book.ErrResponseBorrowerNotFound)
	}
	return nil
}

func (store *Store) SearchBorrowers(ctx context.Context, query string) ([]book.Borrower, error) {
	ds := goqu.Dialect(dialect).From("borrowers").Select(goqu.L(borrowerColumns))
	if query != "" {
		pattern := likePattern(query)
		ds = ds.Where(goqu.Or(goqu.C("name").ILike(pattern), goqu.C("email").ILike(pattern)))
	}
	sqlQuery, args, err := ds.Order(goqu.L("lower(name)").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("searching borrowers, building query: %w", err)
	}

	var rows []borrowerRow
	if err := sqlx.SelectContext(ctx, store.exc, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("searching borrowers: %w", err)
	}
	borrowers := make([]book.Borrower, 0, len(rows))
	for _, row := range rows {
		borrowers = append(borrowers, row.toBorrower())
	}
	return borrowers, nil
}
