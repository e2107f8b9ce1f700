package database_test

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/library-service/cmd/api/book"
	"github.com/library-service/cmd/api/database"
	"github.com/matryer/is"
)

var store *database.Store
var sqlDB *sqlx.DB
var ctx context.Context = context.Background()

// TestMain connects to DATABASE_URL and applies the migrations.
// Without DATABASE_URL every test in this package is skipped.
func TestMain(m *testing.M) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		os.Exit(m.Run())
	}

	var err error
	sqlDB, err = database.ConnectDb(ctx, connStr)
	if err != nil {
		log.Fatalln(err)
	}

	store = database.NewStore(sqlDB)
	path := os.Getenv("DATABASE_MIGRATIONS_PATH")
	if path == "" {
		path = "../../../migrations"
	}
	err = database.MigrationUp(store, path)
	if err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalln(err)
		}
		log.Println(err)
	}

	code := m.Run()
	sqlDB.Close()
	os.Exit(code)
}

// setup skips without a database and empties the tables once the test is done.
func setup(t *testing.T) {
	t.Helper()
	if store == nil {
		t.Skip("DATABASE_URL not set")
	}
	t.Cleanup(func() {
		teardownDB(t)
	})
}

func teardownDB(t *testing.T) {
	for _, table := range []string{"books", "authors", "borrowers"} {
		if _, err := sqlDB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Errorf("cleaning %s: %v", table, err)
		}
	}
}

func toPointer[T any](v T) *T {
	return &v
}

func newBook(title string) book.Book {
	now := time.Now().UTC().Round(time.Millisecond)
	return book.Book{
		ID:        uuid.New(),
		Title:     title,
		Category:  "Science Fiction",
		Price:     toPointer(12.5),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newLoan(borrowerID uuid.UUID) book.Loan {
	return book.Loan{
		BorrowerID: borrowerID,
		BorrowDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func mustBorrower(t *testing.T, name string) book.Borrower {
	t.Helper()
	now := time.Now().UTC().Round(time.Millisecond)
	br, err := store.CreateBorrower(ctx, book.Borrower{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatal(err)
	}
	return br
}

func mustAuthor(t *testing.T, name string) book.Author {
	t.Helper()
	now := time.Now().UTC().Round(time.Millisecond)
	a, err := store.CreateAuthor(ctx, book.Author{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func compareBooks(is *is.I, got, want book.Book) {
	is.Helper()
	is.Equal(got.ID, want.ID)
	is.Equal(got.Title, want.Title)
	is.Equal(got.Category, want.Category)
	is.Equal(*got.Price, *want.Price)
	is.True(got.CreatedAt.Equal(want.CreatedAt))
}

func TestCreateBook(t *testing.T) {
	setup(t)

	t.Run("creates a book without errors", func(t *testing.T) {
		is := is.New(t)
		author := mustAuthor(t, "Frank Herbert")
		b := newBook("Dune")
		b.AuthorID = &author.ID

		created, err := store.CreateBook(ctx, b)
		is.NoErr(err)
		compareBooks(is, created, b)
		is.Equal(created.Author.Name, "Frank Herbert")
		is.True(!created.Borrowed())
	})

	t.Run("expected author not found error", func(t *testing.T) {
		is := is.New(t)
		b := newBook("Dune Messiah")
		b.AuthorID = toPointer(uuid.New())

		_, err := store.CreateBook(ctx, b)
		is.True(errors.Is(err, book.ErrResponseAuthorNotFound))
	})

	t.Run("expected book not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := store.GetBookByID(ctx, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestUpdateBook(t *testing.T) {
	setup(t)
	is := is.New(t)
	ada := mustBorrower(t, "Ada")

	b, err := store.CreateBook(ctx, newBook("Dune"))
	is.NoErr(err)
	_, err = store.SetLoan(ctx, b.ID, newLoan(ada.ID))
	is.NoErr(err)

	b.Title = "Dune (1965)"
	b.Loan = nil
	updated, err := store.UpdateBook(ctx, b)
	is.NoErr(err)
	is.Equal(updated.Title, "Dune (1965)")
	is.Equal(updated.Loan.BorrowerID, ada.ID) // the loan columns are not touched

	_, err = store.UpdateBook(ctx, newBook("Missing"))
	is.True(errors.Is(err, book.ErrResponseBookNotFound))
}

func TestLoans(t *testing.T) {
	setup(t)

	t.Run("sets and clears a loan", func(t *testing.T) {
		is := is.New(t)
		ada := mustBorrower(t, "Ada")
		b, err := store.CreateBook(ctx, newBook("Dune"))
		is.NoErr(err)

		borrowed, err := store.SetLoan(ctx, b.ID, newLoan(ada.ID))
		is.NoErr(err)
		is.Equal(borrowed.Loan.Borrower.Name, "Ada")
		is.Equal(book.NewDate(borrowed.Loan.BorrowDate).String(), "2024-01-10")
		is.Equal(book.NewDate(borrowed.Loan.ReturnDate).String(), "2024-01-15")

		returned, err := store.ClearLoan(ctx, b.ID)
		is.NoErr(err)
		is.True(returned.Loan == nil)
	})

	t.Run("guard misses are conflicts, missing rows are not found", func(t *testing.T) {
		is := is.New(t)
		ada := mustBorrower(t, "Bob")
		b, err := store.CreateBook(ctx, newBook("Foundation"))
		is.NoErr(err)

		_, err = store.ClearLoan(ctx, b.ID)
		is.True(errors.Is(err, book.ErrResponseCheckoutConflict))

		_, err = store.SetLoan(ctx, b.ID, newLoan(ada.ID))
		is.NoErr(err)
		_, err = store.SetLoan(ctx, b.ID, newLoan(ada.ID))
		is.True(errors.Is(err, book.ErrResponseCheckoutConflict))

		_, err = store.SetLoan(ctx, uuid.New(), newLoan(ada.ID))
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})

	t.Run("expected borrower not found error", func(t *testing.T) {
		is := is.New(t)
		b, err := store.CreateBook(ctx, newBook("Hyperion"))
		is.NoErr(err)

		_, err = store.SetLoan(ctx, b.ID, newLoan(uuid.New()))
		is.True(errors.Is(err, book.ErrResponseBorrowerNotFound))
	})

	t.Run("concurrent loans on one book, exactly one wins", func(t *testing.T) {
		is := is.New(t)
		b, err := store.CreateBook(ctx, newBook("Solaris"))
		is.NoErr(err)

		const contenders = 6
		borrowers := make([]book.Borrower, contenders)
		for i := range borrowers {
			borrowers[i] = mustBorrower(t, uuid.NewString())
		}

		var wg sync.WaitGroup
		errs := make([]error, contenders)
		for i := range borrowers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = store.SetLoan(ctx, b.ID, newLoan(borrowers[i].ID))
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			is.True(errors.Is(err, book.ErrResponseCheckoutConflict))
		}
		is.Equal(wins, 1)
	})
}

func TestTransactions(t *testing.T) {
	setup(t)
	is := is.New(t)
	ada := mustBorrower(t, "Ada")
	b, err := store.CreateBook(ctx, newBook("Dune"))
	is.NoErr(err)

	txRepo, tx, err := store.BeginTx(ctx, nil)
	is.NoErr(err)
	released, err := txRepo.ReleaseLoans(ctx, ada.ID)
	is.NoErr(err)
	is.Equal(released, 0)
	_, err = txRepo.SetLoan(ctx, b.ID, newLoan(ada.ID))
	is.NoErr(err)
	is.NoErr(tx.Rollback())

	fetched, err := store.GetBookByID(ctx, b.ID)
	is.NoErr(err)
	is.True(!fetched.Borrowed())
}

func TestDeletes(t *testing.T) {
	setup(t)

	t.Run("a borrower with loans is released then deleted", func(t *testing.T) {
		is := is.New(t)
		ada := mustBorrower(t, "Ada")
		b, err := store.CreateBook(ctx, newBook("Dune"))
		is.NoErr(err)
		_, err = store.SetLoan(ctx, b.ID, newLoan(ada.ID))
		is.NoErr(err)

		n, err := store.ReleaseLoans(ctx, ada.ID)
		is.NoErr(err)
		is.Equal(n, 1)
		is.NoErr(store.DeleteBorrower(ctx, ada.ID))

		fetched, err := store.GetBookByID(ctx, b.ID)
		is.NoErr(err)
		is.True(!fetched.Borrowed())
	})

	t.Run("deleting an author unlinks its books", func(t *testing.T) {
		is := is.New(t)
		author := mustAuthor(t, "Iain M. Banks")
		b := newBook("Excession")
		b.AuthorID = &author.ID
		_, err := store.CreateBook(ctx, b)
		is.NoErr(err)

		n, err := store.UnlinkAuthor(ctx, author.ID)
		is.NoErr(err)
		is.Equal(n, 1)
		is.NoErr(store.DeleteAuthor(ctx, author.ID))

		fetched, err := store.GetBookByID(ctx, b.ID)
		is.NoErr(err)
		is.True(fetched.AuthorID == nil)
	})

	t.Run("deletes every book", func(t *testing.T) {
		is := is.New(t)
		_, err := store.CreateBook(ctx, newBook("A"))
		is.NoErr(err)
		_, err = store.CreateBook(ctx, newBook("B"))
		is.NoErr(err)

		n, err := store.DeleteAllBooks(ctx)
		is.NoErr(err)
		is.True(n >= 2)

		err = store.DeleteBook(ctx, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestSearchBooks(t *testing.T) {
	setup(t)
	is := is.New(t)
	ada := mustBorrower(t, "Ada")
	for _, title := range []string{"Foundation", "Dune Messiah", "Dune", "100%_Sci-Fi"} {
		_, err := store.CreateBook(ctx, newBook(title))
		is.NoErr(err)
	}
	classic := newBook("The Left Hand of Darkness")
	classic.Category = "Classics"
	_, err := store.CreateBook(ctx, classic)
	is.NoErr(err)
	_, err = store.SetLoan(ctx, classic.ID, newLoan(ada.ID))
	is.NoErr(err)

	titles := func(query string, availability book.Availability) []string {
		books, err := store.SearchBooks(ctx, query, availability)
		is.NoErr(err)
		out := []string{}
		for _, b := range books {
			out = append(out, b.Title)
		}
		return out
	}

	is.Equal(titles("dune", book.AvailabilityAll), []string{"Dune", "Dune Messiah"})
	is.Equal(titles("CLASSIC", book.AvailabilityAll), []string{"The Left Hand of Darkness"})
	is.Equal(titles("%_", book.AvailabilityAll), []string{"100%_Sci-Fi"}) // wildcards match literally
	is.Equal(titles("", book.AvailabilityBorrowed), []string{"The Left Hand of Darkness"})
	is.Equal(len(titles("", book.AvailabilityAvailable)), 4)
}

func TestAuthorsAndBorrowers(t *testing.T) {
	setup(t)

	t.Run("author names are unique", func(t *testing.T) {
		is := is.New(t)
		mustAuthor(t, "Ursula K. Le Guin")

		now := time.Now().UTC()
		_, err := store.CreateAuthor(ctx, book.Author{ID: uuid.New(), Name: "Ursula K. Le Guin", CreatedAt: now, UpdatedAt: now})
		is.True(errors.Is(err, book.ErrResponseAuthorNameConflict))

		found, err := store.GetAuthorByName(ctx, "Ursula K. Le Guin")
		is.NoErr(err)
		is.Equal(found.Name, "Ursula K. Le Guin")

		authors, err := store.SearchAuthors(ctx, "guin")
		is.NoErr(err)
		is.Equal(len(authors), 1)
	})

	t.Run("updates and searches borrowers", func(t *testing.T) {
		is := is.New(t)
		ada := mustBorrower(t, "Ada")
		ada.Email = "ada@example.com"
		ada.UpdatedAt = time.Now().UTC()

		updated, err := store.UpdateBorrower(ctx, ada)
		is.NoErr(err)
		is.Equal(updated.Email, "ada@example.com")

		found, err := store.SearchBorrowers(ctx, "EXAMPLE")
		is.NoErr(err)
		is.Equal(len(found), 1)

		_, err = store.GetBorrowerByID(ctx, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBorrowerNotFound))
	})
}
