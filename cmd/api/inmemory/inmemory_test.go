package inmemory_test

import (
	"context"
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/library-service/cmd/api/book"
	"github.com/library-service/cmd/api/inmemory"
	"github.com/matryer/is"
)

var ctx context.Context = context.Background()

func toPointer[T any](v T) *T {
	return &v
}

func newStore() *inmemory.InMemoryStore {
	store, err := inmemory.NewInMemoryStore()
	if err != nil {
		log.Fatalln(err)
	}
	return store
}

func newBook(title string) book.Book {
	now := time.Now().UTC().Round(time.Millisecond)
	return book.Book{
		ID:        uuid.New(),
		Title:     title,
		Category:  "Science Fiction",
		Price:     toPointer(10.0),
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

func mustBorrower(t *testing.T, store *inmemory.InMemoryStore, name string) book.Borrower {
	t.Helper()
	br, err := store.CreateBorrower(ctx, book.Borrower{ID: uuid.New(), Name: name})
	if err != nil {
		t.Fatal(err)
	}
	return br
}

func TestCreateBook(t *testing.T) {
	store := newStore()

	t.Run("creates a book without errors", func(t *testing.T) {
		is := is.New(t)
		b := newBook("Dune")

		created, err := store.CreateBook(ctx, b)
		is.NoErr(err)
		is.Equal(created, b)

		fetched, err := store.GetBookByID(ctx, b.ID)
		is.NoErr(err)
		is.Equal(fetched, b)
	})

	t.Run("populates the author", func(t *testing.T) {
		is := is.New(t)
		author, err := store.CreateAuthor(ctx, book.Author{ID: uuid.New(), Name: "Frank Herbert"})
		is.NoErr(err)

		b := newBook("Children of Dune")
		b.AuthorID = &author.ID
		created, err := store.CreateBook(ctx, b)
		is.NoErr(err)
		is.Equal(created.Author.Name, "Frank Herbert")
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
	store := newStore()
	ada := mustBorrower(t, store, "Ada")

	t.Run("keeps the stored loan", func(t *testing.T) {
		is := is.New(t)
		b, err := store.CreateBook(ctx, newBook("Dune"))
		is.NoErr(err)
		_, err = store.SetLoan(ctx, b.ID, newLoan(ada.ID))
		is.NoErr(err)

		b.Title = "Dune (1965)"
		b.Loan = nil
		updated, err := store.UpdateBook(ctx, b)
		is.NoErr(err)
		is.Equal(updated.Title, "Dune (1965)")
		is.True(updated.Borrowed())
		is.Equal(updated.Loan.BorrowerID, ada.ID)
	})

	t.Run("expected book not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := store.UpdateBook(ctx, newBook("Missing"))
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestLoans(t *testing.T) {
	store := newStore()
	ada := mustBorrower(t, store, "Ada")

	t.Run("sets and clears a loan", func(t *testing.T) {
		is := is.New(t)
		b, err := store.CreateBook(ctx, newBook("Dune"))
		is.NoErr(err)

		borrowed, err := store.SetLoan(ctx, b.ID, newLoan(ada.ID))
		is.NoErr(err)
		is.Equal(borrowed.Loan.Borrower.Name, "Ada")
		is.Equal(borrowed.Loan.ReturnDate, newLoan(ada.ID).ReturnDate)

		returned, err := store.ClearLoan(ctx, b.ID)
		is.NoErr(err)
		is.True(returned.Loan == nil)
	})

	t.Run("the writes are conditional on the current state", func(t *testing.T) {
		is := is.New(t)
		b, err := store.CreateBook(ctx, newBook("Foundation"))
		is.NoErr(err)

		_, err = store.ClearLoan(ctx, b.ID)
		is.True(errors.Is(err, book.ErrResponseCheckoutConflict))

		_, err = store.SetLoan(ctx, b.ID, newLoan(ada.ID))
		is.NoErr(err)
		_, err = store.SetLoan(ctx, b.ID, newLoan(ada.ID))
		is.True(errors.Is(err, book.ErrResponseCheckoutConflict))
	})

	t.Run("expected borrower not found error", func(t *testing.T) {
		is := is.New(t)
		b, err := store.CreateBook(ctx, newBook("Hyperion"))
		is.NoErr(err)

		_, err = store.SetLoan(ctx, b.ID, newLoan(uuid.New()))
		is.True(errors.Is(err, book.ErrResponseBorrowerNotFound))

		fetched, err := store.GetBookByID(ctx, b.ID)
		is.NoErr(err)
		is.True(!fetched.Borrowed())
	})

	t.Run("concurrent loans on one book, exactly one wins", func(t *testing.T) {
		is := is.New(t)
		b, err := store.CreateBook(ctx, newBook("Solaris"))
		is.NoErr(err)

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins, conflicts := 0, 0
		for i := 0; i < 10; i++ {
			br := mustBorrower(t, store, uuid.NewString())
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.SetLoan(ctx, b.ID, newLoan(br.ID))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					wins++
				case errors.Is(err, book.ErrResponseCheckoutConflict):
					conflicts++
				}
			}()
		}
		wg.Wait()
		is.Equal(wins, 1)
		is.Equal(conflicts, 9)
	})

	t.Run("releases every loan of a borrower", func(t *testing.T) {
		is := is.New(t)
		bob := mustBorrower(t, store, "Bob")
		first, _ := store.CreateBook(ctx, newBook("Neuromancer"))
		second, _ := store.CreateBook(ctx, newBook("Count Zero"))
		_, err := store.SetLoan(ctx, first.ID, newLoan(bob.ID))
		is.NoErr(err)
		_, err = store.SetLoan(ctx, second.ID, newLoan(bob.ID))
		is.NoErr(err)

		n, err := store.ReleaseLoans(ctx, bob.ID)
		is.NoErr(err)
		is.Equal(n, 2)

		fetched, err := store.GetBookByID(ctx, second.ID)
		is.NoErr(err)
		is.True(!fetched.Borrowed())
	})
}

func TestDanglingBorrower(t *testing.T) {
	is := is.New(t)
	store := newStore()
	ada := mustBorrower(t, store, "Ada")
	b, err := store.CreateBook(ctx, newBook("Dune"))
	is.NoErr(err)
	_, err = store.SetLoan(ctx, b.ID, newLoan(ada.ID))
	is.NoErr(err)

	// The store alone does not release loans, the read path must still cope.
	is.NoErr(store.DeleteBorrower(ctx, ada.ID))

	fetched, err := store.GetBookByID(ctx, b.ID)
	is.NoErr(err)
	is.True(fetched.Borrowed())
	is.True(fetched.Loan.Borrower == nil)
}

func TestSearchBooks(t *testing.T) {
	store := newStore()
	ada := mustBorrower(t, store, "Ada")
	for _, title := range []string{"Foundation", "dune messiah", "Dune"} {
		if _, err := store.CreateBook(ctx, newBook(title)); err != nil {
			t.Fatal(err)
		}
	}
	classic := newBook("The Left Hand of Darkness")
	classic.Category = "Classics"
	classic, _ = store.CreateBook(ctx, classic)
	_, err := store.SetLoan(ctx, classic.ID, newLoan(ada.ID))
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]struct {
		query        string
		availability book.Availability
		want         []string
	}{
		"title substring, sorted case-insensitively": {"DUNE", book.AvailabilityAll, []string{"Dune", "dune messiah"}},
		"category substring":                         {"classic", book.AvailabilityAll, []string{"The Left Hand of Darkness"}},
		"empty query lists everything":               {"", book.AvailabilityAll, []string{"Dune", "dune messiah", "Foundation", "The Left Hand of Darkness"}},
		"available only":                             {"", book.AvailabilityAvailable, []string{"Dune", "dune messiah", "Foundation"}},
		"borrowed only":                              {"", book.AvailabilityBorrowed, []string{"The Left Hand of Darkness"}},
		"no match":                                   {"asimov", book.AvailabilityAll, []string{}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			books, err := store.SearchBooks(ctx, tc.query, tc.availability)
			is.NoErr(err)
			titles := []string{}
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			is.Equal(titles, tc.want)
		})
	}
}

func TestAuthors(t *testing.T) {
	store := newStore()

	t.Run("names are unique", func(t *testing.T) {
		is := is.New(t)
		_, err := store.CreateAuthor(ctx, book.Author{ID: uuid.New(), Name: "Ursula K. Le Guin"})
		is.NoErr(err)

		_, err = store.CreateAuthor(ctx, book.Author{ID: uuid.New(), Name: "Ursula K. Le Guin"})
		is.True(errors.Is(err, book.ErrResponseAuthorNameConflict))

		found, err := store.GetAuthorByName(ctx, "Ursula K. Le Guin")
		is.NoErr(err)
		is.Equal(found.Name, "Ursula K. Le Guin")
	})

	t.Run("unlinking keeps the books", func(t *testing.T) {
		is := is.New(t)
		author, err := store.CreateAuthor(ctx, book.Author{ID: uuid.New(), Name: "Iain M. Banks"})
		is.NoErr(err)
		b := newBook("Excession")
		b.AuthorID = &author.ID
		_, err = store.CreateBook(ctx, b)
		is.NoErr(err)

		n, err := store.UnlinkAuthor(ctx, author.ID)
		is.NoErr(err)
		is.Equal(n, 1)
		is.NoErr(store.DeleteAuthor(ctx, author.ID))

		fetched, err := store.GetBookByID(ctx, b.ID)
		is.NoErr(err)
		is.True(fetched.AuthorID == nil)

		_, err = store.GetAuthorByID(ctx, author.ID)
		is.True(errors.Is(err, book.ErrResponseAuthorNotFound))
	})

	t.Run("searches by name", func(t *testing.T) {
		is := is.New(t)
		authors, err := store.SearchAuthors(ctx, "guin")
		is.NoErr(err)
		is.Equal(len(authors), 1)
	})
}

func TestBorrowers(t *testing.T) {
	is := is.New(t)
	store := newStore()
	ada := mustBorrower(t, store, "Ada")
	mustBorrower(t, store, "bob")

	ada.Address = "London"
	updated, err := store.UpdateBorrower(ctx, ada)
	is.NoErr(err)
	is.Equal(updated.Address, "London")

	found, err := store.SearchBorrowers(ctx, "")
	is.NoErr(err)
	is.Equal(len(found), 2)
	is.Equal(found[0].Name, "Ada")

	is.NoErr(store.DeleteBorrower(ctx, ada.ID))
	err = store.DeleteBorrower(ctx, ada.ID)
	is.True(errors.Is(err, book.ErrResponseBorrowerNotFound))
}

func TestBeginTx(t *testing.T) {
	t.Run("rolled back writes are discarded", func(t *testing.T) {
		is := is.New(t)
		store := newStore()

		txRepo, tx, err := store.BeginTx(ctx, nil)
		is.NoErr(err)
		b := newBook("Dune")
		_, err = txRepo.CreateBook(ctx, b)
		is.NoErr(err)
		_, err = txRepo.GetBookByID(ctx, b.ID)
		is.NoErr(err) // visible inside the transaction
		is.NoErr(tx.Rollback())

		_, err = store.GetBookByID(ctx, b.ID)
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})

	t.Run("committed writes are visible", func(t *testing.T) {
		is := is.New(t)
		store := newStore()

		txRepo, tx, err := store.BeginTx(ctx, nil)
		is.NoErr(err)
		b := newBook("Dune")
		_, err = txRepo.CreateBook(ctx, b)
		is.NoErr(err)
		is.NoErr(tx.Commit())
		is.NoErr(tx.Rollback())

		_, err = store.GetBookByID(ctx, b.ID)
		is.NoErr(err)
	})

	t.Run("expected context error", func(t *testing.T) {
		is := is.New(t)
		store := newStore()
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := store.BeginTx(canceled, nil)
		is.True(errors.Is(err, context.Canceled))
	})
}
