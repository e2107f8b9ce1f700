package book_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/library-service/cmd/api/book"
	"github.com/library-service/cmd/api/inmemory"
	"github.com/matryer/is"
)

// library wires the service to a fresh in-memory store.
type library struct {
	svc *book.Service
	now time.Time
}

func newLibrary(t *testing.T) *library {
	t.Helper()
	store, err := inmemory.NewInMemoryStore()
	if err != nil {
		t.Fatal(err)
	}
	l := &library{now: time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)}
	l.svc = book.NewService(store, nil, notificationsTimeout, book.WithClock(func() time.Time { return l.now }))
	return l
}

func (l *library) addBook(t *testing.T, title, category string) book.Book {
	t.Helper()
	b, err := l.svc.CreateBook(ctx, book.CreateBookRequest{Title: title, Category: category, AuthorName: "Frank Herbert"})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func (l *library) addBorrower(t *testing.T, name string) book.Borrower {
	t.Helper()
	br, err := l.svc.CreateBorrower(ctx, book.CreateBorrowerRequest{Name: name, Email: name + "@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	return br
}

func (l *library) checkout(bookID, borrowerID uuid.UUID) (book.Book, error) {
	req, err := book.CheckoutDraft{BookID: bookID, BorrowerID: borrowerID, Confirmation: book.CheckoutConfirmationToken}.Confirm(l.now)
	if err != nil {
		return book.Book{}, err
	}
	return l.svc.Checkout(ctx, req)
}

func titles(books []book.Book) []string {
	out := []string{}
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestCheckoutWorkflow(t *testing.T) {
	t.Run("defaults the return date five days after the borrow date", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")
		ada := l.addBorrower(t, "ada")

		borrowed, err := l.checkout(dune.ID, ada.ID)
		is.NoErr(err)
		is.Equal(borrowed.Status(), book.StatusBorrowed)
		is.Equal(book.NewDate(borrowed.Loan.BorrowDate).String(), "2024-01-10")
		is.Equal(book.NewDate(borrowed.Loan.ReturnDate).String(), "2024-01-15")
		is.Equal(borrowed.Loan.Borrower.Name, "ada")
		is.Equal(borrowed.Author.Name, "Frank Herbert")
	})

	t.Run("a second checkout fails and keeps the first borrower", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")
		ada, bob := l.addBorrower(t, "ada"), l.addBorrower(t, "bob")

		_, err := l.checkout(dune.ID, ada.ID)
		is.NoErr(err)
		_, err = l.checkout(dune.ID, bob.ID)
		is.True(errors.Is(err, book.ErrResponseAlreadyBorrowed))

		current, err := l.svc.GetBook(ctx, dune.ID)
		is.NoErr(err)
		is.Equal(current.Loan.BorrowerID, ada.ID)
	})

	t.Run("check in after checkout returns the book to available", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")
		ada := l.addBorrower(t, "ada")

		_, err := l.checkout(dune.ID, ada.ID)
		is.NoErr(err)
		returned, err := l.svc.Checkin(ctx, dune.ID)
		is.NoErr(err)
		is.True(returned.Loan == nil)
		is.NoErr(returned.CheckInvariant())

		_, err = l.svc.Checkin(ctx, dune.ID)
		is.True(errors.Is(err, book.ErrResponseNotBorrowed))
	})

	t.Run("unknown book and borrower", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")
		ada := l.addBorrower(t, "ada")

		_, err := l.checkout(uuid.New(), ada.ID)
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
		_, err = l.checkout(dune.ID, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBorrowerNotFound))
		_, err = l.svc.Checkin(ctx, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})

	t.Run("of concurrent checkouts exactly one wins", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")

		const contenders = 8
		borrowers := make([]book.Borrower, contenders)
		for i := range borrowers {
			borrowers[i] = l.addBorrower(t, uuid.NewString())
		}

		var wg sync.WaitGroup
		errs := make([]error, contenders)
		start := make(chan struct{})
		for i := range borrowers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, errs[i] = l.checkout(dune.ID, borrowers[i].ID)
			}(i)
		}
		close(start)
		wg.Wait()

		winner := -1
		for i, err := range errs {
			if err == nil {
				is.Equal(winner, -1) // only one checkout may succeed
				winner = i
				continue
			}
			is.True(errors.Is(err, book.ErrResponseAlreadyBorrowed) || errors.Is(err, book.ErrResponseCheckoutConflict))
		}
		is.True(winner >= 0)

		current, err := l.svc.GetBook(ctx, dune.ID)
		is.NoErr(err)
		is.Equal(current.Loan.BorrowerID, borrowers[winner].ID)
	})
}

func TestSearchProjections(t *testing.T) {
	is := is.New(t)
	l := newLibrary(t)
	dune := l.addBook(t, "Dune", "Science Fiction")
	l.addBook(t, "Dune Messiah", "Science Fiction")
	l.addBook(t, "Foundation", "Classics")
	ada := l.addBorrower(t, "ada")

	found, err := l.svc.SearchBooks(ctx, book.SearchBooksRequest{Query: "Dune"})
	is.NoErr(err)
	is.Equal(titles(found), []string{"Dune", "Dune Messiah"})

	found, err = l.svc.SearchBooks(ctx, book.SearchBooksRequest{Query: "classic"})
	is.NoErr(err)
	is.Equal(titles(found), []string{"Foundation"})

	_, err = l.checkout(dune.ID, ada.ID)
	is.NoErr(err)

	found, err = l.svc.SearchBooks(ctx, book.SearchBooksRequest{Query: "dune", Availability: book.AvailabilityAvailable})
	is.NoErr(err)
	is.Equal(titles(found), []string{"Dune Messiah"})

	found, err = l.svc.SearchBooks(ctx, book.SearchBooksRequest{Availability: book.AvailabilityBorrowed})
	is.NoErr(err)
	is.Equal(titles(found), []string{"Dune"})
	is.Equal(found[0].Loan.Borrower.ID, ada.ID)
	is.Equal(found[0].Author.Name, "Frank Herbert")
}

func TestDanglingReferences(t *testing.T) {
	t.Run("deleting a borrower releases its books", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")
		ada := l.addBorrower(t, "ada")

		_, err := l.checkout(dune.ID, ada.ID)
		is.NoErr(err)
		is.NoErr(l.svc.DeleteBorrower(ctx, ada.ID))

		current, err := l.svc.GetBook(ctx, dune.ID)
		is.NoErr(err)
		is.Equal(current.Status(), book.StatusAvailable)
		is.NoErr(current.CheckInvariant())

		borrowed, err := l.svc.SearchBooks(ctx, book.SearchBooksRequest{Availability: book.AvailabilityBorrowed})
		is.NoErr(err)
		is.Equal(len(borrowed), 0)
	})

	t.Run("deleting an author keeps its books without author", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")

		is.NoErr(l.svc.DeleteAuthor(ctx, *dune.AuthorID))

		current, err := l.svc.GetBook(ctx, dune.ID)
		is.NoErr(err)
		is.True(current.AuthorID == nil)
		is.True(current.Author == nil)
	})

	t.Run("updating with a stale author reference fails", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")
		read := *dune.AuthorID

		_, err := l.svc.UpdateBook(ctx, book.UpdateBookRequest{ID: dune.ID, Title: "Dune", AuthorName: "Brian Herbert", PreAuthorID: &read})
		is.NoErr(err)

		_, err = l.svc.UpdateBook(ctx, book.UpdateBookRequest{ID: dune.ID, Title: "Dune", AuthorName: "Kevin J. Anderson", PreAuthorID: &read})
		is.True(errors.Is(err, book.ErrResponseAuthorReferenceStale))
	})

	t.Run("authors are shared by name", func(t *testing.T) {
		is := is.New(t)
		l := newLibrary(t)
		dune := l.addBook(t, "Dune", "Science Fiction")
		messiah := l.addBook(t, "Dune Messiah", "Science Fiction")

		is.Equal(*dune.AuthorID, *messiah.AuthorID)

		authors, err := l.svc.SearchAuthors(ctx, "herbert")
		is.NoErr(err)
		is.Equal(len(authors), 1)
	})
}
