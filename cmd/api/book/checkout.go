package book

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutConfirmationToken must be typed by the librarian before a checkout is sent.
const CheckoutConfirmationToken = "checkout"

// DefaultLoanDays is the loan length used when no return date is given.
const DefaultLoanDays = 5

// CheckoutDraft is the state of a checkout form before it is committed:
// the selected book and borrower, optional dates and the confirmation text.
type CheckoutDraft struct {
	BookID       uuid.UUID `json:"bookId"`
	BorrowerID   uuid.UUID `json:"borrowerId"`
	BorrowDate   *Date     `json:"borrowDate,omitempty"`
	ReturnDate   *Date     `json:"returnDate,omitempty"`
	Confirmation string    `json:"confirmation"`
}

// ConfirmedCheckoutRequest is a checkout the librarian has confirmed.
// It can only be built by CheckoutDraft.Confirm.
type ConfirmedCheckoutRequest struct {
	bookID     uuid.UUID
	borrowerID uuid.UUID
	borrowDate Date
	returnDate Date
}

/*
Confirm commits the draft. Missing dates default to the day of now and
DefaultLoanDays later, so the loan window starts when the librarian confirms
and not when the form was opened.
*/
func (d CheckoutDraft) Confirm(now time.Time) (ConfirmedCheckoutRequest, error) {
	if d.Confirmation != CheckoutConfirmationToken {
		return ConfirmedCheckoutRequest{}, ErrResponseCheckoutNotConfirmed
	}
	if d.BookID == uuid.Nil || d.BorrowerID == uuid.Nil {
		return ConfirmedCheckoutRequest{}, ErrResponseCheckoutEntryBlankFields
	}

	today := NewDate(now)
	req := ConfirmedCheckoutRequest{
		bookID:     d.BookID,
		borrowerID: d.BorrowerID,
		borrowDate: today,
		returnDate: today.AddDays(DefaultLoanDays),
	}
	if d.BorrowDate != nil {
		req.borrowDate = NewDate(d.BorrowDate.Time)
	}
	if d.ReturnDate != nil {
		req.returnDate = NewDate(d.ReturnDate.Time)
	}
	if err := req.validate(); err != nil {
		return ConfirmedCheckoutRequest{}, err
	}
	return req, nil
}

func (r ConfirmedCheckoutRequest) BookID() uuid.UUID     { return r.bookID }
func (r ConfirmedCheckoutRequest) BorrowerID() uuid.UUID { return r.borrowerID }
func (r ConfirmedCheckoutRequest) BorrowDate() Date      { return r.borrowDate }
func (r ConfirmedCheckoutRequest) ReturnDate() Date      { return r.returnDate }

/* Draft returns the wire form of the request, with the dates resolved and the confirmation filled in. */
func (r ConfirmedCheckoutRequest) Draft() CheckoutDraft {
	borrowDate, returnDate := r.borrowDate, r.returnDate
	return CheckoutDraft{
		BookID:       r.bookID,
		BorrowerID:   r.borrowerID,
		BorrowDate:   &borrowDate,
		ReturnDate:   &returnDate,
		Confirmation: CheckoutConfirmationToken,
	}
}

func (r ConfirmedCheckoutRequest) validate() error {
	if r.bookID == uuid.Nil || r.borrowerID == uuid.Nil || r.borrowDate.IsZero() || r.returnDate.IsZero() {
		return ErrResponseCheckoutNotConfirmed
	}
	if r.returnDate.Before(r.borrowDate.Time) {
		return ErrResponseInvalidLoanWindow
	}
	return nil
}

/*
Checkout moves a book from available to borrowed. The preconditions are read
and the loan is written inside one repository transaction, and the write itself
is conditional on the book still being available, so of two concurrent
checkouts only one can succeed.
*/
func (s *Service) Checkout(ctx context.Context, req ConfirmedCheckoutRequest) (Book, error) {
	if err := req.validate(); err != nil {
		return Book{}, err
	}

	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return Book{}, fmt.Errorf("checking out book: %w", err)
	}
	defer tx.Rollback()

	current, err := txRepo.GetBookByID(ctx, req.bookID)
	if err != nil {
		return Book{}, fmt.Errorf("checking out book: %w", err)
	}
	if current.Borrowed() {
		return Book{}, fmt.Errorf("checking out book %s: %w", current.ID, ErrResponseAlreadyBorrowed)
	}
	if _, err := txRepo.GetBorrowerByID(ctx, req.borrowerID); err != nil {
		return Book{}, fmt.Errorf("checking out book %s: %w", current.ID, err)
	}

	borrowed, err := txRepo.SetLoan(ctx, req.bookID, Loan{
		BorrowerID: req.borrowerID,
		BorrowDate: req.borrowDate.Time,
		ReturnDate: req.returnDate.Time,
	})
	if err != nil {
		return Book{}, fmt.Errorf("checking out book %s: %w", current.ID, err)
	}
	if err := borrowed.CheckInvariant(); err != nil {
		return Book{}, fmt.Errorf("checking out book: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Book{}, fmt.Errorf("checking out book, committing: %w", err)
	}

	s.notify("book_checked_out", func(ctx context.Context) error {
		return s.ntfy.BookCheckedOut(ctx, borrowed)
	})
	return borrowed, nil
}

/* Checkin moves a borrowed book back to available. An available book is reported as ErrResponseNotBorrowed. */
func (s *Service) Checkin(ctx context.Context, id uuid.UUID) (Book, error) {
	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return Book{}, fmt.Errorf("checking in book: %w", err)
	}
	defer tx.Rollback()

	current, err := txRepo.GetBookByID(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("checking in book: %w", err)
	}
	if !current.Borrowed() {
		return Book{}, fmt.Errorf("checking in book %s: %w", id, ErrResponseNotBorrowed)
	}

	returned, err := txRepo.ClearLoan(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("checking in book %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return Book{}, fmt.Errorf("checking in book, committing: %w", err)
	}

	s.notify("book_checked_in", func(ctx context.Context) error {
		return s.ntfy.BookCheckedIn(ctx, current)
	})
	return returned, nil
}

func (s *Service) notify(event string, send func(ctx context.Context) error) {
	if s.ntfy == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notificationsTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			s.logger.Warn("notification failed", zap.String("event", event), zap.Error(err))
		}
	}()
}
