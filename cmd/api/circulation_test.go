package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/library-service/cmd/api/book"
	"github.com/library-service/cmd/api/config"
	"github.com/matryer/is"
)

func TestCheckoutCmd(t *testing.T) {
	t.Run("documents the default return date", func(t *testing.T) {
		is := is.New(t)
		cfg := config.Default()
		cmd := newCheckoutCmd(&cfg)

		usage := cmd.Flags().Lookup("return-date").Usage
		is.Equal(usage, "YYYY-MM-DD, defaults to 5 days after today")
	})

	t.Run("the return date defaults from today, not from the borrow date", func(t *testing.T) {
		is := is.New(t)
		today := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

		draft, err := buildDraft(uuid.NewString(), uuid.NewString(), "2024-01-12", "")
		is.NoErr(err)
		draft.Confirmation = book.CheckoutConfirmationToken

		req, err := draft.Confirm(today)
		is.NoErr(err)
		is.Equal(req.ReturnDate().String(), "2024-01-15")

		draft, err = buildDraft(uuid.NewString(), uuid.NewString(), "2024-01-20", "")
		is.NoErr(err)
		draft.Confirmation = book.CheckoutConfirmationToken
		_, err = draft.Confirm(today)
		is.True(errors.Is(err, book.ErrResponseInvalidLoanWindow))
	})

	t.Run("rejects malformed flags", func(t *testing.T) {
		is := is.New(t)

		_, err := buildDraft("nope", uuid.NewString(), "", "")
		is.True(errors.Is(err, book.ErrResponseIdInvalidFormat))

		_, err = buildDraft(uuid.NewString(), uuid.NewString(), "", "15/01/2024")
		is.True(err != nil)
		is.True(strings.HasPrefix(err.Error(), "--return-date"))
	})
}
