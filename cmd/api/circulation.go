package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/library-service/cmd/api/book"
	"github.com/library-service/cmd/api/client"
	"github.com/library-service/cmd/api/config"
	bookhttp "github.com/library-service/cmd/api/http"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newClient(cfg *config.Config) *client.Client {
	return client.New(cfg.APIURL, cfg.RequestTimeout)
}

func newCheckoutCmd(cfg *config.Config) *cobra.Command {
	var bookID, borrowerID, borrowDate, returnDate, confirmation string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Lend a book to a borrower",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := buildDraft(bookID, borrowerID, borrowDate, returnDate)
			if err != nil {
				return err
			}

			if confirmation == "" && term.IsTerminal(int(os.Stdin.Fd())) {
				confirmation, err = promptConfirmation(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			draft.Confirmation = confirmation

			req, err := draft.Confirm(time.Now())
			if err != nil {
				return err
			}
			borrowed, err := newClient(cfg).Checkout(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q borrowed from %s until %s\n", borrowed.Title, borrowed.BorrowDate, borrowed.ReturnDate)
			return nil
		},
	}
	cmd.Flags().StringVar(&bookID, "book", "", "id of the book")
	cmd.Flags().StringVar(&borrowerID, "borrower", "", "id of the borrower")
	cmd.Flags().StringVar(&borrowDate, "borrow-date", "", "YYYY-MM-DD, defaults to today")
	cmd.Flags().StringVar(&returnDate, "return-date", "", fmt.Sprintf("YYYY-MM-DD, defaults to %d days after today", book.DefaultLoanDays))
	cmd.Flags().StringVar(&confirmation, "confirm", "", fmt.Sprintf("type %q to confirm without a prompt", book.CheckoutConfirmationToken))
	cmd.MarkFlagRequired("book")
	cmd.MarkFlagRequired("borrower")
	return cmd
}

func buildDraft(bookID, borrowerID, borrowDate, returnDate string) (book.CheckoutDraft, error) {
	var draft book.CheckoutDraft
	var err error
	if draft.BookID, err = uuid.Parse(bookID); err != nil {
		return draft, fmt.Errorf("--book: %w", book.ErrResponseIdInvalidFormat)
	}
	if draft.BorrowerID, err = uuid.Parse(borrowerID); err != nil {
		return draft, fmt.Errorf("--borrower: %w", book.ErrResponseIdInvalidFormat)
	}
	if borrowDate != "" {
		d, err := book.ParseDate(borrowDate)
		if err != nil {
			return draft, fmt.Errorf("--borrow-date: %w", err)
		}
		draft.BorrowDate = &d
	}
	if returnDate != "" {
		d, err := book.ParseDate(returnDate)
		if err != nil {
			return draft, fmt.Errorf("--return-date: %w", err)
		}
		draft.ReturnDate = &d
	}
	return draft, nil
}

func promptConfirmation(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintf(out, "Type %q to confirm: ", book.CheckoutConfirmationToken)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newCheckinCmd(cfg *config.Config) *cobra.Command {
	var bookID string

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Return a borrowed book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(bookID)
			if err != nil {
				return fmt.Errorf("--book: %w", book.ErrResponseIdInvalidFormat)
			}
			returned, err := newClient(cfg).Checkin(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q is available\n", returned.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&bookID, "book", "", "id of the book")
	cmd.MarkFlagRequired("book")
	return cmd
}

func newBooksCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "books [all|available|borrowed] [query]",
		Short:     "Search the catalog",
		Args:      cobra.MaximumNArgs(2),
		ValidArgs: []string{string(book.AvailabilityAll), string(book.AvailabilityAvailable), string(book.AvailabilityBorrowed)},
		RunE: func(cmd *cobra.Command, args []string) error {
			var availabilityArg, query string
			if len(args) > 0 {
				availabilityArg = args[0]
			}
			if len(args) > 1 {
				query = args[1]
			}
			availability, err := book.ParseAvailability(availabilityArg)
			if err != nil {
				return err
			}

			books, err := newClient(cfg).SearchBooks(cmd.Context(), availability, query)
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), books)
			return nil
		},
	}
}

func printBooks(out io.Writer, books []bookhttp.BookResponse) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tBORROWER\tRETURN")
	for _, b := range books {
		borrower, due := "-", "-"
		if b.Borrower != nil {
			borrower = b.Borrower.Name
		}
		if b.ReturnDate != nil {
			due = b.ReturnDate.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Category, b.Status, borrower, due)
	}
	tw.Flush()
}
