package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/library-service/cmd/api/book"
)

const (
	topicCheckedOut = "Book_checked_out"
	topicCheckedIn  = "Book_checked_in"
)

// Ntfy publishes circulation events to ntfy topics under baseURL.
type Ntfy struct {
	baseURL string
	enabled bool
	client  *http.Client
}

func NewNtfy(enableNotifications bool, notificationsBaseURL string, client *http.Client) *Ntfy {
	if client == nil {
		client = &http.Client{}
	}
	return &Ntfy{
		baseURL: strings.TrimRight(notificationsBaseURL, "/"),
		enabled: enableNotifications,
		client:  client,
	}
}

func (ntf *Ntfy) BookCheckedOut(ctx context.Context, b book.Book) error {
	msg := fmt.Sprintf("Book checked out:\nTitle: %s\nBorrower: %s\nReturn date: %s", b.Title, borrowerName(b), returnDate(b))
	return ntf.publish(ctx, topicCheckedOut, "Book checked out", msg)
}

func (ntf *Ntfy) BookCheckedIn(ctx context.Context, b book.Book) error {
	msg := fmt.Sprintf("Book checked in:\nTitle: %s\nBorrower: %s", b.Title, borrowerName(b))
	return ntf.publish(ctx, topicCheckedIn, "Book checked in", msg)
}

func (ntf *Ntfy) publish(ctx context.Context, topic, title, msg string) error {
	if !ntf.enabled {
		return nil
	}
	url := ntf.baseURL + "/" + topic
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(msg))
	if err != nil {
		return fmt.Errorf("delivering message to topic (%s): %w", url, err)
	}
	req.Header.Set("Title", title)

	resp, err := ntf.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivering message to topic (%s): %w", url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delivering message to topic (%s): %w", url, book.NewErrNotificationFailed(resp.StatusCode))
	}
	return nil
}

func borrowerName(b book.Book) string {
	if b.Loan == nil || b.Loan.Borrower == nil {
		return "unknown"
	}
	return b.Loan.Borrower.Name
}

func returnDate(b book.Book) string {
	if b.Loan == nil {
		return "-"
	}
	return book.NewDate(b.Loan.ReturnDate).String()
}
