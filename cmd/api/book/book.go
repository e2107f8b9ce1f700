package book

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

type Book struct {
	ID          uuid.UUID
	Title       string
	Category    string
	Price       *float64
	ImageURL    string
	Description string
	AuthorID    *uuid.UUID
	Author      *Author // populated on reads, nil when the reference does not resolve
	Loan        *Loan   // nil while the book is available
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Loan holds the borrowing fields of a book. They are set and cleared together.
type Loan struct {
	BorrowerID uuid.UUID
	Borrower   *Borrower
	BorrowDate time.Time
	ReturnDate time.Time
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusBorrowed  Status = "borrowed"
)

func (b Book) Borrowed() bool {
	return b.Loan != nil
}

func (b Book) Status() Status {
	if b.Borrowed() {
		return StatusBorrowed
	}
	return StatusAvailable
}

/* Checks the borrowing invariant: a borrowed book carries a borrower and both dates, in order. */
func (b Book) CheckInvariant() error {
	if b.Loan == nil {
		return nil
	}
	l := b.Loan
	switch {
	case l.BorrowerID == uuid.Nil:
		return fmt.Errorf("book %s: loan without borrower", b.ID)
	case l.BorrowDate.IsZero() || l.ReturnDate.IsZero():
		return fmt.Errorf("book %s: loan without dates", b.ID)
	case l.ReturnDate.Before(l.BorrowDate):
		return fmt.Errorf("book %s: return date before borrow date", b.ID)
	}
	return nil
}

/* Reports whether query is a case-insensitive substring of the title or the category. An empty query matches every book. */
func (b Book) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Category), q)
}

type Author struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Borrower struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func containsFold(s, query string) bool {
	return query == "" || strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

func (a Author) MatchesQuery(query string) bool {
	return containsFold(a.Name, query)
}

func (b Borrower) MatchesQuery(query string) bool {
	return containsFold(b.Name, query) || containsFold(b.Email, query)
}

// Availability selects one of the search projections over the catalog.
type Availability string

const (
	AvailabilityAll       Availability = "all"
	AvailabilityAvailable Availability = "available"
	AvailabilityBorrowed  Availability = "borrowed"
)

func ParseAvailability(s string) (Availability, error) {
	switch a := Availability(s); a {
	case "":
		return AvailabilityAll, nil
	case AvailabilityAll, AvailabilityAvailable, AvailabilityBorrowed:
		return a, nil
	}
	return "", ErrResponseAvailabilityInvalid
}

func (a Availability) Matches(b Book) bool {
	switch a {
	case AvailabilityAvailable:
		return !b.Borrowed()
	case AvailabilityBorrowed:
		return b.Borrowed()
	}
	return true
}

const dateLayout = "2006-01-02"

// Date is a calendar day at UTC midnight. It marshals as YYYY-MM-DD and also accepts RFC 3339 timestamps.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return NewDate(t), nil
}

func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
