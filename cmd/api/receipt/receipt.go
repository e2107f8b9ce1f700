// Package receipt builds the document handed to a borrower when a book is checked out.
package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/library-service/cmd/api/book"
)

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Receipt struct {
	BookTitle       string
	AuthorName      string
	Category        string
	Price           string
	BorrowDate      string
	ReturnDate      string
	BorrowerName    string
	BorrowerEmail   string
	BorrowerAddress string
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

/* FromBook builds the receipt of the current loan of b. An available book has no receipt. */
func FromBook(b book.Book) (Receipt, error) {
	if !b.Borrowed() {
		return Receipt{}, fmt.Errorf("building receipt for book %s: %w", b.ID, book.ErrResponseNotBorrowed)
	}

	price := 0.0
	if b.Price != nil {
		price = *b.Price
	}
	r := Receipt{
		BookTitle:  orDefault(b.Title, "N/A"),
		AuthorName: "Unknown",
		Category:   orDefault(b.Category, "N/A"),
		Price:      fmt.Sprintf("%.2f/-", price),
		BorrowDate: book.NewDate(b.Loan.BorrowDate).String(),
		ReturnDate: book.NewDate(b.Loan.ReturnDate).String(),

		BorrowerName:    "N/A",
		BorrowerEmail:   "N/A",
		BorrowerAddress: "N/A",
	}
	if b.Author != nil {
		r.AuthorName = orDefault(b.Author.Name, "Unknown")
	}
	if br := b.Loan.Borrower; br != nil {
		r.BorrowerName = orDefault(br.Name, "N/A")
		r.BorrowerEmail = orDefault(br.Email, "N/A")
		r.BorrowerAddress = orDefault(br.Address, "N/A")
	}
	return r, nil
}

func (r Receipt) BookFields() []Field {
	return []Field{
		{"Title", r.BookTitle},
		{"Author", r.AuthorName},
		{"Category", r.Category},
		{"Price", r.Price},
		{"Borrow Date", r.BorrowDate},
		{"Return Date", r.ReturnDate},
	}
}

func (r Receipt) BorrowerFields() []Field {
	return []Field{
		{"Name", r.BorrowerName},
		{"Email", r.BorrowerEmail},
		{"Address", r.BorrowerAddress},
	}
}

func (r Receipt) Filename() string {
	return fmt.Sprintf("CheckoutReceipt-%s.pdf", r.BookTitle)
}

/* WritePDF renders the receipt as an A4 page with a book table and a borrower table. */
func (r Receipt) WritePDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Checkout Book Receipt", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Checkout Book Receipt", "", 1, "C", false, 0, "")

	section := func(title string, fields []Field) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, f := range fields {
			pdf.CellFormat(45, 7, f.Label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, tr(f.Value), "1", 1, "L", false, 0, "")
		}
	}
	section("Selected Book Details", r.BookFields())
	section("Selected Borrower Details", r.BorrowerFields())

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering receipt: %w", err)
	}
	return nil
}
