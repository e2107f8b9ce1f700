package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/library-service/cmd/api/book"
	"github.com/library-service/cmd/api/receipt"
)

/* Confirms the checkout draft sent by the client and runs the checkout. */
func (h *BookHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var draft book.CheckoutDraft
	if !h.readJSON(w, r, &draft) {
		return
	}

	req, err := draft.Confirm(h.now())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	borrowed, err := h.bookService.Checkout(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusOK, bookToResponse(borrowed))
}

type CheckinEntry struct {
	BookID uuid.UUID `json:"bookId"`
}

func (h *BookHandler) checkin(w http.ResponseWriter, r *http.Request) {
	var entry CheckinEntry
	if !h.readJSON(w, r, &entry) {
		return
	}
	if entry.BookID == uuid.Nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return
	}

	returned, err := h.bookService.Checkin(r.Context(), entry.BookID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusOK, bookToResponse(returned))
}

type ReceiptResponse struct {
	Book     []receipt.Field `json:"book"`
	Borrower []receipt.Field `json:"borrower"`
}

/* Serves the receipt of the current loan of a book, as PDF or with ?format=json as JSON. */
func (h *BookHandler) loanReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := isolateId(w, r)
	if !ok {
		return
	}

	b, err := h.bookService.GetBook(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	rcpt, err := receipt.FromBook(b)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		responseJSON(w, http.StatusOK, ReceiptResponse{Book: rcpt.BookFields(), Borrower: rcpt.BorrowerFields()})
		return
	}

	var buf bytes.Buffer
	if err := rcpt.WritePDF(&buf); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rcpt.Filename()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
