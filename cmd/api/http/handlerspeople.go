package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/library-service/cmd/api/book"
)

// -- Authors --

type AuthorEntry struct {
	AuthorID uuid.UUID `json:"authorId"`
	Name     string    `json:"authorName"`
	Email    string    `json:"authorEmail"`
	Phone    string    `json:"authorPhone"`
}

func (h *BookHandler) searchAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.bookService.SearchAuthors(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	resp := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		resp = append(resp, authorToResponse(a))
	}
	responseJSON(w, http.StatusOK, resp)
}

func (h *BookHandler) createAuthor(w http.ResponseWriter, r *http.Request) {
	var entry AuthorEntry
	if !h.readJSON(w, r, &entry) {
		return
	}
	created, err := h.bookService.CreateAuthor(r.Context(), book.CreateAuthorRequest{
		Name:  entry.Name,
		Email: entry.Email,
		Phone: entry.Phone,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusCreated, authorToResponse(created))
}

func (h *BookHandler) updateAuthor(w http.ResponseWriter, r *http.Request) {
	var entry AuthorEntry
	if !h.readJSON(w, r, &entry) {
		return
	}
	if entry.AuthorID == uuid.Nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return
	}
	updated, err := h.bookService.UpdateAuthor(r.Context(), book.UpdateAuthorRequest{
		ID:    entry.AuthorID,
		Name:  entry.Name,
		Email: entry.Email,
		Phone: entry.Phone,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusOK, authorToResponse(updated))
}

func (h *BookHandler) getAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := isolateId(w, r)
	if !ok {
		return
	}
	a, err := h.bookService.GetAuthor(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusOK, authorToResponse(a))
}

func (h *BookHandler) deleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := isolateId(w, r)
	if !ok {
		return
	}
	if err := h.bookService.DeleteAuthor(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Borrowers --

type BorrowerEntry struct {
	BorrowerID uuid.UUID `json:"borrowerId"`
	Name       string    `json:"borrowerName"`
	Email      string    `json:"borrowerEmail"`
	Phone      string    `json:"borrowerPhone"`
	Address    string    `json:"borrowerAddress"`
}

func (h *BookHandler) searchBorrowers(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.bookService.SearchBorrowers(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	resp := make([]BorrowerResponse, 0, len(borrowers))
	for _, b := range borrowers {
		resp = append(resp, borrowerToResponse(b))
	}
	responseJSON(w, http.StatusOK, resp)
}

func (h *BookHandler) createBorrower(w http.ResponseWriter, r *http.Request) {
	var entry BorrowerEntry
	if !h.readJSON(w, r, &entry) {
		return
	}
	created, err := h.bookService.CreateBorrower(r.Context(), book.CreateBorrowerRequest{
		Name:    entry.Name,
		Email:   entry.Email,
		Phone:   entry.Phone,
		Address: entry.Address,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusCreated, borrowerToResponse(created))
}

func (h *BookHandler) updateBorrower(w http.ResponseWriter, r *http.Request) {
	var entry BorrowerEntry
	if !h.readJSON(w, r, &entry) {
		return
	}
	if entry.BorrowerID == uuid.Nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return
	}
	updated, err := h.bookService.UpdateBorrower(r.Context(), book.UpdateBorrowerRequest{
		ID:      entry.BorrowerID,
		Name:    entry.Name,
		Email:   entry.Email,
		Phone:   entry.Phone,
		Address: entry.Address,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusOK, borrowerToResponse(updated))
}

func (h *BookHandler) getBorrower(w http.ResponseWriter, r *http.Request) {
	id, ok := isolateId(w, r)
	if !ok {
		return
	}
	b, err := h.bookService.GetBorrower(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusOK, borrowerToResponse(b))
}

/* Deletes a borrower. Books it still holds become available. */
func (h *BookHandler) deleteBorrower(w http.ResponseWriter, r *http.Request) {
	id, ok := isolateId(w, r)
	if !ok {
		return
	}
	if err := h.bookService.DeleteBorrower(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
