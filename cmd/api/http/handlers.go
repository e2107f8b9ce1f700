package http

//go:generate mockgen -destination=mocks/mock_service.go -package=httpmock github.com/library-service/cmd/api/book ServiceAPI

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/library-service/cmd/api/book"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

type BookHandler struct {
	bookService book.ServiceAPI
	logger      *zap.Logger
	now         func() time.Time
}

func NewBookHandler(bookService book.ServiceAPI, logger *zap.Logger) *BookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookHandler{bookService: bookService, logger: logger, now: time.Now}
}

type AuthorResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"authorName"`
	Email string    `json:"authorEmail"`
	Phone string    `json:"authorPhone"`
}

type BorrowerResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"borrowerName"`
	Email   string    `json:"borrowerEmail"`
	Phone   string    `json:"borrowerPhone"`
	Address string    `json:"borrowerAddress"`
}

type BookResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Category    string            `json:"category"`
	Price       *float64          `json:"price"`
	ImageURL    string            `json:"imageUrl"`
	Description string            `json:"description"`
	Status      book.Status       `json:"status"`
	AuthorID    *uuid.UUID        `json:"authorId"`
	Author      *AuthorResponse   `json:"author"`
	BorrowerID  *uuid.UUID        `json:"borrowerId"`
	Borrower    *BorrowerResponse `json:"borrower"`
	BorrowDate  *book.Date        `json:"borrowDate"`
	ReturnDate  *book.Date        `json:"returnDate"`
}

func authorToResponse(a book.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

func borrowerToResponse(b book.Borrower) BorrowerResponse {
	return BorrowerResponse{ID: b.ID, Name: b.Name, Email: b.Email, Phone: b.Phone, Address: b.Address}
}

func bookToResponse(b book.Book) BookResponse {
	resp := BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Category:    b.Category,
		Price:       b.Price,
		ImageURL:    b.ImageURL,
		Description: b.Description,
		Status:      b.Status(),
		AuthorID:    b.AuthorID,
	}
	if b.Author != nil {
		author := authorToResponse(*b.Author)
		resp.Author = &author
	}
	if b.Loan != nil {
		borrowerID := b.Loan.BorrowerID
		borrowDate, returnDate := book.NewDate(b.Loan.BorrowDate), book.NewDate(b.Loan.ReturnDate)
		resp.BorrowerID = &borrowerID
		resp.BorrowDate = &borrowDate
		resp.ReturnDate = &returnDate
		if b.Loan.Borrower != nil {
			borrower := borrowerToResponse(*b.Loan.Borrower)
			resp.Borrower = &borrower
		}
	}
	return resp
}

func booksToResponse(books []book.Book) []BookResponse {
	resp := make([]BookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, bookToResponse(b))
	}
	return resp
}

// -- Books --

type BookEntry struct {
	BookID      uuid.UUID  `json:"bookId"`
	Title       string     `json:"title"`
	AuthorName  string     `json:"authorName"`
	Category    string     `json:"category"`
	Price       *float64   `json:"price"`
	PreAuthorID *uuid.UUID `json:"preAuthorID"`
	ImageURL    string     `json:"imageUrl"`
	Description string     `json:"description"`
}

/* Returns the handler of one search projection over the catalog. */
func (h *BookHandler) searchBooks(availability book.Availability) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := h.bookService.SearchBooks(r.Context(), book.SearchBooksRequest{
			Query:        r.URL.Query().Get("query"),
			Availability: availability,
		})
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		responseJSON(w, http.StatusOK, booksToResponse(books))
	}
}

func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	var entry BookEntry
	if !h.readJSON(w, r, &entry) {
		return
	}

	created, err := h.bookService.CreateBook(r.Context(), book.CreateBookRequest{
		Title:       entry.Title,
		AuthorName:  entry.AuthorName,
		Category:    entry.Category,
		Price:       entry.Price,
		ImageURL:    entry.ImageURL,
		Description: entry.Description,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusCreated, bookToResponse(created))
}

func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request) {
	var entry BookEntry
	if !h.readJSON(w, r, &entry) {
		return
	}
	if entry.BookID == uuid.Nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return
	}

	updated, err := h.bookService.UpdateBook(r.Context(), book.UpdateBookRequest{
		ID:          entry.BookID,
		Title:       entry.Title,
		AuthorName:  entry.AuthorName,
		Category:    entry.Category,
		Price:       entry.Price,
		PreAuthorID: entry.PreAuthorID,
		ImageURL:    entry.ImageURL,
		Description: entry.Description,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusOK, bookToResponse(updated))
}

type DeleteBookEntry struct {
	BookID   uuid.UUID  `json:"bookId"`
	AuthorID *uuid.UUID `json:"authorId"`
}

func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request) {
	var entry DeleteBookEntry
	if !h.readJSON(w, r, &entry) {
		return
	}
	if entry.BookID == uuid.Nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return
	}

	err := h.bookService.DeleteBook(r.Context(), book.DeleteBookRequest{ID: entry.BookID, AuthorID: entry.AuthorID})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type DeletedResponse struct {
	Deleted int `json:"deleted"`
}

func (h *BookHandler) deleteAllBooks(w http.ResponseWriter, r *http.Request) {
	n, err := h.bookService.DeleteAllBooks(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	responseJSON(w, http.StatusOK, DeletedResponse{Deleted: n})
}

// -- Helpers --

/* Decodes the request body into dst. On failure the error response is written and false is returned. */
func (h *BookHandler) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		h.logger.Debug("invalid request body", zap.String("path", r.URL.Path), zap.Error(err))
		responseJSON(w, http.StatusBadRequest, book.ErrResponseEntryInvalidJSON)
		return false
	}
	return true
}

/* Parses the ":id" route parameter. On failure the error response is written and false is returned. */
func isolateId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := uuid.Parse(params.ByName("id"))
	if err != nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return uuid.Nil, false
	}
	return id, true
}

var statusByError = map[book.ErrResponse]int{
	book.ErrResponseBookEntryBlankFields:     http.StatusBadRequest,
	book.ErrResponseEntryInvalidJSON:         http.StatusBadRequest,
	book.ErrResponseIdInvalidFormat:          http.StatusBadRequest,
	book.ErrResponsePriceInvalid:             http.StatusBadRequest,
	book.ErrResponseAuthorEntryBlankFields:   http.StatusBadRequest,
	book.ErrResponseBorrowerEntryBlankFields: http.StatusBadRequest,
	book.ErrResponseCheckoutNotConfirmed:     http.StatusBadRequest,
	book.ErrResponseCheckoutEntryBlankFields: http.StatusBadRequest,
	book.ErrResponseInvalidLoanWindow:        http.StatusBadRequest,
	book.ErrResponseBookAuthorMismatch:       http.StatusBadRequest,
	book.ErrResponseAvailabilityInvalid:      http.StatusBadRequest,
	book.ErrResponseBookNotFound:             http.StatusNotFound,
	book.ErrResponseAuthorNotFound:           http.StatusNotFound,
	book.ErrResponseBorrowerNotFound:         http.StatusNotFound,
	book.ErrResponseAlreadyBorrowed:          http.StatusConflict,
	book.ErrResponseNotBorrowed:              http.StatusConflict,
	book.ErrResponseCheckoutConflict:         http.StatusConflict,
	book.ErrResponseAuthorNameConflict:       http.StatusConflict,
	book.ErrResponseAuthorReferenceStale:     http.StatusConflict,
	book.ErrResponseRateLimitExceeded:        http.StatusTooManyRequests,
	book.ErrResponseRequestTimeout:           http.StatusGatewayTimeout,
}

/* Writes the error response naming the failed precondition. Anything unexpected becomes an opaque 500. */
func (h *BookHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		h.logger.Warn("request timed out", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		responseJSON(w, http.StatusGatewayTimeout, book.ErrResponseRequestTimeout)
		return
	}

	var errResp book.ErrResponse
	if errors.As(err, &errResp) {
		if status, ok := statusByError[errResp]; ok {
			responseJSON(w, status, errResp)
			return
		}
	}

	h.logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	responseJSON(w, http.StatusInternalServerError, book.ErrResponseInternal)
}

func responseJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
