package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/library-service/cmd/api/book"
)

type ServerConfig struct {
	Port           int
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewServer(config ServerConfig, h *BookHandler) *http.Server {
	server := http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           NewRouter(config, h),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &server
}

/* NewRouter registers every endpoint and wraps the router with the middleware chain:
recoverPanic, logRequests, rateLimit, timeout. */
func NewRouter(config ServerConfig, h *BookHandler) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responseJSON(w, http.StatusNotFound, book.ErrResponse{Code: http.StatusNotFound, Message: "resource not found."})
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responseJSON(w, http.StatusMethodNotAllowed, book.ErrResponse{Code: http.StatusMethodNotAllowed, Message: "method not allowed."})
	})

	router.HandlerFunc(http.MethodGet, "/ping", ping)

	router.HandlerFunc(http.MethodGet, "/books", h.searchBooks(book.AvailabilityAll))
	router.HandlerFunc(http.MethodGet, "/books/available", h.searchBooks(book.AvailabilityAvailable))
	router.HandlerFunc(http.MethodGet, "/books/borrowed", h.searchBooks(book.AvailabilityBorrowed))
	router.HandlerFunc(http.MethodPost, "/books", h.createBook)
	router.HandlerFunc(http.MethodPut, "/books", h.updateBook)
	router.HandlerFunc(http.MethodDelete, "/books", h.deleteBook)
	router.HandlerFunc(http.MethodDelete, "/books/all", h.deleteAllBooks)
	router.HandlerFunc(http.MethodPut, "/books/checkout", h.checkout)
	router.HandlerFunc(http.MethodPut, "/books/checkin", h.checkin)
	router.HandlerFunc(http.MethodGet, "/receipts/:id", h.loanReceipt)

	router.HandlerFunc(http.MethodGet, "/authors", h.searchAuthors)
	router.HandlerFunc(http.MethodPost, "/authors", h.createAuthor)
	router.HandlerFunc(http.MethodPut, "/authors", h.updateAuthor)
	router.HandlerFunc(http.MethodGet, "/authors/:id", h.getAuthor)
	router.HandlerFunc(http.MethodDelete, "/authors/:id", h.deleteAuthor)

	router.HandlerFunc(http.MethodGet, "/borrowers", h.searchBorrowers)
	router.HandlerFunc(http.MethodPost, "/borrowers", h.createBorrower)
	router.HandlerFunc(http.MethodPut, "/borrowers", h.updateBorrower)
	router.HandlerFunc(http.MethodGet, "/borrowers/:id", h.getBorrower)
	router.HandlerFunc(http.MethodDelete, "/borrowers/:id", h.deleteBorrower)

	var handler http.Handler = router
	handler = h.timeout(config.RequestTimeout, handler)
	handler = h.rateLimit(config.RateLimitRPS, config.RateLimitBurst, handler)
	handler = h.logRequests(handler)
	handler = h.recoverPanic(handler)
	return handler
}

/* Tests the http server connection.  */
func ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
