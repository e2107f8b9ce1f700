package book

import (
	"fmt"
)

type ErrResponse struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

func (e ErrResponse) Error() string {
	return e.Message
}

var ErrResponseBookEntryBlankFields = ErrResponse{100, "field title must be filled."}
var ErrResponseBookNotFound = ErrResponse{101, "book not found"}
var ErrResponseEntryInvalidJSON = ErrResponse{102, "invalid json request."}
var ErrResponseIdInvalidFormat = ErrResponse{103, "the id is not a valid format. Must be an uuid"}
var ErrResponsePriceInvalid = ErrResponse{104, "field price must be a number greater than or equal to 0."}
var ErrResponseAuthorNotFound = ErrResponse{105, "author not found"}
var ErrResponseBorrowerNotFound = ErrResponse{106, "borrower not found"}
var ErrResponseAuthorEntryBlankFields = ErrResponse{107, "field authorName must be filled."}
var ErrResponseBorrowerEntryBlankFields = ErrResponse{108, "field borrowerName must be filled."}
var ErrResponseRequestTimeout = ErrResponse{109, "context deadline exceeded"}
var ErrResponseAlreadyBorrowed = ErrResponse{110, "book is already borrowed"}
var ErrResponseNotBorrowed = ErrResponse{111, "book is not borrowed"}
var ErrResponseCheckoutConflict = ErrResponse{112, "book borrowing status changed concurrently, reload and try again"}
var ErrResponseCheckoutNotConfirmed = ErrResponse{113, "checkout must be confirmed with the word 'checkout'"}
var ErrResponseCheckoutEntryBlankFields = ErrResponse{114, "the fields - bookId and borrowerId - must be filled correctly."}
var ErrResponseInvalidLoanWindow = ErrResponse{115, "returnDate must not be before borrowDate"}
var ErrResponseAuthorNameConflict = ErrResponse{116, "an author with this name already exists"}
var ErrResponseAuthorReferenceStale = ErrResponse{117, "the book author changed since preAuthorID was read"}
var ErrResponseBookAuthorMismatch = ErrResponse{118, "authorId does not match the author of the book"}
var ErrResponseRateLimitExceeded = ErrResponse{119, "rate limit exceeded"}
var ErrResponseInternal = ErrResponse{120, "the server encountered a problem and could not process your request"}
var ErrResponseAvailabilityInvalid = ErrResponse{121, "availability must be: all, available or borrowed."}

type ErrNotificationFailed struct {
	statusCode int
}

func (e ErrNotificationFailed) Error() string {
	return fmt.Sprintf("ntfy wrong response - want: 200 OK, got: %d", e.statusCode)
}

func NewErrNotificationFailed(statusCode int) ErrNotificationFailed {
	return ErrNotificationFailed{statusCode: statusCode}
}
