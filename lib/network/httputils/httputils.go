package httputils

import (
	"net/http"

	"boscoin.io/ballot/lib/errors"
)

// ErrorsToStatus maps the error codes which are not `400 Bad Request`.
var ErrorsToStatus = map[uint]int{
	errors.VoterNoneExists.Code:           http.StatusNotFound,
	errors.VotingNoneExists.Code:          http.StatusNotFound,
	errors.BallotNoneExists.Code:          http.StatusNotFound,
	errors.ProposalNoneExists.Code:        http.StatusNotFound,
	errors.TransactionNotFound.Code:       http.StatusNotFound,
	errors.BlockNotFound.Code:             http.StatusNotFound,
	errors.StorageRecordDoesNotExist.Code: http.StatusNotFound,

	errors.TransactionAlreadyExists.Code: http.StatusConflict,
	errors.TransactionPoolFull.Code:      http.StatusServiceUnavailable,
	errors.TooManyRequests.Code:          http.StatusTooManyRequests,
	errors.NotImplemented.Code:           http.StatusNotImplemented,

	errors.StorageCoreError.Code: http.StatusInternalServerError,
	errors.HTTPServerError.Code:  http.StatusInternalServerError,
	errors.InternalError.Code:    http.StatusInternalServerError,
}

// StatusCode returns the http status for err. Unknown `*errors.Error` are
// client errors; anything else is a server error.
func StatusCode(err error) int {
	e, ok := err.(*errors.Error)
	if !ok {
		return http.StatusInternalServerError
	}

	if status, found := ErrorsToStatus[e.Code]; found {
		return status
	}

	return http.StatusBadRequest
}
