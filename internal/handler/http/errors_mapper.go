package http

import (
	"errors"
	"net/http"

	"github.com/ebalakin/credvault/internal/adapter"
	"github.com/ebalakin/credvault/internal/store"
	"github.com/ebalakin/credvault/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrEmptyService:     http.StatusBadRequest,
	validators.ErrServiceTooLong:   http.StatusBadRequest,
	validators.ErrEmptyUsername:    http.StatusBadRequest,
	validators.ErrUsernameTooLong:  http.StatusBadRequest,
	validators.ErrEmptyPassword:    http.StatusBadRequest,
	validators.ErrPasswordTooLong:  http.StatusBadRequest,
	validators.ErrNoFieldsToUpdate: http.StatusBadRequest,
	validators.ErrEmptyBatch:       http.StatusBadRequest,
	validators.ErrUnsupportedType:  http.StatusBadRequest,
	validators.ErrUnknownField:     http.StatusBadRequest,

	store.ErrNoFieldsToUpdate:  http.StatusBadRequest,
	store.ErrRecordNotFound:    http.StatusNotFound,
	store.ErrDuplicateRecordID: http.StatusConflict,

	adapter.ErrRemoteRequest:      http.StatusBadGateway,
	adapter.ErrConversion:         http.StatusBadGateway,
	adapter.ErrUnexpectedRowCount: http.StatusBadGateway,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
