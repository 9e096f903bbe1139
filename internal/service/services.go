package service

import (
	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/internal/store"
	"github.com/ebalakin/credvault/internal/validators"
)

// Services groups the application services into a single value handed to
// the transport layer. Currently it holds only [RecordManager]; further
// services slot in here as the feature set grows.
type Services struct {
	Records RecordManager
}

// NewServices wires the service layer over the injected record store.
func NewServices(recordStore store.RecordStore, logger *logger.Logger) *Services {
	logger.Info().Msg("creating new services...")

	return &Services{
		Records: NewRecordService(recordStore, validators.NewRecordValidator(), logger),
	}
}
