package bootstrap

import (
	"context"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-api/internal/storage/mongodb"
	"github.com/sirupsen/logrus"
)

type DBOptions struct {
	URI       string
	Name      string
	ConnectTO time.Duration
}

// OpenStore connects to the document store. It never fails: when the store
// cannot be reached the returned store is unavailable (or not yet reachable)
// and the reason is logged, so the API can still start and report it.
func OpenStore(ctx context.Context, opt DBOptions, log logrus.FieldLogger) *mongodb.Store {
	store, err := mongodb.Open(ctx, mongodb.Options{
		URI:            opt.URI,
		Database:       opt.Name,
		ConnectTimeout: opt.ConnectTO,
	})
	if err != nil {
		log.WithError(err).WithField("available", store.Available()).Warn("document store not ready")
		return store
	}

	log.WithField("database", store.Name()).Info("document store connected")
	return store
}
