package ring

import (
	"go.uber.org/zap"

	"github.com/arloliu/tickwire/internal/logging"
	"github.com/arloliu/tickwire/internal/metrics"
)

func logIndex(op string, index, count int) {
	metrics.RingIndexErrors.Inc()
	logging.Named("ring").Error("index out of range",
		zap.String("op", op),
		zap.Int("index", index),
		zap.Int("count", count),
	)
}

func logUninitialized(op string) {
	metrics.RingUninitUse.Inc()
	logging.Named("ring").Error("buffer used before Initialize", zap.String("op", op))
}
