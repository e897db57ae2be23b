package coordinator

import (
	"time"

	"go.uber.org/zap"

	"github.com/quadlens/quadlens/internal/types"
)

// Observer receives structured analyzer lifecycle events. It replaces ad
// hoc progress printing: orchestration never writes to the console itself.
type Observer interface {
	AnalyzerStarted(cat types.Category)
	AnalyzerFinished(cat types.Category, count int, elapsed time.Duration)
	AnalyzerFailed(cat types.Category, err error)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) AnalyzerStarted(types.Category)                      {}
func (NopObserver) AnalyzerFinished(types.Category, int, time.Duration) {}
func (NopObserver) AnalyzerFailed(types.Category, error)                {}

// LogObserver writes analyzer events through a zap logger.
type LogObserver struct {
	Log *zap.SugaredLogger
}

func (o LogObserver) AnalyzerStarted(cat types.Category) {
	o.Log.Debugw("analyzer started", "category", string(cat))
}

func (o LogObserver) AnalyzerFinished(cat types.Category, count int, elapsed time.Duration) {
	o.Log.Infow("analyzer finished", "category", string(cat), "findings", count, "elapsed", elapsed)
}

func (o LogObserver) AnalyzerFailed(cat types.Category, err error) {
	o.Log.Errorw("analyzer failed", "category", string(cat), "error", err)
}
