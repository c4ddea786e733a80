package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and HTTP events to a logger at debug level.
// Failed operations are reported at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnImportStart(_ context.Context, source string) {
	h.logger.Debug("import started", "source", source)
}

func (h *LogHooks) OnImportComplete(_ context.Context, source string, nodeCount, edgeCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("import failed", "source", source, "took", duration, "err", err)
		return
	}
	h.logger.Debug("import complete", "source", source, "nodes", nodeCount, "edges", edgeCount, "took", duration)
}

func (h *LogHooks) OnExportStart(_ context.Context, nodeCount, edgeCount int) {
	h.logger.Debug("export started", "nodes", nodeCount, "edges", edgeCount)
}

func (h *LogHooks) OnExportComplete(_ context.Context, bytes int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "took", duration, "err", err)
		return
	}
	h.logger.Debug("export complete", "bytes", bytes, "took", duration)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, statusCode int, duration time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", statusCode, "took", duration)
}
