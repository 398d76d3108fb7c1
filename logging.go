package nestlocator

import (
	"io"

	"github.com/jyjeanne/hornet-nest-locator/config"
	"github.com/jyjeanne/hornet-nest-locator/internal/logging"
)

// InitLogging points the standard library logger at w and returns a
// structured logger built from cfg that writes to w as well. Callers pass
// stderr so that stdout stays free for reports.
func InitLogging(cfg config.LoggingConfig, w io.Writer) logging.Logger {
	logging.InitStdLog(w)
	return logging.New(logging.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: w,
	})
}
