package dem

import (
	"io"

	"github.com/sirupsen/logrus"
)

// discardLogger returns a logger that discards all output.
func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
