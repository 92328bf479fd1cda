package log

import "go.uber.org/zap"

var Logger = zap.NewNop()

func EnsureLogger() {
	Logger, _ = zap.NewDevelopment()
}
