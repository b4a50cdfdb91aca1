package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared by every logger built by Setup so verbosity can change
// after flags are parsed.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Setup builds the application logger. Logs go to stderr; stdout is left to
// the command output.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	SetDebug(debug)
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}

// SetDebug switches loggers built by Setup between debug and info level.
func SetDebug(debug bool) {
	if debug {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}
