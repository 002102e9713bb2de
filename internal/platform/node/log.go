package node

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
)

// SubSystem is used by the logger package
const SubSystem = "Contract"

// newLogConfig returns a development (verbose and above) or production (info and above) config.
// A format of "text" logs plain text instead of JSON.
func newLogConfig(development bool, format string) *logger.Config {
	var logConfig *logger.Config
	if development {
		logConfig = logger.NewDevelopmentConfig()
	} else {
		logConfig = logger.NewProductionConfig()
	}

	logConfig.IsText = strings.ToUpper(format) == "TEXT"
	logConfig.EnableSubSystem(SubSystem)
	return logConfig
}

func ContextWithDevelopmentLogger(ctx context.Context, format string) context.Context {
	return logger.ContextWithLogConfig(ctx, newLogConfig(true, format))
}

// ContextWithDevelopmentFileLogger also writes the log to logFileName. It returns an error when
// the file can't be opened.
func ContextWithDevelopmentFileLogger(ctx context.Context, logFileName string,
	format string) (context.Context, error) {

	logConfig := newLogConfig(true, format)
	if err := logConfig.Main.AddFile(logFileName); err != nil {
		return nil, errors.Wrapf(err, "open log file %s", logFileName)
	}
	return logger.ContextWithLogConfig(ctx, logConfig), nil
}

func ContextWithProductionLogger(ctx context.Context, format string) context.Context {
	return logger.ContextWithLogConfig(ctx, newLogConfig(false, format))
}

// ContextWithProductionFileLogger also writes the log to logFileName. It returns an error when
// the file can't be opened.
func ContextWithProductionFileLogger(ctx context.Context, logFileName string,
	format string) (context.Context, error) {

	logConfig := newLogConfig(false, format)
	if err := logConfig.Main.AddFile(logFileName); err != nil {
		return nil, errors.Wrapf(err, "open log file %s", logFileName)
	}
	return logger.ContextWithLogConfig(ctx, logConfig), nil
}

func ContextWithLogTrace(ctx context.Context, trace string) context.Context {
	return logger.ContextWithLogTrace(ctx, trace)
}
