package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type impl struct {
	name  string
	level zap.AtomicLevel
	core  zapcore.Core
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	core := &levelCore{Core: imp.core, level: imp.level}
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar().Named(imp.name)
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}
	return &impl{name: newName, level: zap.NewAtomicLevelAt(imp.level.Level()), core: imp.core}
}

func (imp *impl) SetLevel(level zapcore.Level) {
	imp.level.SetLevel(level)
}

func (imp *impl) Level() zapcore.Level {
	return imp.level.Level()
}

func (imp *impl) Sync() error {
	return imp.core.Sync()
}

func (imp *impl) Debug(args ...interface{}) { imp.AsZap().Debug(args...) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.AsZap().Debugf(template, args...) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.AsZap().Debugw(msg, keysAndValues...)
}

// contextDebugger returns the logger to use for a context-gated debug entry, or nil when the
// entry should be dropped.
func (imp *impl) contextDebugger(ctx context.Context) *zap.SugaredLogger {
	if imp.level.Enabled(zapcore.DebugLevel) {
		return imp.AsZap()
	}
	if !IsDebugMode(ctx) {
		return nil
	}
	// Bypass the level check but keep the entry tagged as debug.
	forced := &impl{name: imp.name, level: zap.NewAtomicLevelAt(zapcore.DebugLevel), core: imp.core}
	return forced.AsZap().With("debug_key", GetName(ctx))
}

func (imp *impl) CDebug(ctx context.Context, args ...interface{}) {
	if logger := imp.contextDebugger(ctx); logger != nil {
		logger.Debug(args...)
	}
}

func (imp *impl) CDebugf(ctx context.Context, template string, args ...interface{}) {
	if logger := imp.contextDebugger(ctx); logger != nil {
		logger.Debugf(template, args...)
	}
}

func (imp *impl) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	if logger := imp.contextDebugger(ctx); logger != nil {
		logger.Debugw(msg, keysAndValues...)
	}
}

func (imp *impl) Info(args ...interface{}) { imp.AsZap().Info(args...) }

func (imp *impl) Infof(template string, args ...interface{}) { imp.AsZap().Infof(template, args...) }

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.AsZap().Infow(msg, keysAndValues...)
}

func (imp *impl) Warn(args ...interface{}) { imp.AsZap().Warn(args...) }

func (imp *impl) Warnf(template string, args ...interface{}) { imp.AsZap().Warnf(template, args...) }

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.AsZap().Warnw(msg, keysAndValues...)
}

func (imp *impl) Error(args ...interface{}) { imp.AsZap().Error(args...) }

func (imp *impl) Errorf(template string, args ...interface{}) { imp.AsZap().Errorf(template, args...) }

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.AsZap().Errorw(msg, keysAndValues...)
}

// levelCore gates an underlying core on an atomic level so that a core built at one level can be
// shared between loggers whose levels change independently of how the core was constructed.
type levelCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}

func (c *levelCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}
