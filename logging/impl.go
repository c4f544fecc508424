package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// impl writes to a set of zap cores. Each logger owns its level; the cores are shared with
// every sublogger.
type impl struct {
	name  string
	level AtomicLevel
	sinks zapcore.Core

	leveled   *zap.SugaredLogger
	unleveled *zap.SugaredLogger
}

func newImpl(name string, level Level, sinks zapcore.Core) *impl {
	imp := &impl{name: name, level: NewAtomicLevelAt(level), sinks: sinks}
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	imp.leveled = zap.New(&leveledCore{Core: sinks, level: imp.level}, opts...).Sugar().Named(name)
	imp.unleveled = zap.New(sinks, opts...).Sugar().Named(name)
	return imp
}

// leveledCore drops entries below the level of the owning logger.
type leveledCore struct {
	zapcore.Core
	level AtomicLevel
}

func (c *leveledCore) Enabled(l zapcore.Level) bool {
	return l >= c.level.Get().AsZap() && c.Core.Enabled(l)
}

func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{Core: c.Core.With(fields), level: c.level}
}

func (c *leveledCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return checked
	}
	return c.Core.Check(entry, checked)
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = imp.name + "." + subname
	}
	return newImpl(newName, imp.level.Get(), imp.sinks)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	return imp.leveled
}

func (imp *impl) Sync() error {
	return imp.sinks.Sync()
}

func (imp *impl) CDebugf(ctx context.Context, template string, args ...interface{}) {
	if IsDebugMode(ctx) {
		imp.unleveled.Debugf(template, args...)
		return
	}
	imp.leveled.Debugf(template, args...)
}

func (imp *impl) Debug(args ...interface{}) { imp.leveled.Debug(args...) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.leveled.Debugf(template, args...) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.leveled.Debugw(msg, keysAndValues...)
}

func (imp *impl) Info(args ...interface{}) { imp.leveled.Info(args...) }

func (imp *impl) Infof(template string, args ...interface{}) { imp.leveled.Infof(template, args...) }

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.leveled.Infow(msg, keysAndValues...)
}

func (imp *impl) Warn(args ...interface{}) { imp.leveled.Warn(args...) }

func (imp *impl) Warnf(template string, args ...interface{}) { imp.leveled.Warnf(template, args...) }

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.leveled.Warnw(msg, keysAndValues...)
}

func (imp *impl) Error(args ...interface{}) { imp.leveled.Error(args...) }

func (imp *impl) Errorf(template string, args ...interface{}) { imp.leveled.Errorf(template, args...) }

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.leveled.Errorw(msg, keysAndValues...)
}
