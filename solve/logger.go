package main

import "go.uber.org/zap"

// zapAdapter satisfies engine.Logger by forwarding to a zap sugared
// logger, so the engine package never depends on zap directly.
type zapAdapter struct {
	sugar *zap.SugaredLogger
}

func newZapAdapter(sugar *zap.SugaredLogger) *zapAdapter {
	return &zapAdapter{sugar: sugar}
}

func (z *zapAdapter) Printf(format string, args ...interface{}) {
	z.sugar.Infof(format, args...)
}
