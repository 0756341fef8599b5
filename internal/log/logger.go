package log

import "go.uber.org/zap"

// L is the process-wide logger. It defaults to a nop logger so packages can
// log before Init runs (and tests that never call Init stay quiet).
var L = zap.NewNop()

func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	L = l
	return l, nil
}
