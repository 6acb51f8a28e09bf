package hsflow

import (
	"log"
	"sync/atomic"
)

type logFunc func(format string, v ...interface{})

// logger holds the sink installed by SetLogger. A nil value means log.Printf.
var logger atomic.Pointer[logFunc]

// Logf writes a diagnostic line through the package logger. It defaults to
// log.Printf and may be replaced by SetLogger at any time, also while
// estimations are running.
func Logf(format string, v ...interface{}) {
	if f := logger.Load(); f != nil {
		(*f)(format, v...)
		return
	}
	log.Printf(format, v...)
}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		f = func(string, ...interface{}) {}
	}
	fn := logFunc(f)
	logger.Store(&fn)
}
