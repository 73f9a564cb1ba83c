package model

// TraceChannel groups debug output so one subsystem can be watched at a time.
type TraceChannel int

const (
	TraceOff TraceChannel = iota
	TraceMoves
	TraceTurns
)

// Tracer receives debug events as a message plus alternating key/value pairs.
type Tracer func(ch TraceChannel, msg string, keysAndValues ...interface{})

func (t Tracer) emit(ch TraceChannel, msg string, keysAndValues ...interface{}) {
	if t == nil {
		return
	}
	t(ch, msg, keysAndValues...)
}
