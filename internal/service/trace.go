package service

import (
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// NewTracer forwards one debug channel of the rule engine to the debug log.
// Channel 0 disables tracing.
func NewTracer(channel int) model.Tracer {
	if channel == int(model.TraceOff) {
		return nil
	}
	active := model.TraceChannel(channel)
	return func(ch model.TraceChannel, msg string, keysAndValues ...interface{}) {
		if ch != active {
			return
		}
		log.Debugw(msg, keysAndValues...)
	}
}
