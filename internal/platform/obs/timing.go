package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "req_id"
	TurnIDKey    ctxKey = "turn_id"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func WithTurnID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TurnIDKey, id)
}

// Time logs the duration of an operation and, if errp points to a non-nil
// error, the error. Use as defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)
	turnID, _ := ctx.Value(TurnIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s turn_id=%s op=%s dur=%dms err=%v", reqID, turnID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s turn_id=%s op=%s dur=%dms", reqID, turnID, name, dur.Milliseconds())
	}
}
