// Package metrics defines the login metrics emitted to StatsD.
package metrics

import (
	"time"

	obserrors "github.com/squidword/squidword/internal/observability/errors"
	"github.com/squidword/squidword/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metric names.
const (
	LoginStarted   = "auth.login.started"
	LoginCompleted = "auth.login.completed"
	LoginDuration  = "auth.login.duration"
)

// LoginMetric captures the outcome of one completed handshake.
type LoginMetric struct {
	Role     string
	Duration time.Duration
	Err      error
}

// EmitLoginStarted counts an issued state token.
func EmitLoginStarted(sink statsd.Sink) {
	if sink == nil {
		return
	}
	sink.Count(LoginStarted, 1, nil)
}

// EmitLoginCompleted emits the outcome counter and handshake latency.
func EmitLoginCompleted(sink statsd.Sink, in LoginMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{"result": ResultSuccess}
	if in.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(in.Err)
	} else if in.Role != "" {
		tags["role"] = in.Role
	}

	sink.Count(LoginCompleted, 1, tags)

	if in.Duration > 0 {
		sink.Timing(LoginDuration, in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
