package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// CtxTraceContext is a context key for the trace context (used by mylog)
type CtxTraceContext struct{}

func ContextFromHTTPRequest(r *http.Request) context.Context {
	var trace string

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	traceContext := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceContext, "/")

	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		trace = fmt.Sprintf("projects/%s/traces/%s", projectID, traceParts[0])
	}

	return context.WithValue(context.Background(), CtxTraceContext{}, trace)
}

// ContextWithTrace is used by callbacks that do not originate from an HTTP request,
// such as events arriving over the live order-update channel.
func ContextWithTrace(label string) context.Context {
	return context.WithValue(context.Background(), CtxTraceContext{}, label)
}
