package utils

type contextKey string

const (
	// CtxTraceID is the context key holding the request trace id
	CtxTraceID contextKey = "traceID"
)

const (
	// TraceID is the log field and header name of the trace id
	TraceID    = "traceID"
	traceIDLen = 16
)
