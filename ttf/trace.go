package ttf

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'scribe.ttf'
func tracer() tracing.Trace {
	return tracing.Select("scribe.ttf")
}
