package service

// MapReportBuilder accumulates counters into a plain map report. Keys
// declared up front are always present in the built report, zero-filled
// when nothing was recorded for them, so consumers see a stable shape.
type MapReportBuilder struct {
	declared []string
	counts   map[string]int
}

// NewMapReportBuilder creates a builder with the given pre-declared keys.
func NewMapReportBuilder(keys ...string) *MapReportBuilder {
	b := &MapReportBuilder{
		declared: keys,
		counts:   make(map[string]int),
	}
	return b
}

// Add increments the counter for key by n. Keys outside the declared
// set are accepted and appear in the report as recorded.
func (b *MapReportBuilder) Add(key string, n int) *MapReportBuilder {
	b.counts[key] += n
	return b
}

// Set overwrites the counter for key.
func (b *MapReportBuilder) Set(key string, n int) *MapReportBuilder {
	b.counts[key] = n
	return b
}

// Build returns the report map. Declared keys missing from the recorded
// counts are zero-filled. The returned map is a copy; the builder can
// keep accumulating afterwards.
func (b *MapReportBuilder) Build() map[string]int {
	out := make(map[string]int, len(b.counts)+len(b.declared))
	for _, k := range b.declared {
		out[k] = 0
	}
	for k, v := range b.counts {
		out[k] = v
	}
	return out
}
