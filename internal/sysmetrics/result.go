package sysmetrics

// Result is the outcome of one collection: either a full set of fact tags or
// the error that aborted it.
type Result struct {
	Tags map[string]string
	Err  error
}

// OK reports whether the collection succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Map converts the result into run tags. A failed result becomes a single
// TagError entry; partial facts are never reported.
func (r Result) Map() map[string]string {
	if r.Err != nil {
		return map[string]string{TagError: r.Err.Error()}
	}
	out := make(map[string]string, len(r.Tags))
	for k, v := range r.Tags {
		out[k] = v
	}
	return out
}
