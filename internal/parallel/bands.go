package parallel

// Span is a half-open range of rows [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of rows in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// SplitRows divides [start, end) into at most parts contiguous spans of
// nearly equal length. The spans are returned in order, never overlap and
// cover the range exactly. An empty range yields no spans.
func SplitRows(start, end, parts int) []Span {
	n := end - start
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	spans := make([]Span, 0, parts)
	base, extra := n/parts, n%parts
	at := start
	for i := range parts {
		size := base
		if i < extra {
			size++
		}
		spans = append(spans, Span{Start: at, End: at + size})
		at += size
	}
	return spans
}
