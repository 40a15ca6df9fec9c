package parallel

import "testing"

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		parts      int
		wantSpans  int
	}{
		{"even split", 0, 100, 4, 4},
		{"uneven split", 0, 10, 3, 3},
		{"more parts than rows", 5, 8, 10, 3},
		{"single part", 0, 7, 1, 1},
		{"zero parts", 0, 7, 0, 1},
		{"empty range", 4, 4, 3, 0},
		{"reversed range", 9, 2, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := SplitRows(tt.start, tt.end, tt.parts)
			if len(spans) != tt.wantSpans {
				t.Fatalf("SplitRows(%d, %d, %d) returned %d spans, want %d",
					tt.start, tt.end, tt.parts, len(spans), tt.wantSpans)
			}
			if len(spans) == 0 {
				return
			}

			if spans[0].Start != tt.start {
				t.Errorf("first span starts at %d, want %d", spans[0].Start, tt.start)
			}
			if last := spans[len(spans)-1]; last.End != tt.end {
				t.Errorf("last span ends at %d, want %d", last.End, tt.end)
			}

			minLen, maxLen := spans[0].Len(), spans[0].Len()
			for i, s := range spans {
				if s.Len() <= 0 {
					t.Errorf("span %d is empty: %+v", i, s)
				}
				if i > 0 && s.Start != spans[i-1].End {
					t.Errorf("span %d starts at %d, previous ended at %d", i, s.Start, spans[i-1].End)
				}
				minLen = min(minLen, s.Len())
				maxLen = max(maxLen, s.Len())
			}
			if maxLen-minLen > 1 {
				t.Errorf("span lengths differ by %d, want at most 1", maxLen-minLen)
			}
		})
	}
}
