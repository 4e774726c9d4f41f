package engine

import (
	"fmt"
	"sort"
)

// QualityReport records what an engine consumed and what it refused, so
// data-quality issues are observable instead of swallowed.
type QualityReport struct {
	RowsRead     int
	RowsExcluded int
	Reasons      map[string]int
}

func (q *QualityReport) read() {
	q.RowsRead++
}

func (q *QualityReport) exclude(reason string) {
	q.RowsExcluded++
	if q.Reasons == nil {
		q.Reasons = make(map[string]int)
	}
	q.Reasons[reason]++
}

// ReasonLines returns "reason: count" lines in a stable order.
func (q QualityReport) ReasonLines() []string {
	keys := make([]string, 0, len(q.Reasons))
	for k := range q.Reasons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", k, q.Reasons[k]))
	}
	return lines
}
