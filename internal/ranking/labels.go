// Package ranking implements the anonymization labels evaluators see in
// place of backend identities, the best-effort extractor that recovers an
// ordered ranking from free-text verdicts, and the pure aggregation
// functions that turn a set of rankings into leaderboards.
package ranking

// LabelPrefix is the fixed word every draft label starts with. Evaluators
// are instructed to reference drafts by these tokens and nothing else.
const LabelPrefix = "Draft-"

// LabelMap is the run-scoped bijection between anonymized labels and the
// backend ids that produced each draft. It is private to the orchestrator
// until aggregation output reveals it.
type LabelMap struct {
	labels  []string
	origins map[string]string
}

// AssignLabels gives the i-th origin the i-th label ("Draft-A", "Draft-B",
// …), deterministic and stable for the run's lifetime. One label per
// origin: the label set size always equals the draft set size.
func AssignLabels(originIDs []string) *LabelMap {
	m := &LabelMap{origins: make(map[string]string, len(originIDs))}
	for i, id := range originIDs {
		label := Label(i)
		m.labels = append(m.labels, label)
		m.origins[label] = id
	}
	return m
}

// Label returns the label for ordinal position i: "Draft-A" through
// "Draft-Z", then "Draft-AA", "Draft-AB", and so on (bijective base-26,
// spreadsheet-column style).
func Label(i int) string {
	var buf []byte
	for n := i + 1; n > 0; n /= 26 {
		n--
		buf = append([]byte{byte('A' + n%26)}, buf...)
	}
	return LabelPrefix + string(buf)
}

// Labels returns all assigned labels in assignment order.
func (m *LabelMap) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Origin returns the backend id behind a label, or "" for a foreign label.
func (m *LabelMap) Origin(label string) string {
	return m.origins[label]
}

// Contains reports whether label belongs to this run.
func (m *LabelMap) Contains(label string) bool {
	_, ok := m.origins[label]
	return ok
}

// Len returns the number of assigned labels.
func (m *LabelMap) Len() int { return len(m.labels) }

// Origins returns a copy of the label→origin mapping.
func (m *LabelMap) Origins() map[string]string {
	out := make(map[string]string, len(m.origins))
	for k, v := range m.origins {
		out[k] = v
	}
	return out
}
