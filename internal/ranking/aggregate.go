package ranking

import (
	"math"
	"sort"
)

// Ranked is the minimal view of one evaluation the aggregation functions
// need: who evaluated, under which persona, and the parsed label order.
type Ranked struct {
	BackendID string
	ProfileID string
	Labels    []string
}

// Row is one leaderboard entry. Mean is the arithmetic mean of the label's
// 1-based positions across every ranking that mentions it, rounded to two
// decimals; lower is preferred.
type Row struct {
	Label    string  `json:"label"`
	OriginID string  `json:"originId"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stdDev"`
	Count    int     `json:"count"`
}

// Aggregate computes the global leaderboard. Labels never mentioned by any
// ranking are omitted, not zero-filled. Label tokens that do not belong to
// the run's label set are ignored. The result is sorted ascending by mean;
// ties keep the label assignment order.
func Aggregate(evals []Ranked, labels *LabelMap) []Row {
	positions := make(map[string][]int, labels.Len())

	for _, ev := range evals {
		for i, label := range ev.Labels {
			if !labels.Contains(label) {
				continue
			}
			positions[label] = append(positions[label], i+1)
		}
	}

	var rows []Row
	for _, label := range labels.Labels() {
		ranks := positions[label]
		if len(ranks) == 0 {
			continue
		}
		mean, stddev := meanStdDev(ranks)
		rows = append(rows, Row{
			Label:    label,
			OriginID: labels.Origin(label),
			Mean:     round2(mean),
			StdDev:   round2(stddev),
			Count:    len(ranks),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Mean < rows[j].Mean })
	return rows
}

// ProfileBreakdown partitions the evaluations by persona and aggregates
// each partition independently.
func ProfileBreakdown(evals []Ranked, labels *LabelMap) map[string][]Row {
	byProfile := make(map[string][]Ranked)
	for _, ev := range evals {
		byProfile[ev.ProfileID] = append(byProfile[ev.ProfileID], ev)
	}

	out := make(map[string][]Row, len(byProfile))
	for profileID, group := range byProfile {
		out[profileID] = Aggregate(group, labels)
	}
	return out
}

// Table is the full backend × persona × label cross-tabulation. Data maps
// backend id → profile id → label → 1-based rank position. The header sets
// are the distinct ids observed, each sorted for deterministic output.
type Table struct {
	Backends []string                             `json:"backends"`
	Profiles []string                             `json:"profiles"`
	Labels   []string                             `json:"labels"`
	Data     map[string]map[string]map[string]int `json:"data"`
}

// CrossTable tabulates every parsed ranking position by evaluator backend
// and persona.
func CrossTable(evals []Ranked, labels *LabelMap) *Table {
	backends := make(map[string]bool)
	profiles := make(map[string]bool)

	data := make(map[string]map[string]map[string]int)
	for _, ev := range evals {
		backends[ev.BackendID] = true
		profiles[ev.ProfileID] = true

		if data[ev.BackendID] == nil {
			data[ev.BackendID] = make(map[string]map[string]int)
		}
		if data[ev.BackendID][ev.ProfileID] == nil {
			data[ev.BackendID][ev.ProfileID] = make(map[string]int)
		}
		for i, label := range ev.Labels {
			if !labels.Contains(label) {
				continue
			}
			data[ev.BackendID][ev.ProfileID][label] = i + 1
		}
	}

	labelSet := labels.Labels()
	sort.Strings(labelSet)

	return &Table{
		Backends: sortedKeys(backends),
		Profiles: sortedKeys(profiles),
		Labels:   labelSet,
		Data:     data,
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func meanStdDev(ranks []int) (float64, float64) {
	sum := 0
	for _, r := range ranks {
		sum += r
	}
	mean := float64(sum) / float64(len(ranks))

	if len(ranks) < 2 {
		return mean, 0
	}
	variance := 0.0
	for _, r := range ranks {
		d := float64(r) - mean
		variance += d * d
	}
	variance /= float64(len(ranks))
	return mean, math.Sqrt(variance)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
