package content

import "sort"

// RankSignals sorts signals by confidence, highest first, keeping display
// order for ties. A positive limit truncates the result.
func RankSignals(signals []Signal, limit int) []Signal {
	out := make([]Signal, len(signals))
	copy(out, signals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
