package pipeline

import (
	"sort"

	"github.com/abhisek/jalur/internal/record"
)

// Summary aggregates a run. It carries counts only, never names or dates,
// so it is safe to hand to external services.
type Summary struct {
	Total        int     `json:"total"`
	Dropouts     int     `json:"dropouts"`
	DropoutRate  float64 `json:"dropout_rate"`
	TotalArrears float64 `json:"total_arrears"`
	NeedsReview  int     `json:"needs_review"`
	// StatusInferred counts rows whose status came from the reason text.
	StatusInferred int `json:"status_inferred"`

	ByStatus         map[string]int `json:"by_status"`
	ByRecommendation map[string]int `json:"by_recommendation"`
	ByArrearsBracket map[string]int `json:"by_arrears_bracket"`
	// DropoutReasons and DropoutsByDistrict only count dropped students.
	DropoutReasons     map[string]int `json:"dropout_reasons"`
	DropoutsByDistrict map[string]int `json:"dropouts_by_district"`
}

// UnknownDistrict labels dropouts without a district.
const UnknownDistrict = "(unknown)"

// Summarize aggregates rows.
func Summarize(rows []Row) Summary {
	s := Summary{
		Total:              len(rows),
		ByStatus:           map[string]int{},
		ByRecommendation:   map[string]int{},
		ByArrearsBracket:   map[string]int{},
		DropoutReasons:     map[string]int{},
		DropoutsByDistrict: map[string]int{},
	}
	for _, r := range rows {
		n := r.Record
		s.TotalArrears += n.Arrears
		s.ByStatus[string(n.Status)]++
		s.ByRecommendation[string(r.Recommendation.ID)]++
		s.ByArrearsBracket[string(n.ArrearsBracket)]++
		if n.StatusInferred {
			s.StatusInferred++
		}
		if r.Recommendation.ID.NeedsReview() {
			s.NeedsReview++
		}
		if n.Status == record.StatusDropped {
			s.Dropouts++
			s.DropoutReasons[string(n.Reason)]++
			d := n.District
			if d == "" {
				d = UnknownDistrict
			}
			s.DropoutsByDistrict[d]++
		}
	}
	if s.Total > 0 {
		s.DropoutRate = float64(s.Dropouts) / float64(s.Total)
	}
	return s
}

// Count is one entry of a distribution.
type Count struct {
	Key string `json:"key"`
	N   int    `json:"n"`
}

// Ranked returns m as a list ordered by count, largest first, then by key.
func Ranked(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Key: k, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Key < out[j].Key
	})
	return out
}
