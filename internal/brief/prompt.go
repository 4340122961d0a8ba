package brief

import (
	"fmt"
	"strings"

	"github.com/abhisek/jalur/internal/pipeline"
)

const systemPrompt = `You advise a district education office in Indonesia that tracks children who left primary school. You receive aggregate counts only. Recommend a short, practical outreach plan. Refer to placements such as Paket A, Paket B, nearby schools, counselling and inclusive schools where the numbers justify them. Never invent numbers that are not given.`

var languages = map[string]string{
	"id": "Bahasa Indonesia",
	"en": "English",
}

func buildUserMessage(s pipeline.Summary, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Students: %d\n", s.Total)
	fmt.Fprintf(&b, "Dropped out: %d (%.1f%%)\n", s.Dropouts, s.DropoutRate*100)
	fmt.Fprintf(&b, "Total fee arrears: Rp %.0f\n", s.TotalArrears)
	fmt.Fprintf(&b, "Records needing manual review: %d\n", s.NeedsReview)
	if s.StatusInferred > 0 {
		fmt.Fprintf(&b, "Status inferred from reason text: %d\n", s.StatusInferred)
	}

	section(&b, "Dropout reasons", s.DropoutReasons, cfg.TopN)
	section(&b, "Dropouts by district", s.DropoutsByDistrict, cfg.TopN)
	section(&b, "Recommended placements", s.ByRecommendation, cfg.TopN)
	section(&b, "Arrears brackets", s.ByArrearsBracket, cfg.TopN)

	lang, ok := languages[cfg.Locale]
	if !ok {
		lang = languages["id"]
	}
	fmt.Fprintf(&b, `
Instructions:
1. Write in %s.
2. Give at most five priorities, most urgent first. Each names an area, a concrete action and the counts behind it.
3. List data problems (missing fields, records needing review, inferred statuses) as caveats. Use an empty list if there are none.`, lang)

	return b.String()
}

func section(b *strings.Builder, title string, m map[string]int, topN int) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for i, c := range pipeline.Ranked(m) {
		if topN > 0 && i == topN {
			fmt.Fprintf(b, "- (%d more)\n", len(m)-topN)
			break
		}
		fmt.Fprintf(b, "- %s: %d\n", c.Key, c.N)
	}
}
