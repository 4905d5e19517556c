package ai

import "math"

// Comparison is the result of the local review-comparison heuristic.
type Comparison struct {
	Similarity       int      `json:"similarity"`
	OriginalityScore int      `json:"originalityScore"`
	UniquePoints     []string `json:"uniquePoints"`
	CommonPoints     []string `json:"commonPoints"`
	Contradictions   []string `json:"contradictions"`
}

// CompareReviews scores a user review against community sentiment. This is a
// deterministic placeholder over review length and book keywords, not a
// semantic comparison; callers must not assume accuracy.
func CompareReviews(book BookContext, userReview string) Comparison {
	base := len(userReview)
	if base == 0 {
		base = 1
	}

	similarity := 40 + base%40
	if similarity > 90 {
		similarity = 90
	}

	originality := 65 + int(math.Floor(math.Mod(float64(base)*1.3, 30)))
	if originality > 95 {
		originality = 95
	}

	mainTheme := "the main theme"
	if len(book.Keywords) > 0 {
		mainTheme = book.Keywords[0]
	}

	return Comparison{
		Similarity:       similarity,
		OriginalityScore: originality,
		UniquePoints: []string{
			"Your perspective on character development is unique.",
			"You noticed themes that many readers overlook.",
		},
		CommonPoints: []string{
			"You and other readers both highlight " + mainTheme + ".",
			"Your rating is close to the overall community sentiment.",
		},
		Contradictions: []string{
			"You found some pacing issues where others did not.",
		},
	}
}
