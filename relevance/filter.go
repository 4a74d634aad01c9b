// Package relevance post-processes ranked search results into a trustworthy
// subset.
//
// Two cutoffs combine: an absolute score floor that rejects everything when
// even the best match is weak, and a relative threshold expressed as a
// fraction of the top score that prunes the long tail of marginally related
// items without capping how many strong matches pass.
package relevance

import "github.com/shopifake/catalog-search/errs"

// Filter retains the results that clear both cutoffs.
//
// Input must already be sorted by descending score, as guaranteed by the
// index's ranking contract; output preserves that order and never re-ranks.
//
// A result is retained iff:
//
//	score >= minScore AND (thresholdRatio == 0 OR score >= topScore*thresholdRatio)
//
// where topScore is the score of the first result. A thresholdRatio of zero
// disables the relative check. If the top result itself fails minScore, the
// returned set is empty.
func Filter[T any](results []T, score func(T) float32, minScore, thresholdRatio float32) []T {
	if len(results) == 0 {
		return results
	}

	topScore := score(results[0])
	cutoff := topScore * thresholdRatio

	filtered := make([]T, 0, len(results))
	for _, r := range results {
		s := score(r)
		if s < minScore {
			continue
		}
		if thresholdRatio > 0 && s < cutoff {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// ValidateRatio checks that a threshold ratio lies in (0, 1]. Zero is the
// documented "disabled" value and is accepted.
func ValidateRatio(ratio float32) error {
	if ratio < 0 || ratio > 1 {
		return errs.Invalidf("relevance: threshold ratio %v must be 0 (disabled) or in (0, 1]", ratio)
	}
	return nil
}
