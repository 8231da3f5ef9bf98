package enrichment

import (
	"fmt"
	"unicode/utf8"
)

const (
	emptySummary        = "No review text provided"
	minSummarizableLen  = 20
	fallbackSummaryRune = 100
)

func fallbackUserReply(rating int) string {
	return fmt.Sprintf("Thank you for your %d-star rating! We appreciate you taking the time to share your feedback with us.", rating)
}

// fallbackSummary keeps the first 100 characters of the review.
func fallbackSummary(review string) string {
	if utf8.RuneCountInString(review) <= fallbackSummaryRune {
		return review
	}
	return string([]rune(review)[:fallbackSummaryRune]) + "..."
}

func fallbackActions(rating int) []string {
	switch {
	case rating <= 2:
		return []string{
			"Reach out to customer immediately to address concerns",
			"Investigate and resolve reported issues",
			"Offer compensation or solution",
		}
	case rating == 3:
		return []string{
			"Follow up to understand areas for improvement",
			"Review feedback with relevant team",
		}
	default:
		return []string{
			"Thank customer for positive feedback",
			"Share feedback with team for motivation",
		}
	}
}
