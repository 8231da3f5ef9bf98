package enrichment

import "fmt"

const noReviewPlaceholder = "No review provided"

func userReplyPrompt(rating int, review string) string {
	return fmt.Sprintf(`You are a friendly customer service representative. A user has submitted feedback with a %d-star rating (out of 5) and the following review: "%s".

Generate a warm, personalized thank-you message (2-3 sentences) that:
- Thanks them for their feedback
- Acknowledges their rating appropriately
- Is genuine and professional

Keep it concise and friendly.`, rating, review)
}

func summaryPrompt(review string) string {
	return fmt.Sprintf(`Summarize the following customer review in one concise sentence (max 15 words):

"%s"

Summary:`, review)
}

func recommendedActionsPrompt(rating int, review string) string {
	return fmt.Sprintf(`You are a customer success manager. Based on this customer feedback:
- Rating: %d/5 stars
- Review: "%s"

Suggest 2-3 specific, actionable next steps for the business team. Format as a JSON array of strings.
Each action should be clear, specific, and professional.

Example format: ["Follow up with customer within 24 hours", "Investigate reported issue with checkout process"]

Return ONLY the JSON array, no other text.`, rating, review)
}
