// Package topics provides the keyword-match topic detector. It is a
// placeholder heuristic behind a stable function signature; the store only
// cares that it maps text to a list of topic strings.
package topics

import "strings"

// vocabulary is the fixed list of recognized topics. Matching is a
// case-insensitive substring test against the lowered message.
var vocabulary = []string{
	"research", "science", "technology", "AI", "machine learning",
	"history", "literature", "mathematics", "physics", "chemistry",
	"biology", "medicine", "economics", "politics", "philosophy",
	"computer science", "natural language processing", "deep learning",
	"neural networks", "reinforcement learning", "data science",
	"quantum computing", "blockchain", "cybersecurity", "robotics",
}

// Detect returns the vocabulary topics mentioned in text, in vocabulary
// order. The returned strings keep their canonical casing ("AI", not "ai").
func Detect(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, topic := range vocabulary {
		if strings.Contains(lower, strings.ToLower(topic)) {
			found = append(found, topic)
		}
	}
	return found
}
