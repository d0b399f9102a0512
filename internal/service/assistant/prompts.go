package assistant

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	ModeDefault          = "default"
	ModeResearch         = "research"
	ModePaperAnalysis    = "paper_analysis"
	ModeLiteratureReview = "literature_review"
)

var promptTemplates = map[string]string{
	ModeResearch: "You are an AI research assistant helping with {topic}. " +
		"Provide detailed, accurate information and cite sources when possible. " +
		"If you reference research papers or studies, provide proper citations. " +
		"Be thorough and analytical in your responses.",
	ModePaperAnalysis: "Analyze the following research paper:\n\n" +
		"Title: {title}\n" +
		"Authors: {authors}\n" +
		"Abstract: {abstract}\n\n" +
		"Provide a summary of the key findings, methodology, and implications. " +
		"Evaluate the strengths and limitations of the research.",
	ModeLiteratureReview: "Based on the research papers and findings in our conversation, " +
		"provide a comprehensive literature review on {topic}. " +
		"Synthesize the key findings, identify patterns and contradictions, " +
		"and highlight gaps in the current research.",
	ModeDefault: "You are an AI research assistant that maintains conversation context across turns. " +
		"You help users explore research topics, analyze papers, and synthesize information. " +
		"Be helpful, accurate, and scientifically rigorous.",
}

// Factual modes run colder than conversational ones.
var temperatures = map[string]float64{
	ModeResearch:         0.3,
	ModePaperAnalysis:    0.2,
	ModeLiteratureReview: 0.4,
	ModeDefault:          0.5,
}

func systemPrompt(mode string, params map[string]string) string {
	tpl, ok := promptTemplates[mode]
	if !ok {
		tpl = promptTemplates[ModeDefault]
	}
	for k, v := range params {
		tpl = strings.ReplaceAll(tpl, "{"+k+"}", v)
	}
	return tpl
}

func temperature(mode string) float64 {
	if t, ok := temperatures[mode]; ok {
		return t
	}
	return temperatures[ModeDefault]
}

var researchKeywords = []string{
	"research", "find information", "look up", "search for",
	"tell me about", "what is", "how does", "explain",
	"analyze", "investigate", "study", "examine",
}

// isResearchRequest detects whether a user turn should switch the prompt
// into research mode.
func isResearchRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range researchKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var topicStripPhrases = []string{
	"research", "find information about", "look up", "search for",
	"tell me about", "what is", "how does", "explain",
	"analyze", "investigate", "study", "examine",
}

// extractTopic pulls the subject out of a research request by stripping the
// request phrasing. Crude, but only used to fill the prompt template.
func extractTopic(text string) string {
	lower := strings.ToLower(text)
	for _, phrase := range topicStripPhrases {
		lower = strings.ReplaceAll(lower, phrase, "")
	}
	lower = strings.TrimSpace(lower)
	if lower == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}
