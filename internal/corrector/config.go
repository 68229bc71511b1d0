package corrector

// Suggestion is one ranked correction.
type Suggestion struct {
	Word     string  `json:"word"`
	ID       int     `json:"id"`
	Score    float64 `json:"score"`
	Distance int     `json:"distance"`
}

const (
	DecisionReplace = "auto_replace"
	DecisionHint    = "hint_only"
)

type SuggestionInfo struct {
	Token       string   `json:"token"`
	Suggestions []string `json:"suggestions"`
	Decision    string   `json:"decision"`
}

type CorrectionResult struct {
	Original     string                 `json:"original"`
	Corrected    string                 `json:"corrected"`
	Alternatives []string               `json:"alternatives,omitempty"`
	Suggestions  map[int]SuggestionInfo `json:"suggestions"`
}
