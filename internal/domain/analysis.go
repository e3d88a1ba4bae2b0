// File: internal/domain/analysis.go
package domain

// AIAnalysis is an advisory summary of a session generated by a backend
// model. Never authoritative; the console caches it per session id until an
// operator forces a re-fetch.
type AIAnalysis struct {
    Summary           string   `json:"summary"`
    MainNeed          string   `json:"mainNeed"`
    EmotionalState    string   `json:"emotionalState"`
    UrgencyLevel      string   `json:"urgencyLevel"`
    SuggestedPriority string   `json:"suggestedPriority"`
    KeyTopics         []string `json:"keyTopics"`
    RiskFactors       []string `json:"riskFactors"`
    Recommendations   []string `json:"recommendations"`
}
