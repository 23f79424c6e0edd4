package explain

import (
	"bytes"
	"encoding/json"
	"strings"

	"StockAdvisor/internal/domain/models"
)

// SystemPrompt is sent as the system message of every polish request.
const SystemPrompt = "You refine short financial summaries. Keep them under 150 words, factual, and neutral."

const polishInstructions = "You are a financial analyst writing clear, neutral summaries under 150 words.\n" +
	"Keep the provided facts accurate, avoid investment advice, and note both positives and risks.\n" +
	"Rewrite the following draft into one concise paragraph:\n"

type promptPayload struct {
	Symbol       string                    `json:"symbol"`
	Quote        models.Quote              `json:"quote"`
	ScoreDetails []models.StockScoreReason `json:"scoreDetails"`
	Draft        string                    `json:"draft"`
}

// BuildPolishPrompt renders the rewrite instructions followed by the facts
// and the draft as indented JSON.
func BuildPolishPrompt(in DraftInput, draft string) string {
	details := in.ScoreDetails
	if details == nil {
		details = []models.StockScoreReason{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// encoding a struct of plain values cannot fail
	_ = enc.Encode(promptPayload{Symbol: in.Symbol, Quote: in.Quote, ScoreDetails: details, Draft: draft})

	return polishInstructions + strings.TrimRight(buf.String(), "\n")
}
