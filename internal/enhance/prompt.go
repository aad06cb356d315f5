package enhance

import (
	"encoding/json"
	"strings"
)

const systemPrompt = `You are an ATS resume reviewer.
Return ONLY a JSON object of the form {"suggestions": ["..."]}.
Give at most 10 short, concrete rewrite suggestions for the resume excerpt.
Prefer suggestions that work the missing keywords into existing experience truthfully.
Do not invent employers, dates, degrees or metrics.
Do not repeat the score back.`

// Prompt returns the system and user messages for req.
func Prompt(req Request) (system, user string) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		payload = []byte("{}")
	}
	var b strings.Builder
	b.WriteString("Target industry: ")
	if strings.TrimSpace(req.Industry) == "" {
		b.WriteString("general")
	} else {
		b.WriteString(req.Industry)
	}
	b.WriteString("\n\nAnalysis input (JSON):\n")
	b.Write(payload)
	return systemPrompt, b.String()
}
