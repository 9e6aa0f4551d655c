package assess

import "encoding/json"

// analysisSchema constrains JSON-mode responses to the assessment
// shape. The field casing follows the Gemini structured-output schema
// format; other backends ignore it and rely on the prompt instead.
const analysisSchema = `{
  "type": "OBJECT",
  "properties": {
    "grade": {"type": "STRING", "enum": ["A", "B", "C", "D", "F"]},
    "score": {"type": "NUMBER"},
    "summary": {"type": "STRING"},
    "fbaAnalysis": {"type": "STRING", "description": "Verdict on FBA viability"},
    "fbmAnalysis": {"type": "STRING", "description": "Verdict on FBM viability"},
    "pros": {"type": "ARRAY", "items": {"type": "STRING"}},
    "cons": {"type": "ARRAY", "items": {"type": "STRING"}},
    "competitionLevel": {"type": "STRING", "enum": ["Low", "Medium", "High"]},
    "demandLevel": {"type": "STRING", "enum": ["Low", "Medium", "High"]},
    "suggestedAction": {"type": "STRING"},
    "ipRiskAssessment": {"type": "STRING", "description": "Brand gating and intellectual-property risk for a reseller"},
    "seasonalityInsight": {"type": "STRING", "description": "How seasonal the demand is and when to stock"}
  },
  "required": ["grade", "score", "summary", "fbaAnalysis", "fbmAnalysis", "pros", "cons", "competitionLevel", "demandLevel", "suggestedAction", "ipRiskAssessment", "seasonalityInsight"]
}`

// AnalysisSchema returns the response schema for assessment calls.
func AnalysisSchema() json.RawMessage {
	return json.RawMessage(analysisSchema)
}
