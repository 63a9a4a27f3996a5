package annotate

import (
	"fmt"
	"strings"
)

// buildPrompt constructs the batched annotation prompt. The job text and each
// resume are truncated before prompting so one oversized upload cannot blow
// the provider's input limit for the whole batch.
func (a *Annotator) buildPrompt(jobText string, candidates []Input) string {
	var sb strings.Builder

	sb.WriteString("You are an expert technical recruiter. Analyze the job description and each candidate resume below.\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "jobAnalysis": {
    "mustHaveSkills": ["string"],
    "goodToHaveSkills": ["string"],
    "softSkills": ["string"],
    "experienceRequiredYears": 5,
    "jobTitle": "string"
  },
  "candidates": [
    {
      "id": "string",
      "matchedKeywords": ["string"],
      "missingKeywords": ["string"],
      "experienceYears": 6,
      "whyHigh": "string",
      "improvement": "string",
      "summary": "string"
    }
  ]
}
`)
	sb.WriteString("\nIMPORTANT:\n")
	sb.WriteString("- Use the exact candidate ids given below.\n")
	sb.WriteString("- experienceRequiredYears and experienceYears are numbers; use \"unknown\" only when the text gives no signal.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Job description:\n\"\"\"\n")
	sb.WriteString(truncate(jobText, a.maxJobChars))
	sb.WriteString("\n\"\"\"\n\n")

	sb.WriteString("Candidate resumes:\n")
	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("--- candidate id: %s ---\n", c.ID))
		sb.WriteString(truncate(c.Text, a.maxResumeChars))
		sb.WriteString("\n")
	}

	return sb.String()
}
