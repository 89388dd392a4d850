package backend

// BuildExtractionPrompt returns the instruction sent alongside the document.
func BuildExtractionPrompt() string {
	return `Extract all structured data from this document. Return ONLY a valid JSON object with two top-level keys:
- "data": an object containing all relevant information you can identify, including names, emails, phone numbers, companies, addresses, dates, amounts, and any other structured data.
- "confidence": a number between 0 and 1 scoring the extraction quality.

Do not wrap the JSON in markdown code fences and do not add any explanation.`
}
