package backend

import (
	"encoding/json"

	"opslink/internal/domain"
)

// defaultConfidence is assumed when the model omits a usable score.
const defaultConfidence = 0.8

// DecodeModelContent turns a model's text reply into structured fields plus a
// self-reported confidence. Models are asked for {"data": ..., "confidence":
// ...} but frequently return bare objects or prose; anything unparseable
// degrades to a single raw_text field rather than failing the call.
func DecodeModelContent(content string) (domain.Fields, float64) {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return domain.Fields{"raw_text": content}, defaultConfidence
	}

	confidence := defaultConfidence
	if c, ok := parsed["confidence"].(float64); ok {
		confidence = c
	}

	if data, ok := parsed["data"].(map[string]interface{}); ok {
		return domain.Fields(data), confidence
	}
	delete(parsed, "confidence")
	return domain.Fields(parsed), confidence
}
