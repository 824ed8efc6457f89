package domain

import (
	"encoding/json"
	"fmt"
)

// Operation is one of the supported analysis flags.
type Operation string

const (
	OpTokenizer Operation = "tokenizer"
	OpTagger    Operation = "tagger"
	OpDisambig  Operation = "disambig"
	OpDediac    Operation = "dediac"
	OpRootStem  Operation = "root_stem"
)

// Operations lists every operation in dispatch order.
var Operations = []Operation{OpTokenizer, OpTagger, OpDisambig, OpDediac, OpRootStem}

// GuidanceMessage is returned as output when the flag is not recognized.
const GuidanceMessage = "Please choose one: tokenizer, tagger, disambig, dediac, or root_stem"

// ParseOperation matches flag exactly (case-sensitive) against Operations.
func ParseOperation(flag string) (Operation, bool) {
	for _, op := range Operations {
		if string(op) == flag {
			return op, true
		}
	}
	return "", false
}

// AnalysisRequest is a single (text, flag) pair.
type AnalysisRequest struct {
	Text string `json:"text"`
	Flag string `json:"flag"`
}

// AnalysisResponse is the only success envelope. Output holds a JSON
// string or array depending on the operation.
type AnalysisResponse struct {
	Output json.RawMessage `json:"output"`
}

// BatchItemResult carries either an output or an error for one batch item.
type BatchItemResult struct {
	Output json.RawMessage `json:"output,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

// TaggedToken is a (token, tag) pair. It encodes as a two-element JSON array.
type TaggedToken struct {
	Token string
	Tag   string
}

func (t TaggedToken) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{t.Token, t.Tag})
}

func (t *TaggedToken) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("tagged token: want 2 elements, got %d", len(pair))
	}
	t.Token, t.Tag = pair[0], pair[1]
	return nil
}
