package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prompt is a stored binary-choice question with two vote counters.
// Counters only ever grow, by exactly 1 per accepted vote.
type Prompt struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OptionA   string             `bson:"option_a"`
	OptionB   string             `bson:"option_b"`
	Category  string             `bson:"category,omitempty"`
	CreatedBy *string            `bson:"created_by,omitempty"`
	ACount    int64              `bson:"a_count"`
	BCount    int64              `bson:"b_count"`
}

// PromptResponse is the public JSON shape of a prompt.
type PromptResponse struct {
	ID        string  `json:"id"`
	OptionA   string  `json:"option_a"`
	OptionB   string  `json:"option_b"`
	Category  string  `json:"category"`
	CreatedBy *string `json:"created_by"`
	ACount    int64   `json:"a_count"`
	BCount    int64   `json:"b_count"`
}

// ToResponse maps a stored prompt to its public shape. Records written by
// older clients may lack a category; it defaults to "general". Counters
// missing from the document decode as zero, which is the documented default.
func (p *Prompt) ToResponse() PromptResponse {
	category := p.Category
	if category == "" {
		category = "general"
	}
	return PromptResponse{
		ID:        p.ID.Hex(),
		OptionA:   p.OptionA,
		OptionB:   p.OptionB,
		Category:  category,
		CreatedBy: p.CreatedBy,
		ACount:    p.ACount,
		BCount:    p.BCount,
	}
}
