package handler

type createPromptRequest struct {
	OptionA   string  `json:"option_a" binding:"required,min=3,max=140"`
	OptionB   string  `json:"option_b" binding:"required,min=3,max=140"`
	Category  string  `json:"category"`
	CreatedBy *string `json:"created_by"`
}

type voteRequest struct {
	PromptID string `json:"prompt_id" binding:"required"`
	Option   string `json:"option" binding:"required,oneof=a b"`
}
