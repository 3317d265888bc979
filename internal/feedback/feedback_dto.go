package feedback

import "time"

type ChatRequest struct {
	Message string `json:"message"`
}

type ReviewRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

type FeedbackResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	BotReply  string    `json:"bot_reply,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
