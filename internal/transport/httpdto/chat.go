package httpdto

type SendMessageRequest struct {
	ReceiverID       string   `json:"receiver_id"`
	GroupID          string   `json:"group_id"`
	Content          string   `json:"content"`
	FileURL          string   `json:"file_url"`
	ImageURL         string   `json:"image_url"`
	AudioURL         string   `json:"audio_url"`
	PollOptions      []string `json:"poll_options"`
	ReplyToMessageID string   `json:"reply_to_message_id"`
}

type ReactRequest struct {
	Reaction string `json:"reaction" binding:"required"`
}

type VoteRequest struct {
	SelectedOption string `json:"selected_option" binding:"required"`
}
