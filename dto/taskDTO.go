package dto

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type IntakeRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	Priority     int    `json:"priority"`
	CaptchaToken string `json:"captchaToken"`
}
