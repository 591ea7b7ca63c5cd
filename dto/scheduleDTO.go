package dto

type CreateEventRequest struct {
	Title      string `json:"title"`
	Date       string `json:"date" binding:"required"`
	IsDeadline bool   `json:"isDeadline"`
}

type MoveEventRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end"`
}

type ResizeEventRequest struct {
	End string `json:"end" binding:"required"`
}

type RetitleEventRequest struct {
	Title string `json:"title"`
}
