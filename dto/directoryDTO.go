package dto

type ClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Industry string `json:"industry"`
}

type ContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Tag   string `json:"tag"`
}
