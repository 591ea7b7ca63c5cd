package dto

type MeResponse struct {
	UserID         string `json:"uid,omitempty"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Badge          string `json:"badge"`
	Activity       string `json:"activity,omitempty"`
	SignedIn       bool   `json:"signedIn"`
	CanSeedTasks   bool   `json:"canSeedTasks"`
	CanManageUsers bool   `json:"canManageUsers"`
}

type ActivityRequest struct {
	Activity string `json:"activity"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
}
