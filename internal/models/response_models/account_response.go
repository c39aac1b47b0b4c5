package response_models

type AccountLoginResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
