package dto

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@uniplan.app"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
	UserID      int64  `json:"userId"`
	FullName    string `json:"fullName"`
	RoleType    string `json:"roleType"`
}
