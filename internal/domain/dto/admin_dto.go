package dto

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}
