package model

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AuthData struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    AuthData `json:"data"`
}

type UserResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    PublicUser `json:"data"`
}

type TaskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *Task  `json:"data"`
}

type TaskListResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Data    []Task `json:"data"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
