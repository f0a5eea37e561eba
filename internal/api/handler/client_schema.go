package handler

import "time"

type birthDataRequest struct {
	Date      time.Time `json:"date"                validate:"required"`
	City      string    `json:"city"                validate:"required"`
	Country   string    `json:"country"             validate:"required"`
	Timezone  string    `json:"timezone"            validate:"required"`
	Latitude  *float64  `json:"latitude,omitempty"  validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64  `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type createClientRequest struct {
	FirstName string            `json:"first_name" validate:"required"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"      validate:"omitempty,email"`
	Phone     string            `json:"phone"`
	Notes     string            `json:"notes"`
	Birth     *birthDataRequest `json:"birth_data,omitempty"`
}

type updateClientRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

type birthDataResponse struct {
	Date      time.Time `json:"date"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Timezone  string    `json:"timezone"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

type clientResponse struct {
	ID           string             `json:"id"`
	ConsultantID string             `json:"consultant_id"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Email        string             `json:"email,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	BirthData    *birthDataResponse `json:"birth_data,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type paginationResponse struct {
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

type listClientsResponse struct {
	Data       []clientResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
