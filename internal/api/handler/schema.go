package handler

import "time"

// Signed URL lifetimes per audience.
const (
	adminSignedURLTTL  = time.Hour
	clientSignedURLTTL = 5 * time.Minute
)

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Success *bool             `json:"success,omitempty"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type signURLRequest struct {
	URL string `json:"url" validate:"required"`
}

type countResponse struct {
	Count int `json:"count"`
}

type unreadResponse struct {
	Count        int  `json:"count"`
	ReadTracking bool `json:"readTracking"`
}
