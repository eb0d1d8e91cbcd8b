package models

import "time"

// User is the local read cache of a signed-in identity
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoRef    string    `json:"photoRef,omitempty"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
}
