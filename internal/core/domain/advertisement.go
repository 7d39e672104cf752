package domain

import "time"

// Advertisement is a classified ad owned by the user who created it.
// OwnerUserID is set once at creation and never reassigned.
type Advertisement struct {
	ID          int64     `json:"id"`
	OwnerUserID int64     `json:"owner_user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
