package domain

import "time"

// CreationFields holds the creation audit data shared by immutable entities.
// There is deliberately no "last updated" pair: transactions and their lines
// are never modified after creation, except for the status transition owned
// by the reversal flow.
type CreationFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"` // UserID reference
}
