package models

// TransactionType classifies a point history record
type TransactionType string

const (
	TransactionCharge TransactionType = "CHARGE"
	TransactionUse    TransactionType = "USE"
)

// UserPoint represents the current balance of one account
type UserPoint struct {
	UserID       int64 `json:"userId" db:"user_id"`
	Point        int64 `json:"point" db:"point"` // non-negative, capped by MAX_POINT
	UpdateMillis int64 `json:"updateMillis" db:"update_millis"`
}

// PointHistory is one immutable ledger record. Amount is positive for a
// CHARGE and negative for a USE; ID is assigned by the history store in
// insertion order and is authoritative for ordering (records may share a
// timestamp under concurrency).
type PointHistory struct {
	ID         int64           `json:"id" db:"id"`
	UserID     int64           `json:"userId" db:"user_id"`
	Amount     int64           `json:"amount" db:"amount"`
	Type       TransactionType `json:"type" db:"type"`
	TimeMillis int64           `json:"timeMillis" db:"time_millis"`
}

// PointRequest is the body of the charge and use endpoints
type PointRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}
