package domain

import "time"

// CashSessionStatus is the lifecycle state of a point-of-sale cash session.
type CashSessionStatus string

const (
	SessionOpen   CashSessionStatus = "OPEN"
	SessionClosed CashSessionStatus = "CLOSED"
)

// CashSession is an external collaborator entity: sessions are opened and
// closed by the point-of-sale workflow, this core only checks that a SALE
// referencing one lands in an open session.
type CashSession struct {
	SessionID     string            `json:"sessionID"`
	CompanyID     string            `json:"companyID"`
	PointOfSaleID string            `json:"pointOfSaleID"`
	Status        CashSessionStatus `json:"status"`
	OpenedAt      time.Time         `json:"openedAt"`
	ClosedAt      *time.Time        `json:"closedAt,omitempty"`
}

// IsOpen reports whether the session can still receive sales.
func (s CashSession) IsOpen() bool {
	return s.Status == SessionOpen && s.ClosedAt == nil
}
