package domain

import "time"

const (
	AuditActionRegister = "register"
	AuditActionLogin    = "login"

	AuditOutcomeSuccess = "success"
	AuditOutcomeFailure = "failure"
)

// AuthEvent is one entry in the authentication audit trail. Reason holds a
// server-side explanation for failures and is never exposed to clients.
type AuthEvent struct {
	Email     string
	Action    string
	Outcome   string
	Reason    string
	Timestamp time.Time
}
