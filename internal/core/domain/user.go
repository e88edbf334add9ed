package domain

const (
	RoleAdmin   = "ADMIN"
	RoleAdviser = "ADVISER"
	RoleClient  = "CLIENT"
	RoleReport  = "REPORT_JOB"
)

// DefaultRoleName is assigned to every self-registered user.
const DefaultRoleName = RoleClient

// User models an identity record. Password always holds a hash once the
// registration workflow has run; plaintext never reaches the store.
type User struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	IDDocument  string  `json:"idDocument"`
	PhoneNumber string  `json:"phoneNumber"`
	RoleID      string  `json:"idRole"`
	BaseSalary  float64 `json:"baseSalary"`
	Password    string  `json:"-"`
}

// Role is a named permission class. Name is unique.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
