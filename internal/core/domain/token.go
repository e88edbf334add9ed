package domain

// Token is the result of a successful authentication: a compact signed
// credential plus its lifetime in seconds. It is never persisted.
type Token struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Claims is the verified content of an access token. It carries only what
// the token embeds; the role is re-resolved from the store at request time.
type Claims struct {
	UserID     string
	Email      string
	IDDocument string
	RoleID     string
}

// Principal is the authenticated identity attached to one request. The
// authority has the form "ROLE_<name>" and reflects the role as stored at
// request time, not as embedded in the token.
type Principal struct {
	UserID     string
	Email      string
	IDDocument string
	RoleID     string
	Authority  string
}
