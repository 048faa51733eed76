package user

// Credential is one entry of the users document. Password is either a
// bcrypt hash or, for legacy entries, the plain password itself.
type Credential struct {
	Username string `json:"user"`
	Password string `json:"pass"`
}
