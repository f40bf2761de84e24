package identity

// User is an account. The password is only ever held as a bcrypt hash and
// never serialised.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
