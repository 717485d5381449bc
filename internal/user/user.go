package user

// User represents an account holder. The password field only carries the
// bcrypt hash internally; responses go through sanitizeUser so it is never
// serialized back to a client.
type User struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Avatar   *string `json:"avatar,omitempty"`
	Email    string  `json:"email"`
	Password string  `json:"password,omitempty"`
}
