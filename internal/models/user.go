package models

// Profile is the authenticated user's profile as returned by the backend.
// The password never crosses this boundary.
type Profile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
