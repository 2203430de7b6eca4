// Package user defines the administrative user record adminctl operates on.
package user

// User is a single administrative user record as stored in the local
// database, imported from CSV, or returned by the admin API. All fields
// hold already-validated values; construction from untrusted input goes
// through the checks facade first.
type User struct {
	ID        string // 24-character hex object ID
	Email     string
	Name      string
	Role      string
	CreatedAt string // calendar date, one of the accepted layouts
}

// Record returns the user as a flat mapping for filter expressions and
// CSV row assembly. Keys match the canonical CSV header names.
func (u User) Record() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}

// Fields returns the user's values in canonical header order.
func (u User) Fields() []string {
	return []string{u.ID, u.Email, u.Name, u.Role, u.CreatedAt}
}

// Headers is the canonical CSV column set for user records, in the order
// rows are written.
func Headers() []string {
	return []string{"id", "email", "name", "role", "created_at"}
}
