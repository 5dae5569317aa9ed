package model

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// SessionProfile is the cached identity of the signed-in user, kept for
// instant rendering. The backend stays authoritative for trust-sensitive
// fields; Role is advisory until reconciled against /auth/verify-role.
type SessionProfile struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Role    UserRole `json:"role"`
	Status  string   `json:"status"`
	Image   string   `json:"image,omitempty"`
}

// IsAdmin reports whether the cached role is admin. Callers deciding on
// anything sensitive should reconcile first.
func (p *SessionProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// ProfileUpdate is a partial profile change; nil fields are left alone
// when merged into the cached profile.
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *string
	Role    *UserRole
	Status  *string
	Image   *string
}

// Merge applies the non-nil fields of the update over the profile.
func (p *SessionProfile) Merge(update ProfileUpdate) {
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
	}
	if update.Address != nil {
		p.Address = *update.Address
	}
	if update.Role != nil {
		p.Role = *update.Role
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Image != nil {
		p.Image = *update.Image
	}
}
