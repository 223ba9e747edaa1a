package entity

import "time"

// User is an account: a rider, a driver or an admin.
type User struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	Password  string    `json:"-" firestore:"password"` // bcrypt hash, never serialized to clients
	Name      string    `json:"name" firestore:"name"`
	Phone     string    `json:"phone" firestore:"phone"`
	Role      Role      `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updated_at"`
}

func (u *User) RecordID() string { return u.ID }

func (u *User) RecordKind() Kind { return KindUser }

func (u *User) Touch(now time.Time) { u.UpdatedAt = now }

func (u *User) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return u.ID, true
	case FieldEmail:
		return u.Email, true
	case FieldRole:
		return u.Role.String(), true
	default:
		return nil, false
	}
}

// UserUpdate lists the user fields that may change after registration.
// Password must already be hashed when set.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"-"`
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}

// Apply merges the set fields into u.
func (p UserUpdate) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}
