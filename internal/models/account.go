package models

import "time"

// Account represents a user record
type Account struct {
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
	Username   string    `db:"username"`
	Email      string    `db:"email"`
	Password   string    `db:"password"`
	ID         int64     `db:"id"`
	IsAdmin    bool      `db:"is_admin"`
	IsLoggedIn bool      `db:"is_logged_in"`
	IsVerified bool      `db:"is_verified"`
}

// NewAccount is the input for account creation
type NewAccount struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,max=1024,password"`
}

// AccountUpdate carries a partial update; nil fields keep their stored value.
type AccountUpdate struct {
	Username *string `validate:"omitnil,min=3,max=50"`
	Email    *string `validate:"omitnil,email,max=254"`
	Password *string `validate:"omitnil,max=1024,password"`
}

// IsEmpty reports whether no field is set. Applying an empty update only
// refreshes updated_at.
func (u AccountUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil
}
