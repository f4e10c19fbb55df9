// internal/models/user.go
package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User is a credential record. Accounts are provisioned out-of-band;
// there is no registration endpoint.
type User struct {
	ID       uint   `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"size:50;not null;index"`
	Password string `json:"-" gorm:"size:255;not null"`
}

func (User) TableName() string {
	return "users"
}

// bcrypt version prefixes. Values carrying one of these are already
// hashed and must never be hashed again.
var hashPrefixes = []string{"$2a$", "$2b$", "$2y$"}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// PasswordIsHashed reports whether the stored password value carries
// the bcrypt hash-prefix marker.
func (u *User) PasswordIsHashed() bool {
	for _, prefix := range hashPrefixes {
		if strings.HasPrefix(u.Password, prefix) {
			return true
		}
	}
	return false
}
