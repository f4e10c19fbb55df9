// internal/migrate/passwords.go
package migrate

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/avpetrescu/catalog-admin/internal/models"
)

// PlaintextPasswords rewrites every plaintext users.password value to a
// bcrypt hash and reports how many rows were rewritten. Values already
// carrying the bcrypt hash-prefix marker are skipped, so the routine is
// safe to run any number of times. Rows are saved one at a time; an
// error aborts the run but keeps the rows already rewritten.
func PlaintextPasswords(db *gorm.DB) (int, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return 0, fmt.Errorf("failed to load users: %w", err)
	}

	migrated := 0
	for i := range users {
		user := &users[i]
		if user.PasswordIsHashed() {
			continue
		}

		logrus.WithField("username", user.Username).Info("Hashing password")

		if err := user.SetPassword(user.Password); err != nil {
			return migrated, fmt.Errorf("failed to hash password for %q: %w", user.Username, err)
		}
		if err := db.Save(user).Error; err != nil {
			return migrated, fmt.Errorf("failed to save user %q: %w", user.Username, err)
		}
		migrated++
	}

	return migrated, nil
}
