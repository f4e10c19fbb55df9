// cmd/migrate-passwords/main.go
//
// Offline routine that rewrites plaintext user passwords to bcrypt
// hashes. Safe to run repeatedly: already-hashed values are skipped.
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/avpetrescu/catalog-admin/internal/config"
	"github.com/avpetrescu/catalog-admin/internal/database"
	"github.com/avpetrescu/catalog-admin/internal/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	migrated, err := migrate.PlaintextPasswords(db)
	if err != nil {
		logrus.WithError(err).WithField("migrated", migrated).Fatal("Password migration failed")
	}

	logrus.WithField("migrated", migrated).Info("Passwords migrated successfully")
}
