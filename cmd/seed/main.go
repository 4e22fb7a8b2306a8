// Command seed creates demo users through the same service the API uses,
// so every seeded row passes validation and gets a hashed password.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/iliyamo/user-dashboard/internal/apperr"
	"github.com/iliyamo/user-dashboard/internal/config"
	"github.com/iliyamo/user-dashboard/internal/database"
	"github.com/iliyamo/user-dashboard/internal/logging"
	"github.com/iliyamo/user-dashboard/internal/queue"
	"github.com/iliyamo/user-dashboard/internal/repository"
	"github.com/iliyamo/user-dashboard/internal/service"
	"github.com/iliyamo/user-dashboard/internal/utils"
	"github.com/iliyamo/user-dashboard/internal/validation"
)

var genders = []string{"male", "female", "other"}

func main() {
	n := flag.Int("n", 10, "number of users to create")
	prefix := flag.String("prefix", "demo", "email local-part prefix")
	flag.Parse()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Error("migrate schema", "err", err)
			os.Exit(1)
		}
	}

	users := service.NewUserService(repository.NewUserRepo(db), queue.Discard{},
		validation.New(cfg.PhoneRegion), utils.NewHasher(cfg.BcryptCost))

	created, skipped := 0, 0
	for i := 0; i < *n; i++ {
		body, err := demoUser(*prefix, i)
		if err != nil {
			logger.Error("build user", "err", err)
			os.Exit(1)
		}
		u, err := users.CreateOne(ctx, validation.Input{Body: body})
		switch {
		case err == nil:
			created++
			logger.Debug("created", "user_id", u.ID, "email", u.Email)
		case apperr.KindOf(err) == apperr.KindConflict:
			skipped++ // already seeded
		default:
			logger.Error("create user", "index", i, "err", err)
			os.Exit(1)
		}
	}
	slog.Info("seed finished", "created", created, "skipped", skipped)
}

// demoUser builds the create body for the i-th user.  Phones are valid
// Israeli mobile numbers so the default region accepts them.
func demoUser(prefix string, i int) ([]byte, error) {
	return json.Marshal(map[string]string{
		"email":     fmt.Sprintf("%s%d@example.com", prefix, i),
		"password":  "Demo1234!",
		"firstName": fmt.Sprintf("Demo%d", i),
		"lastName":  "User",
		"phone":     fmt.Sprintf("052%07d", i%10000000),
		"gender":    genders[i%len(genders)],
		"address":   fmt.Sprintf("%d Demo Street", i+1),
	})
}
