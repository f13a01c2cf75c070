// Command bootstrap-account seeds an account so a fresh deployment has
// credentials to log in with.
//
// Usage:
//
//	go run scripts/bootstrap-account.go -email admin@example.com -password secret
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/litshelf/litshelf/internal/repository"
	"github.com/litshelf/litshelf/internal/service"
)

type output struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		username    = flag.String("username", "admin", "Account username")
		email       = flag.String("email", "admin@example.com", "Account email")
		password    = flag.String("password", "", "Account password")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	accounts := service.NewAccountService(repo, nil)

	account, err := accounts.Register(ctx, service.AccountInput{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		if errors.Is(err, service.ErrAccountExists) {
			fmt.Fprintln(os.Stderr, "account already registered")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "create account:", err)
		os.Exit(1)
	}

	out := output{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
	}

	switch *format {
	case "plain":
		fmt.Printf("account %d created: %s <%s>\n", out.AccountID, out.Username, out.Email)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
