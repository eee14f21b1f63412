package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/gentle75/internal/api"
	"github.com/terraincognita07/gentle75/internal/cli"
	"github.com/terraincognita07/gentle75/internal/config"
	"github.com/terraincognita07/gentle75/internal/db"
	"github.com/terraincognita07/gentle75/internal/i18n"
	"gorm.io/gorm"
)

const (
	commandServe         = "serve"
	commandResetPassword = "reset-password"
	commandSetPassword   = "set-password"
	commandSeed          = "seed"
)

type command struct {
	name  string
	email string
}

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		log.Fatalf("%v\nusage: gentle75 [serve | reset-password <email> | set-password <email> | seed <email>]", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	if err := runCommand(cmd, cfg, database); err != nil {
		log.Fatalf("%s failed: %v", cmd.name, err)
	}
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: commandServe}, nil
	}

	name := strings.TrimSpace(args[0])
	switch name {
	case commandServe:
		if len(args) != 1 {
			return command{}, errors.New("serve takes no arguments")
		}
		return command{name: name}, nil
	case commandResetPassword, commandSetPassword, commandSeed:
		if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
			return command{}, fmt.Errorf("%s requires exactly one email argument", name)
		}
		return command{name: name, email: strings.TrimSpace(args[1])}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", name)
	}
}

func runCommand(cmd command, cfg config.Config, database *gorm.DB) error {
	switch cmd.name {
	case commandResetPassword:
		return cli.RunResetPasswordCommand(database, cmd.email, os.Stdout)
	case commandSetPassword:
		return cli.RunSetPasswordCommand(database, cmd.email, cli.TerminalPasswordReader(os.Stdin, os.Stdout), os.Stdout)
	case commandSeed:
		return cli.RunSeedCommand(database, cmd.email, time.Now(), cfg.Location, os.Stdout)
	default:
		return serve(cfg, database)
	}
}

func serve(cfg config.Config, database *gorm.DB) error {
	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, cfg.Location, i18nManager, cfg.CookieSecure)
	if err != nil {
		return fmt.Errorf("handler init: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Gentle75",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Gentle75 listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location.String())
	return app.Listen(":" + cfg.Port)
}

// csrfMiddlewareConfig expects the token echoed in X-CSRF-Token; the cookie
// stays readable so API clients can copy it.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "gentle75_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		Expiration:     12 * time.Hour,
		ContextKey:     "csrf",
	}
}
