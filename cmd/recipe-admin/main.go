package main

import (
	"Go-Recipe-Admin/cmd/config"
	migration "Go-Recipe-Admin/cmd/database/migrate"
	"Go-Recipe-Admin/internal/console"
	"Go-Recipe-Admin/internal/utils"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

const usage = `usage: recipe-admin <command> [flags]

commands:
  serve                       run the admin web server
  migrate                     create the recipe tables
  create [--account-id ID]    create a recipe interactively
  edit <id>                   edit a recipe interactively
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	utils.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "serve":
		err = serve(ctx)
	case "migrate":
		err = migrate()
	case "create":
		err = create(ctx, args)
	case "edit":
		err = edit(ctx, args)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		if console.IsAborted(err) {
			os.Exit(130)
		}
		log.Fatalf("recipe-admin: %v", err)
	}
}

func connectIfNeeded() (*gorm.DB, error) {
	if !config.NeedsDatabase() {
		return nil, nil
	}
	return config.ConnectDB()
}

func serve(ctx context.Context) error {
	db, err := connectIfNeeded()
	if err != nil {
		return err
	}
	app, err := config.NewApp(db)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Errorw("error shutting down server", "error", err)
		}
	}()

	return app.Listen(":" + utils.GetConfig("APP_PORT"))
}

func migrate() error {
	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	return migration.Migrate(db)
}

func newRunner() (*console.Runner, error) {
	db, err := connectIfNeeded()
	if err != nil {
		return nil, err
	}
	gateways, err := config.NewGateways(db)
	if err != nil {
		return nil, err
	}
	return console.NewRunner(
		console.NewSurveyDriver(),
		gateways.Recipes,
		gateways.Accounts,
		gateways.Cache,
		utils.NewValidator(),
	), nil
}

func create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	accountID := fs.String("account-id", "", "preselect this account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	runner, err := newRunner()
	if err != nil {
		return err
	}
	_, err = runner.RunCreate(ctx, *accountID)
	return err
}

func edit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	runner, err := newRunner()
	if err != nil {
		return err
	}
	_, err = runner.RunEdit(ctx, fs.Arg(0))
	return err
}
