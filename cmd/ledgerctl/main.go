package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	schemasql "github.com/stegavault/stegavault/db"
	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/auth"
	"github.com/stegavault/stegavault/internal/bootstrap"
	"github.com/stegavault/stegavault/internal/config"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/store"
)

const usage = `Usage: ledgerctl [--config file] [--env dir] <command> [flags]

Commands:
  migrate                                   create the ledger tables
  create-account --name NAME [--balance N]  create an account
  deposit --account ID --amount N           add funds to an account (negative withdraws)
  issue-session --account ID                print a session token for an account
  reembed --asset ID                        rewrite the embedded claim from the latest transaction
`

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

type command func(ctx context.Context, cfg *config.LedgerCtlConfig, db *gorm.DB, args []string) error

var commands = map[string]command{
	"migrate":        runMigrate,
	"create-account": runCreateAccount,
	"deposit":        runDeposit,
	"issue-session":  runIssueSession,
	"reembed":        runReembed,
}

func main() {
	flag.CommandLine.SetInterspersed(false)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	run, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	config.ChdirRepoRoot()
	cfg, err := config.LoadLedgerCtlConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "stegavault-ledgerctl",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx := context.Background()
	db, err := bootstrap.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open database", zap.Error(err))
	}

	if err := run(ctx, cfg, db, flag.Args()[1:]); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("command", flag.Arg(0)))
		fmt.Fprintf(os.Stderr, "%s: %v\n", flag.Arg(0), err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context, _ *config.LedgerCtlConfig, db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := db.WithContext(ctx).Exec(schemasql.InitSQL).Error; err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.InfoCtx(ctx, "Applied ledger schema")
	return nil
}

func runCreateAccount(ctx context.Context, _ *config.LedgerCtlConfig, db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("create-account", flag.ContinueOnError)
	name := fs.String("name", "", "Display name of the account")
	balance := fs.String("balance", "0", "Opening balance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("--name is required")
	}

	amount, err := decimal.NewFromString(*balance)
	if err != nil {
		return fmt.Errorf("invalid --balance: %w", err)
	}

	account, err := store.NewPGStore(db).CreateAccount(ctx, store.CreateAccountInput{
		Name:    *name,
		Balance: amount,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%s\t%s\n", account.ID, account.Name, account.Balance.StringFixed(2))
	return nil
}

func runDeposit(ctx context.Context, _ *config.LedgerCtlConfig, db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ContinueOnError)
	accountID := fs.String("account", "", "Account id")
	amount := fs.String("amount", "", "Amount to add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accountID == "" || *amount == "" {
		return errors.New("--account and --amount are required")
	}

	delta, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("invalid --amount: %w", err)
	}

	account, err := store.NewPGStore(db).AdjustBalance(ctx, *accountID, delta)
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%s\n", account.ID, account.Balance.StringFixed(2))
	return nil
}

func runIssueSession(ctx context.Context, cfg *config.LedgerCtlConfig, db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("issue-session", flag.ContinueOnError)
	accountID := fs.String("account", "", "Account id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accountID == "" {
		return errors.New("--account is required")
	}

	dataStore := store.NewPGStore(db)
	if _, err := dataStore.GetAccount(ctx, *accountID); err != nil {
		return err
	}

	sessions, err := auth.NewSessionManager(auth.Config{
		Secret:       cfg.Auth.SessionSecret,
		TTL:          cfg.Auth.SessionTTL,
		ExpiryMargin: cfg.Auth.ExpiryMargin,
	}, dataStore, adapter.NewClock())
	if err != nil {
		return err
	}

	token, expiresAt, err := sessions.Issue(*accountID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\nexpires %s\n", token, expiresAt.UTC().Format(time.RFC3339))
	return nil
}

func runReembed(ctx context.Context, cfg *config.LedgerCtlConfig, db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("reembed", flag.ContinueOnError)
	assetID := fs.String("asset", "", "Asset id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *assetID == "" {
		return errors.New("--asset is required")
	}

	if err := cfg.Storage.Validate(); err != nil {
		return err
	}
	core, err := bootstrap.NewCore(ctx, db, bootstrap.CoreConfig{
		ClaimSecret: cfg.Claim.SigningSecret,
		Stego:       cfg.Stego,
		Storage:     cfg.Storage,
		NATS:        cfg.NATS,
	})
	if err != nil {
		return err
	}
	defer core.Close()

	asset, err := core.Orchestrator.Reembed(ctx, *assetID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%s\t%s\n", asset.ID, asset.OwnerID, asset.ImageURL)
	return nil
}
