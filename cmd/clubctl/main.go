package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"memberclub-rental/internal/config"
	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/idgen"
	"memberclub-rental/internal/jobs"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository/memory"
	"memberclub-rental/internal/scheduler"
	"memberclub-rental/internal/security"
	"memberclub-rental/internal/seed"
	"memberclub-rental/internal/service"
	"memberclub-rental/internal/utils"
)

const version = "0.3.0"

type app struct {
	cfg      *config.Config
	clock    utils.Clock
	auth     service.AuthService
	runner   *jobs.JobRunner
	services *jobs.Services
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/clubctl.yaml", "Path to configuration file")
	command := flag.String("run-once", "report-all", "Command to run (report-overdue, report-revenue, report-all, inventory, members, watch, register, version)")
	asOf := flag.String("as-of", "", "Business date YYYY-MM-DD to run as (defaults to today)")
	username := flag.String("user", "", "Operator username")
	password := flag.String("password", os.Getenv("CLUBCTL_PASSWORD"), "Operator password (or CLUBCTL_PASSWORD)")
	fullName := flag.String("name", "", "Full name for register")
	flag.Parse()

	if *command == "version" {
		fmt.Printf("clubctl %s\n", version)
		return
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting clubctl", "club", cfg.Club.Name, "log_level", cfg.Log.Level, "command", *command)

	clock, err := newClock(cfg, *asOf)
	if err != nil {
		log.Fatalf("Invalid -as-of: %v", err)
	}

	a, err := newApp(context.Background(), cfg, clock)
	if err != nil {
		logger.Error("Failed to start", "error", err)
		log.Fatalf("Failed to start: %v", err)
	}

	if config.RequiredLevel(*command) == config.SecuritySession {
		if err := a.login(context.Background(), *username, *password); err != nil {
			logger.Error("Login failed", "username", *username, "error", err)
			fmt.Fprintln(os.Stderr, "login failed")
			os.Exit(2)
		}
	}

	if err := a.run(context.Background(), *command, *username, *fullName, *password); err != nil {
		logger.Error("Command failed", "command", *command, "error", err)
		os.Exit(1)
	}
	logger.Info("Command completed", "command", *command)
}

func newClock(cfg *config.Config, asOf string) (utils.Clock, error) {
	if asOf == "" {
		return utils.SystemClock{Loc: cfg.Location()}, nil
	}
	d, err := domain.ParseDate(asOf)
	if err != nil {
		return nil, err
	}
	return utils.NewFixedClock(d.Time(cfg.Location()).Add(12 * time.Hour)), nil
}

// newApp wires the in-memory store, services and operators from configuration
func newApp(ctx context.Context, cfg *config.Config, clock utils.Clock) (*app, error) {
	store := memory.NewStore()
	ids := idgen.New()

	ledger := service.NewRentalLedger(store.RentalRepository, store.ItemRepository, store.MemberRepository, ids, clock)
	revenue := service.NewRevenueLedger(store.RevenueRepository, clock)
	services := &jobs.Services{
		Ledger:     ledger,
		Revenue:    revenue,
		Returns:    service.NewReturnService(ledger, revenue, store.ItemRepository, store.MemberRepository, clock),
		Inventory:  service.NewInventoryService(store.ItemRepository, ids),
		Membership: service.NewMembershipService(store.MemberRepository, store.RentalRepository, ids),
	}

	tokens := security.NewTokenManager(cfg.Session.Secret, cfg.Club.Name, cfg.SessionTTL())
	auth := service.NewAuthService(store.OperatorRepository, tokens, cfg.Session.BcryptCost)

	for _, op := range cfg.Operators {
		if err := store.OperatorRepository.Create(ctx, &domain.Operator{
			Username:     op.Username,
			FullName:     op.FullName,
			PasswordHash: op.PasswordHash,
		}); err != nil {
			return nil, fmt.Errorf("failed to provision operator %s: %w", op.Username, err)
		}
	}

	if cfg.Seed.Enabled {
		data := seed.Sample()
		if cfg.Seed.File != "" {
			b, err := os.ReadFile(cfg.Seed.File)
			if err != nil {
				return nil, fmt.Errorf("failed to read seed file: %w", err)
			}
			data = b
		}
		if _, err := seed.Load(ctx, services.Inventory, services.Membership, data); err != nil {
			return nil, err
		}
	}

	return &app{
		cfg:      cfg,
		clock:    clock,
		auth:     auth,
		runner:   jobs.NewJobRunner(services, clock),
		services: services,
	}, nil
}

func (a *app) login(ctx context.Context, username, password string) error {
	token, op, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	claims, err := a.auth.ValidateSession(ctx, token)
	if err != nil {
		return err
	}
	logger.Info("Session opened", "username", op.Username, "expires", claims.ExpiresAt.Time.Format(time.RFC3339))
	return nil
}

func (a *app) run(ctx context.Context, command, username, fullName, password string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch command {
	case "report-overdue":
		rows, err := a.runner.OverdueReport(utils.Today(a.clock))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "RENTAL\tMEMBER\tITEM\tEXPECTED\tDAYS LATE\tFEE")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", r.RentalID, r.MemberName, r.ItemName, r.ExpectedReturn, r.DaysLate, r.FeeSoFar.StringFixed(2))
		}
	case "report-revenue":
		s, err := a.runner.RevenueReport()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Rentals\t%s\nLate fees\t%s\nTotal\t%s\n", s.Rentals.StringFixed(2), s.LateFees.StringFixed(2), s.Total.StringFixed(2))
	case "report-all":
		if !a.runner.RunAll() {
			return errors.New("one or more reports failed")
		}
	case "watch":
		return a.watch()
	case "inventory":
		items, err := a.services.Inventory.ListItems(ctx, service.ItemFilter{})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tSTATUS\tHOUR\tDAY\tDETAILS")
		for _, i := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", i.ID, i.Name, i.Status, i.PricePerHour.StringFixed(2), i.PricePerDay.StringFixed(2), i.Describe())
		}
	case "members":
		members, err := a.services.Membership.ListMembers(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tTIER\tRENTALS")
		for _, m := range members {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", m.ID, m.Name, m.Tier, len(m.History))
		}
	case "register":
		op, err := a.auth.Register(ctx, username, fullName, password)
		if err != nil {
			return err
		}
		// the store lives for one run, so print a config entry to keep the account
		fmt.Fprintf(w, "operators:\n  - username: %s\n    full_name: %q\n    password_hash: %q\n", op.Username, op.FullName, op.PasswordHash)
	default:
		logger.Error("Unknown command", "command", command)
		fmt.Printf("Available commands:\n")
		fmt.Printf("  - report-overdue\n")
		fmt.Printf("  - report-revenue\n")
		fmt.Printf("  - report-all\n")
		fmt.Printf("  - inventory\n")
		fmt.Printf("  - members\n")
		fmt.Printf("  - watch\n")
		fmt.Printf("  - register\n")
		fmt.Printf("  - version\n")
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// watch runs the scheduled reports until interrupted
func (a *app) watch() error {
	cronScheduler, err := scheduler.NewScheduler(a.runner, a.cfg.Scheduler, a.cfg.Location())
	if err != nil {
		return err
	}
	if cronScheduler.Entries() == 0 {
		return errors.New("no report schedules configured")
	}

	cronScheduler.Start()
	logger.Info("Report scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	cronScheduler.Stop()
	return nil
}
