// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/trace-backup/internal/config"
	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/internal/service"
	"github.com/MKhiriev/trace-backup/internal/tui"
	"github.com/MKhiriev/trace-backup/models"
)

const usage = `usage: trace-backup [flags] <command> [args]

commands:
  insert-daily <symptoms> <proximity> <travel>   back up a daily questionnaire
  insert-test <positive|negative>                back up a test result
  insert-contact <account>...                    back up a contact report
  list [kind]                                    list all backups, newest first
  recent                                         list backups of the recent window
  today <kind>                                   check whether kind was submitted today
  watch                                          keep printing the recent status card
  version                                        print build information`

// App runs one client command against the backup service.
type App struct {
	backups   Backups
	cfg       config.ClientApp
	buildInfo models.AppBuildInfo
	out       io.Writer

	logger *logger.Logger
}

func NewApp(backups Backups, cfg config.ClientApp, buildInfo models.AppBuildInfo, out io.Writer, logger *logger.Logger) *App {
	return &App{
		backups:   backups,
		cfg:       cfg,
		buildInfo: buildInfo,
		out:       out,
		logger:    logger,
	}
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(usage)
		return ErrNoCommand
	}

	command, operands := args[0], args[1:]
	a.logger.Debug().Str("func", "App.Run").Str("command", command).Msg("running command")

	switch command {
	case "insert-daily":
		return a.insertDaily(ctx, operands)
	case "insert-test":
		return a.insertTest(ctx, operands)
	case "insert-contact":
		return a.insertContact(ctx, operands)
	case "list":
		return a.list(ctx, operands)
	case "recent":
		entries, ok := a.backups.ListWithin(ctx, a.cfg.RecentWindow)
		a.println(tui.RenderEntries(fmt.Sprintf("BACKUPS OF THE LAST %s", a.cfg.RecentWindow), entries, ok))
		return nil
	case "today":
		return a.today(ctx, operands)
	case "watch":
		return a.watch(ctx)
	case "version":
		a.println(tui.RenderBuildInfo(a.buildInfo))
		return nil
	case "help":
		a.println(usage)
		return nil
	default:
		a.println(usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (a *App) insertDaily(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: insert-daily needs <symptoms> <proximity> <travel>", ErrInvalidArgs)
	}

	symptoms, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: symptoms: %w", ErrInvalidArgs, err)
	}
	proximity, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("%w: proximity: %w", ErrInvalidArgs, err)
	}
	travel, err := strconv.ParseBool(args[2])
	if err != nil {
		return fmt.Errorf("%w: travel: %w", ErrInvalidArgs, err)
	}

	return a.insert(ctx, models.DailyReport{
		SymptomCount:         symptoms,
		HadProximityExposure: proximity,
		HadTravel:            travel,
	})
}

func (a *App) insertTest(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: insert-test needs <positive|negative>", ErrInvalidArgs)
	}

	result, err := models.ParseTestResult(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	return a.insert(ctx, models.TestReport{Result: result})
}

func (a *App) insertContact(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: insert-contact needs at least one <account>", ErrInvalidArgs)
	}

	targets := make([]string, 0, len(args))
	for _, account := range args {
		targets = append(targets, models.ContactIdentifier(account))
	}

	return a.insert(ctx, models.ContactReport{TargetIdentifiers: targets})
}

func (a *App) insert(ctx context.Context, report models.Report) error {
	entry, err := a.backups.Insert(ctx, tui.DescribeReport(report), report)
	if err != nil {
		return err
	}

	a.println(fmt.Sprintf("backed up %s report %s", report.Kind(), entry.ID))
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		entries, ok := a.backups.ListAll(ctx)
		a.println(tui.RenderEntries("ALL BACKUPS", entries, ok))
		return nil
	case 1:
		kind, err := models.ParseReportKind(args[0])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		entries, ok, err := a.backups.ListKind(ctx, kind, time.Time{})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		a.println(tui.RenderEntries(strings.ToUpper(string(kind))+" BACKUPS", entries, ok))
		return nil
	default:
		return fmt.Errorf("%w: list takes at most one [kind]", ErrInvalidArgs)
	}
}

func (a *App) today(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: today needs <kind>", ErrInvalidArgs)
	}

	kind, err := models.ParseReportKind(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	submitted, err := a.backups.HasSubmittedKindToday(ctx, kind)
	a.println(tui.RenderTodayCheck(kind, submitted, err))
	return err
}

// watch prints the status card every refresh interval until ctx is done.
// The card is served from the status cache, never from the store.
func (a *App) watch(ctx context.Context) error {
	job := service.NewStatusCacheJob(a.backups, a.cfg.RecentWindow)
	interval := a.cfg.RefreshInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	a.println(tui.RenderStatusCard(job.Refresh(ctx), a.cfg.RecentWindow))

	job.Start(ctx, interval)
	defer job.Stop()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			a.println(tui.RenderStatusCard(job.Snapshot(), a.cfg.RecentWindow))
		}
	}
}

func (a *App) println(s string) {
	_, _ = fmt.Fprintln(a.out, s)
}
