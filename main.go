// Package main library management API.
//
// @title           Library Management API
// @version         1.0
// @description     Book catalog, loans, purchases and admin statistics.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Anneshtika/library-management-website/app/echoServer"
	adminctrl "github.com/Anneshtika/library-management-website/app/echoServer/controller/admin"
	bookctrl "github.com/Anneshtika/library-management-website/app/echoServer/controller/book"
	loanctrl "github.com/Anneshtika/library-management-website/app/echoServer/controller/loan"
	purchasectrl "github.com/Anneshtika/library-management-website/app/echoServer/controller/purchase"
	userctrl "github.com/Anneshtika/library-management-website/app/echoServer/controller/user"
	"github.com/Anneshtika/library-management-website/app/echoServer/validation"
	"github.com/Anneshtika/library-management-website/config"
	_ "github.com/Anneshtika/library-management-website/docs"
	bookrepo "github.com/Anneshtika/library-management-website/repository/book"
	loanrepo "github.com/Anneshtika/library-management-website/repository/loan"
	purchaserepo "github.com/Anneshtika/library-management-website/repository/purchase"
	userrepo "github.com/Anneshtika/library-management-website/repository/user"
	booksvc "github.com/Anneshtika/library-management-website/service/book"
	catalogsvc "github.com/Anneshtika/library-management-website/service/catalog"
	loansvc "github.com/Anneshtika/library-management-website/service/loan"
	usersvc "github.com/Anneshtika/library-management-website/service/user"
	"github.com/Anneshtika/library-management-website/util/clock"
	"github.com/Anneshtika/library-management-website/util/database"
)

func main() {

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.MaxConns)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			log.Error("db migrate failed", "err", err)
			os.Exit(1)
		}
	}

	now := clock.In(cfg.Location)

	// repos
	br := bookrepo.New(db)
	lr := loanrepo.New(db)
	pr := purchaserepo.New(db)
	ur := userrepo.New(db)

	// services
	bs := booksvc.New(db, br, log)
	ls := loansvc.New(db, lr, bs, now, log)
	us := usersvc.New(ur, now)
	cs := catalogsvc.New(bs, lr, pr, us, now, log)

	// controllers
	v := validation.NewValidate()
	bookC := &bookctrl.Controller{Svc: bs, Catalog: cs, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: ls, V: v, Log: log}
	purchaseC := &purchasectrl.Controller{Svc: cs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, Catalog: cs, Log: log}
	adminC := &adminctrl.Controller{Catalog: cs, Log: log}

	// echo
	e := echoServer.New(log)
	echoServer.Register(e, echoServer.C{
		Book:     bookC,
		Loan:     loanC,
		Purchase: purchaseC,
		User:     userC,
		Admin:    adminC,

		Users:     us,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		log.Info("starting server", "port", cfg.Port, "env", cfg.Env, "tz", cfg.Location.String())
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
