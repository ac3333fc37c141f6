package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/group"
	"gorm.io/gorm"

	"github.com/hollowlog/burrow/activitypub"
	"github.com/hollowlog/burrow/internal/httpx"
	"github.com/hollowlog/burrow/workers"
)

type ServeCmd struct {
	Addr   string `help:"address to listen on" default:"127.0.0.1:9999"`
	Domain string `required:"" help:"domain name of the instance"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}
	if err := configureDB(db); err != nil {
		return err
	}

	envFn := func(r *http.Request) *activitypub.Env {
		return &activitypub.Env{DB: db}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/inbox", httpx.HandlerFunc(envFn, activitypub.InboxCreate))
	r.Route("/users/{name}", func(r chi.Router) {
		r.Post("/inbox", httpx.HandlerFunc(envFn, activitypub.InboxCreate))
		r.Get("/collections/featured", httpx.HandlerFunc(envFn, activitypub.FeaturedShow))
	})
	r.Get("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "User-agent: *\nDisallow: /")
	})

	svr := &http.Server{
		Addr:         s.Addr,
		Handler:      r,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	g := group.New(context.Background())
	g.Add(func(ctx context.Context) error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return svr.Shutdown(shutdown)
	})
	g.Add(func(context.Context) error {
		log.Info("listening", "addr", s.Addr, "domain", s.Domain)
		return svr.ListenAndServe()
	})
	g.Add(workers.NewInboxProcessor(db, s.Domain))
	g.Add(workers.NewDeliveryProcessor(db))
	return g.Wait()
}
