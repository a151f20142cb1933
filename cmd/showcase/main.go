package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/robfig/cron/v3"

	"keyboardkit/internal/bot"
	"keyboardkit/internal/config"
	"keyboardkit/internal/store"
	"keyboardkit/pkg/logx"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./showcase.yaml", "path to config yaml")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	log, closeLog, err := logx.Setup(cfg.LogxConfig())
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()
	mgr.SetLogger(log.With(logx.String("component", "config")))

	var st *store.Store
	if cfg.Database != "" {
		st, err = store.Open(cfg.Database, log.With(logx.String("component", "store")))
		if err != nil {
			log.Error("open store", logx.Err(err))
			os.Exit(1)
		}
		defer func() { _ = st.Close() }()
	}

	b, err := bot.New(cfg, log.With(logx.String("component", "bot")), st)
	if err != nil {
		log.Error("create bot", logx.Err(err))
		os.Exit(1)
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.RefreshSpec, b.Refresh); err != nil {
		log.Error("bad refresh_spec", logx.String("spec", cfg.RefreshSpec), logx.Err(err))
		os.Exit(1)
	}
	if st != nil {
		_, _ = c.AddFunc("@daily", func() {
			if _, err := st.Prune(context.Background(), time.Now().AddDate(0, 0, -30)); err != nil {
				log.Warn("prune page state", logx.Err(err))
			}
		})
	}
	c.Start()
	defer c.Stop()

	go func() {
		if err := mgr.Watch(ctx, b.ApplyConfig); err != nil && ctx.Err() == nil {
			log.Warn("config watch stopped", logx.Err(err))
		}
	}()

	// No-op outside systemd.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	b.Start(ctx)
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
}
