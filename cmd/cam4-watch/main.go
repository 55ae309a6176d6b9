// This program watches CAM4 performers and notifies a Telegram chat on status changes
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tg "github.com/bcmk/telegram-bot-api"

	"github.com/bcmk/camgrab/internal/fetch"
	"github.com/bcmk/camgrab/internal/recorder"
	"github.com/bcmk/camgrab/internal/resolver"
	"github.com/bcmk/camgrab/internal/watchconfig"
	"github.com/bcmk/camgrab/lib/cmdlib"
)

var (
	checkErr = cmdlib.CheckErr
	lerr     = cmdlib.Lerr
	linf     = cmdlib.Linf
)

type worker struct {
	cfg        *watchconfig.Config
	resolver   *resolver.Resolver
	bot        *tg.BotAPI
	statuses   map[string]resolver.StatusKind
	recordings map[string]*recorder.Recording
	recDone    chan string
}

func newWorker() *worker {
	cfg, err := watchconfig.ReadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Debug {
		cmdlib.Verbosity = cmdlib.DbgVerbosity
	} else {
		cmdlib.Verbosity = cmdlib.InfVerbosity
	}
	clients := make([]*cmdlib.Client, 0, len(cfg.SourceIPAddresses))
	for _, addr := range cfg.SourceIPAddresses {
		client := cmdlib.HTTPClientWithTimeoutAndAddress(
			cfg.TimeoutSeconds,
			addr,
			cfg.EnableCookies || cfg.CookiesFile != "")
		if cfg.CookiesFile != "" {
			_, err := cmdlib.LoadCookieFile(client.Client.Jar, cfg.CookiesFile)
			checkErr(err)
		}
		clients = append(clients, client)
	}
	fetcher, err := fetch.NewFetcher(cfg.FetchStrategy, fetch.Config{
		Clients:        clients,
		Headers:        cfg.Headers,
		TimeoutSeconds: cfg.TimeoutSeconds,
		Dbg:            cfg.Debug,
	})
	checkErr(err)
	r := resolver.New(fetcher)
	r.Dbg = cfg.Debug
	var bot *tg.BotAPI
	if cfg.BotToken != "" {
		bot, err = tg.NewBotAPIWithClient(cfg.BotToken, clients[0].Client)
		checkErr(err)
	}
	return &worker{
		cfg:        cfg,
		resolver:   r,
		bot:        bot,
		statuses:   map[string]resolver.StatusKind{},
		recordings: map[string]*recorder.Recording{},
		recDone:    make(chan string),
	}
}

func (w *worker) notify(text string) {
	if w.bot == nil {
		return
	}
	msg := tg.NewMessage(w.cfg.ChatID, text)
	if _, err := w.bot.Send(msg); err != nil {
		lerr("cannot send a message, %v", err)
	}
}

func (w *worker) checkModel(ctx context.Context, model string) {
	result := w.resolver.Resolve(ctx, model)
	old, known := w.statuses[result.ModelID]
	if !known || old != result.Status {
		linf("%s: %v", result.ModelID, result.Status)
		if result.Status == resolver.StatusStreaming {
			w.notify(fmt.Sprintf("%s is streaming\n%s", result.ModelID, result.StreamURL))
		} else if known {
			w.notify(fmt.Sprintf("%s is now %v", result.ModelID, result.Status))
		}
	}
	w.statuses[result.ModelID] = result.Status
	if w.cfg.Record {
		w.updateRecording(result)
	}
}

func (w *worker) updateRecording(result resolver.Result) {
	rec := w.recordings[result.ModelID]
	if result.Status == resolver.StatusStreaming && rec == nil {
		outputPath := filepath.Join(
			w.cfg.OutputDirectory,
			recorder.DefaultOutputPath(result.ModelID, time.Now()))
		rec, err := recorder.Start(result, outputPath, nil)
		if err != nil {
			lerr("cannot start recording %s, %v", result.ModelID, err)
			return
		}
		w.recordings[result.ModelID] = rec
		modelID := result.ModelID
		go func() {
			_ = rec.Wait()
			w.recDone <- modelID
		}()
		return
	}
	if result.Status != resolver.StatusStreaming && rec != nil {
		if err := rec.Stop(); err != nil {
			lerr("cannot stop recording %s, %v", result.ModelID, err)
		}
	}
}

func (w *worker) checkAll(ctx context.Context) {
	for _, model := range w.cfg.Models {
		w.checkModel(ctx, model)
	}
}

func (w *worker) shutdown() {
	for modelID, rec := range w.recordings {
		linf("stopping recording of %s", modelID)
		if err := rec.Stop(); err != nil {
			lerr("cannot stop recording %s, %v", modelID, err)
		}
	}
	deadline := time.After(10 * time.Second)
	for len(w.recordings) > 0 {
		select {
		case modelID := <-w.recDone:
			delete(w.recordings, modelID)
		case <-deadline:
			lerr("timed out waiting for recordings to stop")
			return
		}
	}
}

func main() {
	w := newWorker()
	linf("watching %d models every %d seconds", len(w.cfg.Models), w.cfg.PeriodSeconds)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(time.Duration(w.cfg.PeriodSeconds) * time.Second)
	defer ticker.Stop()

	ctx := context.Background()
	w.checkAll(ctx)
	for {
		select {
		case <-ticker.C:
			w.checkAll(ctx)
		case modelID := <-w.recDone:
			linf("recording of %s finished", modelID)
			delete(w.recordings, modelID)
		case <-signals:
			linf("shutting down")
			w.shutdown()
			return
		}
	}
}
