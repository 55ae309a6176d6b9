// This program records a CAM4 performer's live stream with ffmpeg
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bcmk/camgrab/internal/fetch"
	"github.com/bcmk/camgrab/internal/recorder"
	"github.com/bcmk/camgrab/internal/resolver"
	"github.com/bcmk/camgrab/lib/cmdlib"
)

var verbose = flag.Bool("v", false, "verbose output")
var timeout = flag.Int("t", 10, "timeout in seconds")
var address = flag.String("a", "", "source IP address")
var cookiesFile = flag.String("f", "", "cookie jar file to import")
var strategy = flag.String("s", "http", "fetch strategy: http, browser or chrome")
var output = flag.String("o", "", "output file path")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <model ID or link> [-- ffmpeg args]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		return
	}
	if !*verbose {
		cmdlib.Verbosity = cmdlib.ErrVerbosity
	}
	client := cmdlib.HTTPClientWithTimeoutAndAddress(*timeout, *address, *cookiesFile != "")
	if *cookiesFile != "" {
		if _, err := cmdlib.LoadCookieFile(client.Client.Jar, *cookiesFile); err != nil {
			fmt.Fprintf(os.Stderr, "cannot load cookies, %v\n", err)
			os.Exit(1)
		}
	}
	fetcher, err := fetch.NewFetcher(*strategy, fetch.Config{
		Clients:        []*cmdlib.Client{client},
		TimeoutSeconds: *timeout,
		Dbg:            *verbose,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	r := resolver.New(fetcher)
	r.Dbg = *verbose
	result := r.Resolve(context.Background(), flag.Arg(0))

	rec, err := recorder.Start(result, *output, flag.Args()[1:])
	if err != nil {
		var notStreaming *recorder.NotStreamingError
		if errors.As(err, &notStreaming) {
			fmt.Println(notStreaming.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	fmt.Printf("recording to %s, press Ctrl+C to stop\n", rec.OutputPath())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	done := make(chan error, 1)
	go func() { done <- rec.Wait() }()
	select {
	case <-sig:
		fmt.Println("stopping recording...")
		if err := rec.Stop(); err != nil {
			cmdlib.Lerr("cannot stop ffmpeg, %v", err)
		}
		<-done
	case err := <-done:
		if err != nil {
			fmt.Fprintf(os.Stderr, "ffmpeg exited, %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("saved %s\n", rec.OutputPath())
}
