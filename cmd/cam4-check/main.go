// This program checks if a specific CAM4 performer is streaming
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/bcmk/camgrab/internal/fetch"
	"github.com/bcmk/camgrab/internal/resolver"
	"github.com/bcmk/camgrab/lib/cmdlib"
)

var verbose = flag.Bool("v", false, "verbose output")
var timeout = flag.Int("t", 10, "timeout in seconds")
var address = flag.String("a", "", "source IP address")
var cookies = flag.Bool("c", false, "use cookies")
var cookiesFile = flag.String("f", "", "cookie jar file to import")
var strategy = flag.String("s", "http", "fetch strategy: http, browser or chrome")
var jsonOutput = flag.Bool("j", false, "output the result as JSON")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <model ID or link>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		return
	}
	if !*verbose {
		cmdlib.Verbosity = cmdlib.ErrVerbosity
	}
	client := cmdlib.HTTPClientWithTimeoutAndAddress(*timeout, *address, *cookies || *cookiesFile != "")
	if *cookiesFile != "" {
		n, err := cmdlib.LoadCookieFile(client.Client.Jar, *cookiesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot load cookies, %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			cmdlib.Ldbg("loaded %d cookies", n)
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
	if *jsonOutput {
		out, err := json.MarshalIndent(result, "", "  ")
		cmdlib.CheckErr(err)
		fmt.Println(string(out))
	} else if result.Status == resolver.StatusStreaming {
		fmt.Printf("%s is streaming\n%s\n", result.ModelID, result.StreamURL)
	} else {
		fmt.Println(result.Message)
	}
	if result.Status != resolver.StatusStreaming {
		os.Exit(1)
	}
}
