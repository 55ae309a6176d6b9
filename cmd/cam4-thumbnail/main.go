// This program downloads the snapshot thumbnail of a CAM4 performer
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bcmk/camgrab/internal/resolver"
	"github.com/bcmk/camgrab/internal/thumbnail"
	"github.com/bcmk/camgrab/lib/cmdlib"
)

var verbose = flag.Bool("v", false, "verbose output")
var timeout = flag.Int("t", 10, "timeout in seconds")
var address = flag.String("a", "", "source IP address")
var output = flag.String("o", "", "output file path")

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
	modelID := resolver.CanonicalModelID(flag.Arg(0))
	if !resolver.ModelIDRegexp.MatchString(modelID) {
		fmt.Println("invalid model ID")
		os.Exit(1)
	}
	client := cmdlib.HTTPClientWithTimeoutAndAddress(*timeout, *address, false)
	url := fmt.Sprintf("%s/%s", resolver.DefaultThumbnailBase, modelID)
	path, err := thumbnail.Download(context.Background(), client, url, modelID, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot download thumbnail, %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("thumbnail saved to %s\n", path)
}
