// Command huffcount counts the symbols of source files and writes a
// frequency table for huffc.
//
//	huffcount [-o frequencies.txt] [-top 10] [-vocab file.yaml] <file-or-dir>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/seiflotfy/codehuff"
	"github.com/seiflotfy/codehuff/collect"
	"github.com/seiflotfy/codehuff/vocab"
)

var (
	dasho     string
	dashvocab string
	dashext   string
	dashtop   int
	dashj     int
	dashq     bool
)

func init() {
	flag.StringVar(&dasho, "o", "frequencies.txt", "output frequency table")
	flag.StringVar(&dashvocab, "vocab", os.Getenv("CODEHUFF_VOCAB"), "vocabulary file or built-in name (default: $CODEHUFF_VOCAB, then cpp)")
	flag.StringVar(&dashext, "ext", strings.Join(collect.Extensions, ","), "comma-separated extensions counted in directories")
	flag.IntVar(&dashtop, "top", 10, "number of most frequent symbols to print")
	flag.IntVar(&dashj, "j", 0, "files counted in parallel (0 = GOMAXPROCS)")
	flag.BoolVar(&dashq, "q", false, "do not list processed files")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <file-or-dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

func loadVocab(name string) vocab.Set {
	if name == "" {
		return vocab.CPP()
	}
	v, err := vocab.Load(name)
	if err != nil {
		exitf("vocabulary: %s", err)
	}
	return v
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []collect.Option{
		collect.WithVocabulary(loadVocab(dashvocab)),
		collect.WithExtensions(strings.Split(dashext, ",")...),
		collect.WithWorkers(dashj),
	}
	if !dashq {
		opts = append(opts, collect.WithLogger(log.New(os.Stderr, "", 0)))
	}
	table, err := collect.Path(ctx, flag.Arg(0), opts...)
	if err != nil {
		exitf("huffcount: %s", err)
	}
	if table.Len() == 0 {
		exitf("huffcount: no symbols found in %s", flag.Arg(0))
	}
	if _, err := table.Stats(dashtop).WriteTo(os.Stdout); err != nil {
		exitf("huffcount: %s", err)
	}
	if err := codehuff.SaveFrequencyTable(dasho, table); err != nil {
		exitf("huffcount: %s", err)
	}
	fmt.Printf("\nfrequency table written to %s\n", dasho)
}
