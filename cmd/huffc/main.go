// Command huffc compresses and decompresses files with the Huffman code
// of a frequency table written by huffcount.
//
//	huffc -c -t frequencies.txt in.cpp out.huf [in2.cpp out2.huf ...]
//	huffc -d -t frequencies.txt in.huf out.cpp [in2.huf out2.cpp ...]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/seiflotfy/codehuff"
)

var (
	dashc     bool
	dashd     bool
	dashv     bool
	dashlossy bool
	dasht     string
)

func init() {
	flag.BoolVar(&dashc, "c", false, "compress")
	flag.BoolVar(&dashd, "d", false, "decompress")
	flag.BoolVar(&dashv, "v", false, "print the code table and tree")
	flag.BoolVar(&dashlossy, "lossy", false, "skip symbols missing from the table instead of failing")
	flag.StringVar(&dasht, "t", "frequencies.txt", "frequency table")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: %s -c|-d [flags] <input> <output> [<input> <output> ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if dashc == dashd || len(args) == 0 || len(args)%2 != 0 {
		flag.Usage()
		os.Exit(1)
	}

	cache, err := codehuff.NewCodecCache(4,
		codehuff.WithLossyEncode(dashlossy),
		codehuff.WithLogger(log.New(os.Stderr, "", 0)))
	if err != nil {
		exitf("huffc: %s", err)
	}

	for i := 0; i < len(args); i += 2 {
		// the table is re-read per file so edits between runs of a
		// long batch are picked up; unchanged tables hit the cache
		table, err := codehuff.LoadFrequencyTable(dasht)
		if err != nil {
			exitf("huffc: %s", err)
		}
		codec, err := cache.Codec(table)
		if err != nil {
			exitf("huffc: %s: %s", dasht, err)
		}
		if dashv && i == 0 {
			if _, err := codec.Codes().WriteTo(os.Stdout); err != nil {
				exitf("huffc: %s", err)
			}
			fmt.Println()
			if err := codec.Tree().Dump(os.Stdout); err != nil {
				exitf("huffc: %s", err)
			}
		}
		if dashc {
			err = compress(codec, args[i], args[i+1])
		} else {
			err = decompress(codec, args[i], args[i+1])
		}
		if err != nil {
			exitf("huffc: %s", err)
		}
	}
}

func compress(codec *codehuff.Codec, in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(out)
	if err != nil {
		return err
	}
	cf, err := codec.Compress(dst, src)
	if err != nil {
		dst.Close()
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := dst.Close(); err != nil {
		return err
	}
	ratio := 0.0
	if cf.OriginalSize > 0 {
		ratio = 1 - float64(cf.Size())/float64(cf.OriginalSize)
	}
	fmt.Printf("%s (%d bytes) -> %s (%d bytes)\n", in, cf.OriginalSize, out, cf.Size())
	fmt.Printf("  ratio %.2f%%, %d bits, %d padding bits\n", ratio*100, cf.Bits(), cf.Padding)
	return nil
}

func decompress(codec *codehuff.Codec, in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(out)
	if err != nil {
		return err
	}
	n, err := codec.Decompress(dst, src)
	if err != nil {
		dst.Close()
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := dst.Close(); err != nil {
		return err
	}
	fmt.Printf("%s -> %s (%d bytes)\n", in, out, n)
	return nil
}
