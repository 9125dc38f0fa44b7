// Package main provides the beacon CLI tool for development and debugging.
//
// It reads a JSON document from a file or standard input and re-emits it in
// the SDK's canonical form: map keys sorted, integer/float distinction
// preserved, non-finite floats as their quoted tokens.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/beaconkit/go-sdk/pkg/value"
)

func main() {
	pretty := flag.Bool("pretty", false, "indent nested containers")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: beacon-cli [-pretty] [file]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Canonicalizes a JSON document through the SDK's value model.")
		fmt.Fprintln(os.Stderr, "Reads standard input when no file is given.")
		flag.PrintDefaults()
	}
	flag.Parse()

	input := os.Stdin
	if name := flag.Arg(0); name != "" {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "beacon-cli: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "beacon-cli: read input: %v\n", err)
		os.Exit(1)
	}

	v, err := value.ParseJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "beacon-cli: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(v.ToJSON(*pretty))
}
