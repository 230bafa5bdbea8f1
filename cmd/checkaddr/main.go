// checkaddr checks addresses against eligibility lists from the command line.
package main

import "os"

var version = "dev" // is set during build process

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
