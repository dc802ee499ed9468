package main

import (
	"fmt"
	"io"
	"os"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

func main() {
	Execute()
}

// fatal reports err in the same "idr: ..." form cobra errors take and exits with 1.
func fatal(msg string, err error) {
	fmt.Fprintf(stderr, "idr: %s: %v\n", msg, err)
	exit(1)
}
