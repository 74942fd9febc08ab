package main

import (
	"fmt"
	"os"
)

const (
	serviceName = "notification-service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\x1b[31;1m%s: %v\x1b[0m\n", serviceName, err)
		os.Exit(1)
	}
}
