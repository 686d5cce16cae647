// Package main provides the entry point for Watchdog, which watches one path
// and raises a desktop notification for every change to it.
package main

import (
	"os"

	"github.com/listenupapp/watchdog/internal/app"
)

func main() {
	os.Exit(app.Main(os.Args[1:], app.Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
		Exit:   os.Exit,
	}))
}
