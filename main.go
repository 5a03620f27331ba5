package main

import (
	"log"
	"os"

	"github.com/ThurpatiNainesh/tinylink/cmd/api/app"
)

// main mirrors cmd/api so `go run .` works in CI containers.
func main() {
	if err := app.Run(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
