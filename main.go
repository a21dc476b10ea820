package main

import (
	"os"

	"github.com/usergate/usergate/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
