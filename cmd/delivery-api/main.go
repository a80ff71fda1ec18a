package main

import (
	"fmt"
	"os"

	"github.com/Eddi3MS/delivery-bd/cmd/delivery-api/app"
)

func main() {
	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "delivery-api:", err)
		os.Exit(1)
	}
}
