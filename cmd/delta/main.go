package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/scott-cotton/cli"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
			os.Exit(1)
		}
	}
	cli.MainContext(context.Background(), MainCommand())
}
