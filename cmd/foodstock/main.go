// Package main is the foodstock command-line entry point.
package main

import (
	"context"
	"os"

	"github.com/abgdnv/foodstock/internal/food/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
