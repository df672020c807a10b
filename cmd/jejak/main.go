package main

import (
	"context"

	"github.com/faizmokh/jejak/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
