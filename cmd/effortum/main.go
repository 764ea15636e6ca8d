package main

import (
	"context"

	"github.com/effortum/effortum/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
