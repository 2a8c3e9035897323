package main

import (
	"context"

	"github.com/joeatwork/coach/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
