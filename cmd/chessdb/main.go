package main

import (
	"github.com/chessdb/chessdb/internal/cli"
)

func main() {
	cli.Execute()
}
