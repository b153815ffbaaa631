package main

import (
	"github.com/relove-market/storefront/cmd"
)

func main() {
	cmd.Start()
}
