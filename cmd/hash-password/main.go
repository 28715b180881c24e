package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Println("Usage: go run ./cmd/hash-password [-cost 10] <password>")
		os.Exit(1)
	}
	hash, err := utils.HashPassword(flag.Arg(0), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
