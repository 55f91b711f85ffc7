package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Scratch helper: prints a bcrypt hash for seeding the first admin row.
func main() {
	password := "changeme"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Println("FAIL:", err)
		return
	}
	fmt.Println(string(hash))
}
