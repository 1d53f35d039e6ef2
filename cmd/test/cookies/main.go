package main

import (
	"fmt"
	"log"
	"os"

	"go-glints-harvester/internal/browser"
)

func main() {
	fmt.Println("🍪 Testing cookie loading...")

	arg := ".cookies/cookies-glints.json"
	if len(os.Args) > 1 {
		arg = os.Args[1]
	}

	cookies, err := browser.LoadCookies(arg)
	if err != nil {
		log.Fatalf("Failed to load cookies: %v", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//Print first cookie as example
	if len(cookies) > 0 {
		c := cookies[0]
		fmt.Printf("\nExample cookie:\n")
		fmt.Printf("Name: %s\n", c.Name)
		fmt.Printf("Value: %s\n", c.Value)
		if c.Domain != nil {
			fmt.Printf("Domain: %s\n", *c.Domain)
		}
		if c.Secure != nil {
			fmt.Printf("Secure: %t\n", *c.Secure)
		}
	}
}
