package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/faluke/go-myweblog/internal/mockapi"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:8420", "listen address")
	secret := flag.String("secret", "", "override the fixture app secret (optional)")
	flag.Parse()

	logger := log.New(os.Stderr, "mwlmockd ", log.LstdFlags)

	fx := mockapi.DefaultFixtures()
	if *secret != "" {
		fx.AppSecret = *secret
	}

	server := mockapi.New(fx, logger)

	fmt.Printf("mock MyWebLog service on http://%s/api_mobile.php\n", *addr)
	fmt.Printf("  username:   %s\n", fx.Username)
	fmt.Printf("  password:   %s\n", fx.Password)
	fmt.Printf("  app secret: %s\n", fx.AppSecret)

	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Printf("serve: %v", err)
		return 1
	}
	return 0
}
