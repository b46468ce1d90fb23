// Command issue-token mints an EDITOR bearer token signed with
// EDITOR_JWT_SECRET for the protected write routes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/iliyamo/fyyur-booking/internal/config"
	"github.com/iliyamo/fyyur-booking/internal/utils"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "editor", "token subject")
	ttl := flag.Int("ttl", 0, "lifetime in minutes (default EDITOR_TOKEN_TTL_MIN)")
	flag.Parse()

	secret, minutes, err := config.LoadEditor()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if secret == "" {
		log.Fatal("EDITOR_JWT_SECRET is not set")
	}
	if *ttl > 0 {
		minutes = *ttl
	}

	tok, err := utils.NewAccessToken(secret, *subject, utils.RoleEditor, minutes)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Fprintln(os.Stdout, tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format("2006-01-02 15:04:05 MST"))
}
