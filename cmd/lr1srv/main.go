/*
Lr1srv starts the LR(1) diagnostic HTTP server and begins listening for
requests.

Usage:

	lr1srv [flags]
	lr1srv [flags] -l [[ADDRESS]:PORT]

Once started, the server accepts POST /construct requests with a JSON body
of {"grammar_text": "..."} and responds with the constructed ACTION/GOTO
table, or a diagnostic error if the grammar is not LR(1). Every attempt is
recorded to a history log. POST /login with the configured operator password
returns a JWT that may be used to browse that log via GET /history.

By default the server listens on localhost:8080. This can be changed with
the --listen/-l flag or the LR1_LISTEN_ADDRESS environment variable.

If a JWT token secret is not given, one is generated and seeded from
crypto/rand. As a consequence, in this mode of operation all tokens are
rendered invalid as soon as the server shuts down. This is suitable for
testing, but must be given via either the CLI flag or the environment
variable if running in production.

The flags are:

	-v, --version
		Give the current version of the server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable LR1_LISTEN_ADDRESS, and if that is not given, will default
		to localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less
		than 32 bytes in the secret, it will be repeated until it is. The
		maximum size is 64 bytes. If not given, will default to the value of
		environment variable LR1_TOKEN_SECRET. If no secret is specified, a
		random secret will be automatically generated.

	-p, --admin-password PASSWORD
		Use the given password for the single operator login. If not given,
		will default to the value of environment variable
		LR1_ADMIN_PASSWORD, and if that is not given, will default to
		"password".

	--history PATH
		Use the given sqlite database file for the construction history log.
		If not given, will default to the value of environment variable
		LR1_HISTORY_DB, and if that is not given, will default to
		"lr1-history.db" in the current working directory.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/lr1/internal/lr1/diagserver"
	"github.com/dekarrin/lr1/internal/lr1/history"
	"github.com/dekarrin/lr1/internal/version"
	"github.com/spf13/pflag"
)

const (
	EnvListen   = "LR1_LISTEN_ADDRESS"
	EnvSecret   = "LR1_TOKEN_SECRET"
	EnvPassword = "LR1_ADMIN_PASSWORD"
	EnvHistory  = "LR1_HISTORY_DB"
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of the server and then exit.")
	flagListen   = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagPassword = pflag.StringP("admin-password", "p", "", "Use the given password for the operator login.")
	flagHistory  = pflag.String("history", "", "Use the given sqlite database file for the construction history log.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		addr = *flagListen
	}
	if addr == "" {
		addr = "localhost:8080"
	} else if strings.HasPrefix(addr, ":") {
		if _, err := strconv.Atoi(addr[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", addr[1:])
			os.Exit(1)
		}
	}

	historyPath := os.Getenv(EnvHistory)
	if pflag.Lookup("history").Changed {
		historyPath = *flagHistory
	}
	if historyPath == "" {
		historyPath = "lr1-history.db"
	}

	password := os.Getenv(EnvPassword)
	if pflag.Lookup("admin-password").Changed {
		password = *flagPassword
	}
	if password == "" {
		password = "password"
		log.Printf("WARN  Using default admin password; set -p or %s for production use", EnvPassword)
	}

	secret := loadSecret()

	hist, err := history.Open(historyPath)
	if err != nil {
		log.Fatalf("FATAL could not open history database: %s", err.Error())
	}
	defer hist.Close()

	srv, err := diagserver.New(secret, password, hist)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG Server initialized")

	log.Printf("INFO  Starting LR(1) diagnostic server %s on %s...", version.Current, addr)
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

func loadSecret() []byte {
	secretStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		secretStr = *flagSecret
	}

	if secretStr == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("FATAL could not generate token secret: %s", err.Error())
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return secret
	}

	secret := []byte(secretStr)
	for len(secret) < 32 {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}
	if len(secret) > 64 {
		secret = secret[:64]
	}
	return secret
}
