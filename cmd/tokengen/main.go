// Package main issues bearer tokens for local ledger development. Tokens are
// signed with the key from the environment (or the dev default) and will not
// work against a server configured with a different JWT_SIGNING_KEY.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "carbonledger/internal/jwt_token"
	"carbonledger/internal/platform/config"
	"carbonledger/pkg/domain"
)

type tokenOutput struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	Subject   string `json:"subject"`
	ExpiresIn string `json:"expires_in"`
	Usage     string `json:"usage"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("tokengen", flag.ExitOnError)
	address := fs.String("address", cfg.Ledger.AdminAddress.String(), "Caller address the token is issued to (defaults to the admin)")
	ttl := fs.Duration("ttl", cfg.Server.TokenTTL, "Token time-to-live")
	asJSON := fs.Bool("json", false, "Output as JSON")
	fs.Usage = printUsage
	_ = fs.Parse(os.Args[1:]) //nolint:errcheck // ExitOnError

	if err := generate(cfg, *address, *ttl, *asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func generate(cfg config.Config, rawAddress string, ttl time.Duration, asJSON bool) error {
	addr, err := domain.ParseAddress(rawAddress)
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}
	svc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, ttl)
	token, err := svc.GenerateAccessToken(context.Background(), addr)
	if err != nil {
		return err
	}

	if !asJSON {
		fmt.Println(token)
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutput{
		Token:     token,
		Type:      "Bearer",
		Subject:   addr.String(),
		ExpiresIn: ttl.String(),
		Usage:     "Authorization: Bearer " + token,
	})
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `tokengen - issue a development bearer token for the carbon ledger API

Usage:
  tokengen [-address 0x...] [-ttl 1h] [-json]

The signing key and issuer come from JWT_SIGNING_KEY and JWT_ISSUER.

Examples:
  # Token for the bootstrapped admin
  tokengen

  # Token for a buyer, valid for an hour
  tokengen -address 0x00000000000000000000000000000000000000b0 -ttl 1h`)
}
