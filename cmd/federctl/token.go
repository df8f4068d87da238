package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"feder/internal/platform/config"
	"feder/internal/platform/jwttoken"
	id "feder/pkg/domain"
)

var tokenFlags struct {
	operator string
	name     string
	ttl      time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an operator bearer token",
	RunE:  runToken,
}

func init() {
	f := tokenCmd.Flags()
	f.StringVar(&tokenFlags.operator, "operator", "", "Operator UUID (required)")
	f.StringVar(&tokenFlags.name, "name", "", "Operator display name")
	f.DurationVar(&tokenFlags.ttl, "ttl", 0, "Token lifetime (defaults to auth.token_ttl)")

	_ = tokenCmd.MarkFlagRequired("operator")
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	operatorID, err := id.ParseOperatorID(tokenFlags.operator)
	if err != nil {
		return err
	}
	ttl := tokenFlags.ttl
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}
	token, err := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer).
		GenerateOperatorToken(operatorID, tokenFlags.name, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
