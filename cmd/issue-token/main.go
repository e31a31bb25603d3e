// Command issue-token mints a terminal access token for local development and
// smoke tests. It only needs the POS_JWT_* settings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/sandwichpos/pos-backend/pkg/auth"
	"github.com/sandwichpos/pos-backend/pkg/config"
	"github.com/sandwichpos/pos-backend/pkg/enums"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "issue-token", Output: os.Stderr})
	ctx := context.Background()

	_ = godotenv.Load()

	cashier := flag.String("cashier", "", "cashier id (required)")
	terminal := flag.String("terminal", "", "terminal id (required)")
	role := flag.String("role", string(enums.StaffRoleCashier), "staff role: cashier|manager")
	jti := flag.String("jti", "", "token id; random when empty")
	flag.Parse()

	if *cashier == "" || *terminal == "" {
		logg.Error(ctx, "missing -cashier or -terminal", nil)
		flag.Usage()
		os.Exit(2)
	}

	staffRole, err := enums.ParseStaffRole(*role)
	if err != nil {
		logg.Error(ctx, "invalid -role", err)
		os.Exit(2)
	}

	var jwtCfg config.JWTConfig
	if err := envconfig.Process(config.EnvPrefix, &jwtCfg); err != nil {
		logg.Error(ctx, "load jwt config", err)
		os.Exit(1)
	}

	id := *jti
	if id == "" {
		id = uuid.NewString()
	}

	token, err := auth.MintAccessToken(jwtCfg, time.Now(), auth.AccessTokenPayload{
		CashierID:  *cashier,
		TerminalID: *terminal,
		Role:       staffRole,
		JTI:        id,
	})
	if err != nil {
		logg.Error(ctx, "mint token", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"cashier_id":  *cashier,
		"terminal_id": *terminal,
		"staff_role":  staffRole,
		"jti":         id,
	})
	logg.Info(ctx, "token.issued")
	fmt.Println(token)
}
