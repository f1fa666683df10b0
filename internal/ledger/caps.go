// internal/ledger/caps.go
package ledger

import (
	"os"
	"strconv"
	"strings"
)

const defaultMaxAccounts = 65536

// Soft limits, overridable by environment for stress setups. Invalid or
// missing values fall back to the defaults.

func maxAccounts() int {
	return envCap("VEILPAY_MAX_ACCOUNTS", defaultMaxAccounts)
}

func envCap(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
