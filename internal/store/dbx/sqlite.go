package dbx

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// sqliteLower folds case by Unicode rules. SQLite's built-in LOWER only
// folds ASCII, so "École" would never match "école".
const sqliteLower = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteLower, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	}
	// NULL and numbers pass through, as with LOWER.
	return args[0], nil
}

// Lower wraps expr in the dialect's Unicode-aware lowercase function.
func (d Dialect) Lower(expr string) string {
	if d == SQLite {
		return sqliteLower + "(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}
