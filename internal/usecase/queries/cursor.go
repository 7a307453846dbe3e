package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

// Order ids only grow, so the last id seen is a stable keyset position.
func EncodeBeforeCursor(orderID int64) string {
	cursorData := fmt.Sprintf("%s:%d", CursorVersionV1, orderID)
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeBeforeCursor(cursor string) (int64, error) {
	if cursor == "" {
		return 0, fmt.Errorf("cursor cannot be empty")
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return 0, fmt.Errorf("unsupported cursor version")
	}

	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid order id: %d", id)
	}
	return id, nil
}

type Cursor struct {
	Before string `json:"before,omitempty"`
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
