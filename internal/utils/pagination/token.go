package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeLogCursor creates an opaque token from the last row of a page.
func EncodeLogCursor(cursor domain.LogCursor) string {
	return EncodeMultiFieldToken(cursor.Timestamp.UTC().Format(timeFormat), strconv.FormatInt(cursor.ID, 10))
}

// DecodeLogCursor parses a token produced by EncodeLogCursor.
func DecodeLogCursor(token string) (domain.LogCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return domain.LogCursor{}, err
	}
	if len(parts) != 2 {
		return domain.LogCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	ts, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return domain.LogCursor{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return domain.LogCursor{}, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}
	return domain.LogCursor{Timestamp: ts, ID: id}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
