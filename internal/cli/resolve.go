package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/service"
)

const fullIDLength = 36

// resolveRecordID accepts a full record UUID or the short prefix printed by
// "record list". A prefix must match exactly one record.
func resolveRecordID(ctx context.Context, a *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", domain.NewValidationError("record ID is required")
	}
	if len(input) >= fullIDLength {
		return input, nil
	}

	records, err := a.Shop.Records.List(ctx, service.RecordQuery{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, r := range records {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", domain.NewNotFoundError("record %s not found", input)
	case 1:
		return matches[0], nil
	default:
		return "", domain.NewValidationError("record prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
