// internal/service/lookup/search.go
package lookup

import (
	"strings"

	"customer-lookup-service/internal/domain/customer"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxSuggestions caps the candidate list shown while typing.
const MaxSuggestions = 5

// Suggest returns up to MaxSuggestions customers, one per phone, in the order
// they first match in records. Phones match the trimmed query as a
// case-sensitive substring; names match it case-insensitively.
func Suggest(records []customer.CustomerRecord, query string) []customer.Suggestion {
	phoneQuery := strings.TrimSpace(query)
	if phoneQuery == "" {
		return []customer.Suggestion{}
	}
	lower := cases.Lower(language.Und)
	nameQuery := lower.String(phoneQuery)

	seen := make(map[string]struct{}, MaxSuggestions)
	out := make([]customer.Suggestion, 0, MaxSuggestions)
	for _, rec := range records {
		if _, dup := seen[rec.Phone]; dup {
			continue
		}
		if !strings.Contains(rec.Phone, phoneQuery) && !strings.Contains(lower.String(rec.RecipientName), nameQuery) {
			continue
		}
		seen[rec.Phone] = struct{}{}
		out = append(out, customer.Suggestion{
			Phone:         rec.Phone,
			RecipientName: rec.RecipientName,
			RecordID:      rec.ID,
		})
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
