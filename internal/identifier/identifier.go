package identifier

import (
	"regexp"
	"strings"
)

// Type is a billable identifier category. The same string keys the
// action_costs table and the access_ledger parameter_type column.
type Type string

const (
	TypeName     Type = "NAME"
	TypePhone    Type = "PHONE"
	TypeEmail    Type = "EMAIL"
	TypeFacebook Type = "FACEBOOK"
)

// Candidate is a normalized identifier extracted from a search
// request. Raw keeps the value as the user typed it.
type Candidate struct {
	Type  Type   `json:"type"`
	Value string `json:"value"`
	Raw   string `json:"raw"`
}

// Key returns the (type, value) tuple used for dedup matching.
func (c Candidate) Key() string {
	return string(c.Type) + ":" + c.Value
}

// SearchInput is the heterogeneous search request the gate receives.
type SearchInput struct {
	Name          string   `json:"name"`
	Phones        []string `json:"phones"`
	Emails        []string `json:"emails"`
	FacebookLinks []string `json:"facebook_links"`
}

var (
	nonDigits = regexp.MustCompile(`\D`)

	// Ordered URL shapes for facebook links. First match wins.
	fbPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)facebook\.com/profile\.php\?id=(\d+)`),
		regexp.MustCompile(`(?i)facebook\.com/([A-Za-z0-9.\-_]+)`),
		regexp.MustCompile(`(?i)fb\.com/([A-Za-z0-9.\-_]+)`),
		regexp.MustCompile(`(?i)fb\.me/([A-Za-z0-9.\-_]+)`),
	}
)

// Normalize extracts candidates in a stable order: name, phones,
// emails, facebook links, each in input order. Values repeated within
// one request are kept; billed-once semantics are enforced by the
// dedup ledger, not here.
func Normalize(input SearchInput, countryCode string) []Candidate {
	candidates := make([]Candidate, 0, 1+len(input.Phones)+len(input.Emails)+len(input.FacebookLinks))

	if name := strings.TrimSpace(input.Name); name != "" {
		// Real name normalization belongs to the identity-matching
		// service; the trimmed value is forwarded as-is.
		candidates = append(candidates, Candidate{Type: TypeName, Value: name, Raw: input.Name})
	}

	for _, raw := range input.Phones {
		if v := NormalizePhone(raw, countryCode); v != "" {
			candidates = append(candidates, Candidate{Type: TypePhone, Value: v, Raw: raw})
		}
	}

	for _, raw := range input.Emails {
		if v := NormalizeEmail(raw); v != "" {
			candidates = append(candidates, Candidate{Type: TypeEmail, Value: v, Raw: raw})
		}
	}

	for _, raw := range input.FacebookLinks {
		if v := NormalizeFacebook(raw); v != "" {
			candidates = append(candidates, Candidate{Type: TypeFacebook, Value: v, Raw: raw})
		}
	}

	return candidates
}

// NormalizePhone strips everything that is not a digit, drops leading
// zeros and forces the country code prefix. Returns "" when nothing
// usable remains; the caller drops such inputs silently.
func NormalizePhone(raw, countryCode string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, countryCode) {
		return digits
	}
	return countryCode + digits
}

// NormalizeEmail lowercases and trims. Malformed addresses pass
// through unchanged; validity is the search service's concern.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeFacebook extracts a profile id or username from known URL
// shapes, falling back to the trimmed raw string when none match.
func NormalizeFacebook(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	for _, p := range fbPatterns {
		if m := p.FindStringSubmatch(trimmed); m != nil {
			handle := strings.TrimRight(m[1], "/")
			if isReservedFacebookPath(handle) {
				continue
			}
			return strings.ToLower(handle)
		}
	}
	return trimmed
}

// Path segments that appear where a username would but never identify
// a profile.
func isReservedFacebookPath(segment string) bool {
	switch strings.ToLower(segment) {
	case "profile.php", "pages", "groups", "events", "sharer.php", "share.php":
		return true
	}
	return false
}
