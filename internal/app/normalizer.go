package app

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"parcel_research/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Canonical names lead every chain so normalizing an already-normalized
// payload reproduces the same record.
var parcelAliases = map[string][]string{
	"owner": {"owner", "owner.fullName", "owner_details.owner_name", "ownerName", "owner_name"},
	"mailing_address": {
		"mailing_address",
		"owner.mailingAddress.formattedAddress",
		"owner.mailing_address",
		"owner_details.mailing_address",
		"mailingAddress.formattedAddress",
		"mailingAddress",
		"formattedAddress",
	},
	"apn":        {"apn", "assessorID", "parcel_number", "parcelNumber", "ids.apn", "apn_info.apn"},
	"size_text":  {"parcel_size", "legal.parcel_size", "lot.size_text"},
	"size_sqft":  {"lotSize", "lot_size_sqft", "lot.lotSizeSquareFeet"},
	"size_acres": {"lotSizeAcres", "lot.lotSizeAcres"},
	"legal_description": {
		"legal_description", "legalDescription",
		"legal.legalDescription", "legal.legal_description", "legal_desc",
	},
	"valuation_text": {"valuation"},
	"valuation_amount": {
		"assessment.totalMarketValue", "valuation.total_value",
		"total_value", "totalMarketValue", "marketValue",
	},
	"sale_date":  {"sale_date", "lastSaleDate", "last_sale_date", "saleDate"},
	"sale_price": {"sale_price", "lastSalePrice", "last_sale_price", "salePrice"},
	"zoning":     {"zoning", "zoning_code", "zoningCode", "lot.zoningCode", "legal.zoning"},
}

// sourceBase is the fixed provenance base path. The URL is derived from the
// lookup identifier alone, never from the response.
const sourceBase = "https://app.rentcast.io/app/properties"

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias chain.
func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, p := range parcelAliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
// A string that does not parse as a number counts as absent, never an error.
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
			s = strings.TrimPrefix(s, "$")
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

func firstFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

var currency = message.NewPrinter(language.English)

// formatCurrency renders an amount with thousands separators ("$2,500,000").
func formatCurrency(n int64) string {
	return currency.Sprintf("$%d", n)
}

func fallback(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

/********** normalizer **********/

// Normalize maps a raw provider payload into a ParcelRecord. It is total:
// malformed or partial payloads yield placeholder values, never an error.
func Normalize(raw map[string]any, identifier string, kind domain.InputKind) domain.ParcelRecord {
	sp := firstInt64Flexible(raw, parcelAliases["sale_price"]...)

	var sd *string
	if s := firstNonEmptyAlias(raw, "sale_date"); s != "" {
		sd = &s
	}

	return domain.ParcelRecord{
		Owner:            fallback(extractOwner(raw), domain.PlaceholderUnknown),
		MailingAddress:   fallback(firstNonEmptyAlias(raw, "mailing_address"), domain.PlaceholderUnknown),
		APN:              extractAPN(raw, identifier, kind),
		ParcelSize:       fallback(extractParcelSize(raw), domain.PlaceholderUnknown),
		LegalDescription: fallback(firstNonEmptyAlias(raw, "legal_description"), domain.PlaceholderNotAvailable),
		Valuation:        fallback(extractValuation(raw), domain.PlaceholderNotAvailable),
		SaleDate:         sd,
		SalePrice:        sp,
		Zoning:           fallback(firstNonEmptyAlias(raw, "zoning"), domain.PlaceholderNotSpecified),
		SourceURL:        SourceURL(identifier),
	}
}

// SourceURL builds the provenance link for a lookup identifier.
func SourceURL(identifier string) string {
	return sourceBase + "?lookup=" + url.QueryEscape(identifier)
}

// extractOwner handles the three owner shapes seen in provider payloads:
// a plain string, an object with a "names" list, or an object with fullName.
func extractOwner(raw map[string]any) string {
	if names, ok := lookupAny(raw, "owner.names").([]any); ok {
		parts := make([]string, 0, len(names))
		for _, n := range names {
			if s, ok := n.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return firstNonEmptyAlias(raw, "owner")
}

// extractAPN prefers the response, then echoes the input when the lookup key
// was an APN. The field is always populated.
func extractAPN(raw map[string]any, identifier string, kind domain.InputKind) string {
	if s := firstNonEmptyAlias(raw, "apn"); s != "" {
		return s
	}
	if kind == domain.InputAPN && strings.TrimSpace(identifier) != "" {
		return strings.TrimSpace(identifier)
	}
	return domain.PlaceholderUnknown
}

func extractParcelSize(raw map[string]any) string {
	// already human-readable
	if s := firstNonEmptyAlias(raw, "size_text"); s != "" {
		return s
	}
	if f := firstFloatFlexible(raw, parcelAliases["size_acres"]...); f != nil {
		return strconv.FormatFloat(*f, 'f', 2, 64) + " acres"
	}
	if f := firstFloatFlexible(raw, parcelAliases["size_sqft"]...); f != nil {
		return strconv.FormatFloat(*f, 'f', -1, 64) + " sqft"
	}
	return ""
}

// extractValuation keeps an already-formatted string as-is, otherwise formats
// the best numeric source. Assessment histories keyed by year use the latest
// year's value.
func extractValuation(raw map[string]any) string {
	if s := firstNonEmptyAlias(raw, "valuation_text"); s != "" {
		return s
	}
	if v := latestAssessmentValue(raw); v != nil {
		return formatCurrency(*v)
	}
	if v := firstInt64Flexible(raw, parcelAliases["valuation_amount"]...); v != nil {
		return formatCurrency(*v)
	}
	return ""
}

func latestAssessmentValue(raw map[string]any) *int64 {
	assessments, ok := lookupAny(raw, "taxAssessments").(map[string]any)
	if !ok || len(assessments) == 0 {
		return nil
	}
	years := make([]string, 0, len(assessments))
	for y := range assessments {
		years = append(years, y)
	}
	sort.Strings(years)
	for i := len(years) - 1; i >= 0; i-- {
		if entry, ok := assessments[years[i]].(map[string]any); ok {
			if v := firstInt64Flexible(entry, "value"); v != nil {
				return v
			}
		}
	}
	return nil
}
