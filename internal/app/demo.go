package app

import "parcel_research/internal/domain"

// SampleAPNs are the identifiers published for demo use.
var SampleAPNs = []string{
	"123-45-678",
	"456-78-901",
	"789-01-234",
	"321-54-876",
	"654-87-210",
}

// DemoPayload is the fixed raw payload served in demo mode. It deliberately
// mimics the provider's wire shape and is routed through the same Normalize
// path as live responses, so demo data gets no special casing downstream.
func DemoPayload(identifier string, kind domain.InputKind) map[string]any {
	apn := "205-03-224"
	if kind == domain.InputAPN {
		apn = identifier
	}
	return map[string]any{
		"assessorID": apn,
		"owner": map[string]any{
			"names": []any{"DEMO PROPERTY LLC"},
			"mailingAddress": map[string]any{
				"formattedAddress": "1234 DEMO STREET, PHOENIX, AZ 85001",
			},
		},
		"formattedAddress": "1234 DEMO STREET, PHOENIX, AZ 85001",
		"legal": map[string]any{
			"legalDescription": "LOT 1, BLOCK 2, DEMO SUBDIVISION, MARICOPA COUNTY, ARIZONA",
			"zoning":           "C-2 (Commercial)",
		},
		"lotSizeAcres": 2.5,
		"taxAssessments": map[string]any{
			"2023": map[string]any{"value": 2400000.0},
			"2024": map[string]any{"value": 2500000.0},
		},
		"lastSaleDate":  "2023-06-15",
		"lastSalePrice": 2400000.0,
	}
}
