package domain

// Placeholder values substituted by normalization when the provider omits a
// field. String fields never reach consumers empty.
const (
	PlaceholderUnknown      = "Unknown"
	PlaceholderNotAvailable = "Not available"
	PlaceholderNotSpecified = "Not specified"
)

// ParcelRecord is the canonical normalized shape for a single commercial
// property. Built once per retrieval, immutable afterwards.
type ParcelRecord struct {
	Owner            string  `json:"owner"`
	MailingAddress   string  `json:"mailing_address"`
	APN              string  `json:"apn"`
	ParcelSize       string  `json:"parcel_size"`
	LegalDescription string  `json:"legal_description"`
	Valuation        string  `json:"valuation"`
	SaleDate         *string `json:"sale_date"`  // ISO date, nil when no recorded sale date
	SalePrice        *int64  `json:"sale_price"` // nil when absent or unparseable
	Zoning           string  `json:"zoning"`
	SourceURL        string  `json:"source_url"`
}

// FieldNames is the canonical field order for tabular exports and headers.
var FieldNames = []string{
	"owner",
	"mailing_address",
	"apn",
	"parcel_size",
	"legal_description",
	"valuation",
	"sale_date",
	"sale_price",
	"zoning",
	"source_url",
}

type InputKind string

const (
	InputAddress InputKind = "address"
	InputAPN     InputKind = "apn"
)

type Mode string

const (
	ModeLive Mode = "live"
	ModeDemo Mode = "demo"
)
