package domain

// OutcomeKind tags a LookupOutcome. Exactly one kind is produced per lookup.
type OutcomeKind string

const (
	OutcomeFoundCanonical OutcomeKind = "found_canonical"
	OutcomeFoundCache     OutcomeKind = "found_cache"
	OutcomeFoundExternal  OutcomeKind = "found_external"
	OutcomeNotFound       OutcomeKind = "not_found"
	OutcomeInvalidBarcode OutcomeKind = "invalid_barcode"
)

// LookupOutcome is the result of one scanned-barcode lookup.
//
//	found_canonical  Food is set
//	found_cache      CacheRow is set, IsStale carries the staleness flag
//	found_external   Product and CacheRow are set, IsStale is false
//	not_found        Reason carries the provider's message
//	invalid_barcode  Reason carries the validation message, Barcode is empty
type LookupOutcome struct {
	Kind     OutcomeKind      `json:"status"`
	RawCode  string           `json:"raw_code"`
	Barcode  Barcode          `json:"barcode,omitempty"`
	Food     *CanonicalFood   `json:"food,omitempty"`
	CacheRow *CacheRow        `json:"cache_row,omitempty"`
	Product  *ExternalProduct `json:"product,omitempty"`
	IsStale  bool             `json:"is_stale"`
	Reason   string           `json:"reason,omitempty"`
}
