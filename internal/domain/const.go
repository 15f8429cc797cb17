package domain

const (
	// Verification reasons
	REASON_VERIFIED                = "ownership verified"
	REASON_CLAIMED_OWNER_MISMATCH  = "claimed owner does not match database record"
	REASON_EMBEDDED_MISSING        = "embedded data missing or invalid"
	REASON_EMBEDDED_OWNER_MISMATCH = "embedded owner does not match database record"
	REASON_EMBEDDED_ASSET_MISMATCH = "embedded asset id does not match requested asset"

	// Pagination
	DEFAULT_PAGE_LIMIT = 20
	MAX_PAGE_LIMIT     = 100
)
