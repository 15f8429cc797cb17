package constants

const (
	DEFAULT_OFFSET = 0
	// MAX_MINT_REQUEST_SIZE bounds the whole multipart body, the image limit is enforced separately
	MAX_MINT_REQUEST_SIZE = 16 << 20
	SERVICE_NAME          = "stegavault-api"
)
