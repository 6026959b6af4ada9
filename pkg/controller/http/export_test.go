package http

// Export internal functions for testing
var (
	VerifySlackSignature = verifySlackSignature
	ParsePage            = parsePage
	Idempotency          = idempotency
)

const MaxIdempotencyBodyBytes = maxIdempotencyBodyBytes

// Paginate exposes paginate for a string slice.
func Paginate(items []string, page, limit int) ([]string, Pagination) {
	return paginate(items, page, limit)
}
