package utils

// Key prefixes for the Redis-backed stores. Each store also lives on its own DB.
const (
	AuthCachePrefix    = "auth:"
	OTPCachePrefix     = "otp:"
	BookingCachePrefix = "booking:"
)
