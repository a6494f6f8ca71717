package utils

import "fmt"

const (
	_ = iota
	CANNOT_FIND_RATES_IN_MONGODB
	CANNOT_UPSERT_RATE_IN_MONGODB
	CANNOT_FIND_ZONE_PRICE_IN_MONGODB
	CANNOT_LIST_ZONES_IN_MONGODB
	CANNOT_CALCULATE_INSURANCE
)

func SendInternalError(internalErrorCode int) string {
	return fmt.Sprintf("An internal server error occurred. Please try again later (Cod: %d)", internalErrorCode)
}
