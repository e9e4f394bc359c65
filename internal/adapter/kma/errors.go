package kma

import "fmt"

// Result codes documented for the data.go.kr OpenAPI gateway. "00" is success;
// everything else surfaces as an *APIError.
const (
	codeOK              = "00"
	codeApplication     = "01" // APPLICATION_ERROR
	codeHTTP            = "04" // HTTP_ERROR
	codeServiceTimeout  = "05" // SERVICETIMEOUT_ERROR
	codeNoData          = "03" // NODATA_ERROR
	codeQuotaExceeded   = "22" // LIMITED_NUMBER_OF_SERVICE_REQUESTS_EXCEEDS
	codeKeyUnregistered = "30" // SERVICE_KEY_IS_NOT_REGISTERED_ERROR
	codeKeyExpired      = "31" // DEADLINE_HAS_EXPIRED_ERROR
)

// resultCodeNames maps gateway result codes to their documented identifiers.
var resultCodeNames = map[string]string{
	codeApplication:     "APPLICATION_ERROR",
	"02":                "DB_ERROR",
	codeNoData:          "NODATA_ERROR",
	codeHTTP:            "HTTP_ERROR",
	codeServiceTimeout:  "SERVICETIMEOUT_ERROR",
	"10":                "INVALID_REQUEST_PARAMETER_ERROR",
	"11":                "NO_MANDATORY_REQUEST_PARAMETERS_ERROR",
	"12":                "NO_OPENAPI_SERVICE_ERROR",
	"20":                "SERVICE_ACCESS_DENIED_ERROR",
	"21":                "TEMPORARILY_DISABLE_THE_SERVICEKEY_ERROR",
	codeQuotaExceeded:   "LIMITED_NUMBER_OF_SERVICE_REQUESTS_EXCEEDS_ERROR",
	codeKeyUnregistered: "SERVICE_KEY_IS_NOT_REGISTERED_ERROR",
	codeKeyExpired:      "DEADLINE_HAS_EXPIRED_ERROR",
	"32":                "UNREGISTERED_IP_ERROR",
	"33":                "UNSIGNED_CALL_ERROR",
	"99":                "UNKNOWN_ERROR",
}

// APIError is a non-success result code returned inside a 200 response.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if name, ok := resultCodeNames[e.Code]; ok {
		return fmt.Sprintf("kma api error %s (%s): %s", e.Code, name, e.Message)
	}
	return fmt.Sprintf("kma api error %s: %s", e.Code, e.Message)
}

// Retryable reports whether the upstream documents the code as transient
// ("retry later"): gateway HTTP errors and service timeouts.
func (e *APIError) Retryable() bool {
	return e.Code == codeHTTP || e.Code == codeServiceTimeout
}

// NoData reports whether the code means the query hit a gap (e.g. asking for
// a release that has not landed) rather than a failure.
func (e *APIError) NoData() bool {
	return e.Code == codeNoData
}
