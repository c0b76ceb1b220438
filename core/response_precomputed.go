package core

import (
	"encoding/json"
	"net/http"
)

// Standard response codes
const (
	// oks
	CodeOkVerificationCodeSent = "ok_verification_code_sent"
	CodeOkCodeVerified         = "ok_code_verified"
	CodeOkSignout              = "ok_signout"
	CodeOkListingDeleted       = "ok_listing_deleted"
	CodeOkAccountDeleted       = "ok_account_deleted"

	// errors
	CodeErrorInvalidRequest        = "err_invalid_input"
	CodeErrorInvalidContentType    = "err_invalid_content_type"
	CodeErrorMissingFields         = "err_missing_fields"
	CodeErrorPasswordComplexity    = "err_password_complexity"
	CodeErrorUsernameLength        = "err_username_length"
	CodeErrorInvalidCredentials    = "err_invalid_credentials"
	CodeErrorRegisteredWithGoogle  = "err_registered_with_google"
	CodeErrorEmailConflict         = "err_email_conflict"
	CodeErrorUsernameConflict      = "err_username_conflict"
	CodeErrorInvalidOrExpiredCode  = "err_invalid_or_expired_code"
	CodeErrorEmailNotVerified      = "err_email_not_verified"
	CodeErrorNotFound              = "err_not_found"
	CodeErrorForbidden             = "err_forbidden"
	CodeErrorNoAuthCookie          = "err_no_auth_cookie"
	CodeErrorJwtTokenExpired       = "err_token_expired"
	CodeErrorJwtInvalidToken       = "err_invalid_token"
	CodeErrorTokenGeneration       = "err_token_generation"
	CodeErrorAuthDatabaseError     = "err_auth_database_error"
	CodeErrorListingDatabaseError  = "err_listing_database_error"
	CodeErrorMailDelivery          = "err_mail_delivery"
	CodeErrorServiceUnavailable    = "err_service_unavailable"
	CodeErrorIpBlocked             = "err_ip_blocked"
	CodeErrorInvalidOAuth2Provider = "err_invalid_oauth2_provider"
	CodeErrorOAuth2Exchange        = "err_oauth2_token_exchange_failed"
	CodeErrorOAuth2UserInfo        = "err_oauth2_user_info_failed"
)

// precomputeBasicResponse runs during initialization, before main(), and
// stores the fully marshalled JSON body in the response variable. It avoids
// repeated JSON marshalling during request handling; writeJsonError and
// writeJsonOk then simply copy the precomputed bytes to the writer.
func precomputeBasicResponse(status int, code, message string) jsonResponse {
	basic := JsonBasic{
		Status:  status,
		Code:    code,
		Message: message,
	}
	body, _ := json.Marshal(basic)
	return jsonResponse{status: status, body: body}
}

// Precomputed error and ok responses with status codes
var (
	// errors
	errorInvalidRequest        = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidRequest, "The request contains invalid data")
	errorInvalidContentType    = precomputeBasicResponse(http.StatusUnsupportedMediaType, CodeErrorInvalidContentType, "Unsupported media type")
	errorMissingFields         = precomputeBasicResponse(http.StatusBadRequest, CodeErrorMissingFields, "Required fields are missing")
	errorPasswordComplexity    = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordComplexity, "Password must be at least 8 characters and contain a letter, a digit and a special character")
	errorUsernameLength        = precomputeBasicResponse(http.StatusBadRequest, CodeErrorUsernameLength, "Username must be at least 3 characters")
	errorInvalidCredentials    = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidCredentials, "Invalid credentials provided")
	errorRegisteredWithGoogle  = precomputeBasicResponse(http.StatusConflict, CodeErrorRegisteredWithGoogle, "This account was registered with Google. Please sign in with Google")
	errorEmailConflict         = precomputeBasicResponse(http.StatusConflict, CodeErrorEmailConflict, "Email address is already registered")
	errorUsernameConflict      = precomputeBasicResponse(http.StatusConflict, CodeErrorUsernameConflict, "Username is already taken")
	errorInvalidOrExpiredCode  = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidOrExpiredCode, "Verification code is invalid or has expired")
	errorEmailNotVerified      = precomputeBasicResponse(http.StatusForbidden, CodeErrorEmailNotVerified, "Email address has not been verified")
	errorNotFound              = precomputeBasicResponse(http.StatusNotFound, CodeErrorNotFound, "Requested resource not found")
	errorForbidden             = precomputeBasicResponse(http.StatusForbidden, CodeErrorForbidden, "You can only manage your own listings")
	errorNoAuthCookie          = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorNoAuthCookie, "Authentication cookie is required")
	errorJwtTokenExpired       = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtTokenExpired, "Authentication token has expired")
	errorJwtInvalidToken       = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidToken, "Invalid authentication token")
	errorTokenGeneration       = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorTokenGeneration, "Failed to generate authentication token")
	errorAuthDatabaseError     = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorAuthDatabaseError, "Database error during authentication")
	errorListingDatabaseError  = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorListingDatabaseError, "Database error while accessing listings")
	errorMailDelivery          = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorMailDelivery, "Failed to send verification email. Please try again")
	errorServiceUnavailable    = precomputeBasicResponse(http.StatusServiceUnavailable, CodeErrorServiceUnavailable, "Service is temporarily unavailable")
	errorIpBlocked             = precomputeBasicResponse(http.StatusTooManyRequests, CodeErrorIpBlocked, "IP address has been blocked due to excessive requests. Please try again later")
	errorInvalidOAuth2Provider = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidOAuth2Provider, "Invalid OAuth2 provider specified")
	errorOAuth2Exchange        = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2Exchange, "Failed to exchange OAuth2 token")
	errorOAuth2UserInfo        = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2UserInfo, "Failed to get user info from OAuth2 provider")

	// oks
	okVerificationCodeSent = precomputeBasicResponse(http.StatusAccepted, CodeOkVerificationCodeSent, "Verification code sent. Check your mailbox")
	okCodeVerified         = precomputeBasicResponse(http.StatusOK, CodeOkCodeVerified, "Email verified successfully")
	okSignout              = precomputeBasicResponse(http.StatusOK, CodeOkSignout, "Signed out successfully")
	okListingDeleted       = precomputeBasicResponse(http.StatusOK, CodeOkListingDeleted, "Listing deleted successfully")
	okAccountDeleted       = precomputeBasicResponse(http.StatusOK, CodeOkAccountDeleted, "Account successfully deleted")
)

// For successful precomputed responses
func writeJsonOk(w http.ResponseWriter, resp jsonResponse) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}

// writeJsonError writes a precomputed JSON error response
func writeJsonError(w http.ResponseWriter, resp jsonResponse) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}
