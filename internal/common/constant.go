package common

// AccessTokenHeaderName is the HTTP header used to carry the access token
// on outbound requests.
const AccessTokenHeaderName = "Authorization"

// AdminPasscodeHeaderName gates the license generation endpoint.
const AdminPasscodeHeaderName = "X-Admin-Passcode"

// UserIDPrefix is prepended to every generated account number.
const UserIDPrefix = "PS-"

// LicenseCodeLength is the exact length of a generated license code.
const LicenseCodeLength = 15
