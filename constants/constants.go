package constants

// Config
const VerboseEnvVar = "V"

// HTTP
const SessionTokenHeader = "X-Camly-Session-Token"

// Error messages
const ErrMsgInternal = "An internal error occurred. If the issue persists, please contact us."
const ErrMsgAuthFailed = "Authentication failed"
const ErrMsgNotAuthenticated = "Not logged in. You can use `camly login` to authenticate."

// Formatting
const TimeFormat = "2006-01-02 @ 03:04:05pm"

// Auth0
const Auth0Domain = "https://auth.camly.app"
const Auth0ClientID = "x1GmRbq0ZkTPA7cvOV3dMl5nYhW2sJfE"
