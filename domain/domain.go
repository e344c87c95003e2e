package domain

// StreamPortMetadataKey is the registry metadata key under which an instance publishes its streaming (gRPC) port as
// a decimal string. Absence or a malformed value is a resolution error, never a silent default.
const StreamPortMetadataKey = "rsocket-port"

// AccountRoute is the logical name of the account event stream route served over the streaming transport.
const AccountRoute = "account"

// Well-known service names registered by the bundled services.
const (
	AccountServiceName = "account-service"
	ProfileServiceName = "profile-service"
)
