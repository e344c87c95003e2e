package interfaces

// HostnameProvider returns the local host's canonical name for the Gateway response header.
//
// Implemented by adapters.LocalHostname. Called from the Gateway header rule on every forwarded response.
//
//go:generate moq -stub -out mock/hostname_provider.go -pkg mock . HostnameProvider
type HostnameProvider interface {
	// Hostname returns (name, true), or ("", false) when the local name cannot be resolved.
	Hostname() (string, bool)
}
