package service

import (
	"net"
	"testing"

	"reactivemesh/helpers"
	"reactivemesh/interfaces/mock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// newTestServer starts a gRPC server on 127.0.0.1:0 with the account stream service (when srv is non-nil) and
// returns its address and the server; the server is stopped on cleanup.
func newTestServer(t *testing.T, srv AccountStreamServer) (string, *grpc.Server) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := grpc.NewServer()
	if srv != nil {
		RegisterAccountStreamServer(s, srv)
	}
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(func() { s.Stop() })
	return lis.Addr().String(), s
}

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func splitAddr(t *testing.T, addr string) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := net.LookupPort("tcp", portStr)
	require.NoError(t, err)
	return host, port
}

func testConnFactory() ConnFactory {
	return NewGRPCConnFactory(grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func newTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func fixedTimeProvider() *mock.TimeProviderMock {
	return &mock.TimeProviderMock{NowFunc: helpers.TestNow}
}
