package handlers

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces/mock"
	"reactivemesh/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// newAccountGRPC serves producer on a real gRPC server with the error interceptor, the way cmd/account does, and
// returns a client connection to it.
func newAccountGRPC(t *testing.T, producer *mock.EventProducerMock) *grpc.ClientConn {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := grpc.NewServer(grpc.ChainStreamInterceptor(service.ErrorToGRPCStreamInterceptor(log.NewNopLogger())))
	service.RegisterAccountStreamServer(s, NewAccountStreamServer(producer, log.NewNopLogger()))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func recvAll(t *testing.T, stream grpc.ClientStream) ([]string, error) {
	t.Helper()
	var out []string
	for {
		msg := new(wrapperspb.StringValue)
		if err := stream.RecvMsg(msg); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, err
		}
		out = append(out, msg.GetValue())
	}
}

func TestNewAccountStreamServer_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "handlers.account_grpc.go: producer is required", func() {
		NewAccountStreamServer(nil, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "handlers.account_grpc.go: logger is required", func() {
		NewAccountStreamServer(&mock.EventProducerMock{}, nil)
	})
}

func TestAccountStreamServer_ForwardsPayloads(t *testing.T) {
	producer := finiteProducer(nil, "0", "1", "2")
	conn := newAccountGRPC(t, producer)

	ctx := helpers.WithOutgoingRequestID(context.Background(), "req-42")
	stream, err := service.OpenAccountStream(ctx, conn, "Josh")
	require.NoError(t, err)
	got, err := recvAll(t, stream)
	require.NoError(t, err)
	assert.Equal(t, []string{"Josh:0", "Josh:1", "Josh:2"}, got)

	require.Len(t, producer.ProduceCalls(), 1)
	assert.Equal(t, "Josh", producer.ProduceCalls()[0].Parameter)
	assert.Equal(t, "req-42", helpers.RequestIDFromContext(producer.ProduceCalls()[0].Ctx))
}

func TestAccountStreamServer_Errors(t *testing.T) {
	tests := []struct {
		name       string
		producer   *mock.EventProducerMock
		wantCode   codes.Code
		wantPrefix []string
	}{
		{
			name: "produce_bad_parameter_is_invalid_argument",
			producer: &mock.EventProducerMock{
				ProduceFunc: func(ctx context.Context, parameter string) (*domain.Stream, error) {
					return nil, service.NewBadParameterError("name is required", nil)
				},
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name:       "stream_failure_after_events_is_unavailable",
			producer:   finiteProducer(service.NewStreamTerminatedError(domain.AccountServiceName, assert.AnError), "a"),
			wantCode:   codes.Unavailable,
			wantPrefix: []string{"Paul:a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := newAccountGRPC(t, tt.producer)
			stream, err := service.OpenAccountStream(context.Background(), conn, "Paul")
			require.NoError(t, err)
			got, err := recvAll(t, stream)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, tt.wantPrefix, got)
		})
	}
}

func TestAccountStreamServer_ClientCancelStopsProducer(t *testing.T) {
	producerDone := make(chan struct{})
	producer := &mock.EventProducerMock{
		ProduceFunc: func(ctx context.Context, parameter string) (*domain.Stream, error) {
			return domain.StartStream(ctx, func(ctx context.Context, emit domain.EmitFunc) error {
				defer close(producerDone)
				for emit("tick", helpers.TestNow()) {
				}
				return nil
			}), nil
		},
	}
	conn := newAccountGRPC(t, producer)

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := service.OpenAccountStream(ctx, conn, "Stephan")
	require.NoError(t, err)
	msg := new(wrapperspb.StringValue)
	require.NoError(t, stream.RecvMsg(msg))
	assert.Equal(t, "tick", msg.GetValue())
	cancel()

	select {
	case <-producerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("producer was not cancelled")
	}
}
