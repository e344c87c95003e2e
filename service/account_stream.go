package service

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// AccountStreamServiceName is the gRPC service of the account stream.
	AccountStreamServiceName = "reactivemesh.AccountStream"
	// AccountStreamMethod is the full method of the server-streaming "account" route: one StringValue (the name)
	// in, StringValue payloads out.
	AccountStreamMethod = "/" + AccountStreamServiceName + "/account"
)

// AccountStreamServer is implemented by the account service (handlers.AccountStreamServer).
type AccountStreamServer interface {
	Account(req *wrapperspb.StringValue, stream AccountStreamSender) error
}

// AccountStreamSender is the server side of one account route call.
type AccountStreamSender interface {
	Send(*wrapperspb.StringValue) error
	Context() context.Context
}

// AccountStreamServiceDesc describes the account stream service for grpc.Server.RegisterService and for
// ClientConn.NewStream.
var AccountStreamServiceDesc = grpc.ServiceDesc{
	ServiceName: AccountStreamServiceName,
	HandlerType: (*AccountStreamServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "account",
			Handler:       accountStreamHandler,
			ServerStreams: true,
		},
	},
	Metadata: "reactivemesh/account_stream",
}

// RegisterAccountStreamServer registers srv on s.
//
// Called from cmd/account main and stream tests.
func RegisterAccountStreamServer(s grpc.ServiceRegistrar, srv AccountStreamServer) {
	s.RegisterService(&AccountStreamServiceDesc, srv)
}

func accountStreamHandler(srv any, stream grpc.ServerStream) error {
	req := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(AccountStreamServer).Account(req, &accountStreamSender{stream})
}

type accountStreamSender struct {
	grpc.ServerStream
}

func (s *accountStreamSender) Send(m *wrapperspb.StringValue) error {
	return s.ServerStream.SendMsg(m)
}

// OpenAccountStream starts the account route on conn for name and half-closes the send side.
//
// Returns: the client stream to RecvMsg StringValue payloads from; the error of NewStream/SendMsg otherwise.
//
// Called from RemoteProducer.Produce and cmd/scenarios.
func OpenAccountStream(ctx context.Context, conn grpc.ClientConnInterface, name string) (grpc.ClientStream, error) {
	stream, err := conn.NewStream(ctx, &AccountStreamServiceDesc.Streams[0], AccountStreamMethod)
	if err != nil {
		return nil, err
	}
	// io.EOF means the server already ended the call; its status comes from RecvMsg.
	if err := stream.SendMsg(wrapperspb.String(name)); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return stream, nil
}
