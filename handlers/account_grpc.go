package handlers

import (
	"reactivemesh/helpers"
	"reactivemesh/interfaces"
	"reactivemesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// AccountStreamServer serves the "account" streaming route from a local EventProducer: one StringValue per event,
// forwarded as soon as the producer emits it.
type AccountStreamServer struct {
	producer interfaces.EventProducer
	logger   log.Logger
}

var _ service.AccountStreamServer = (*AccountStreamServer)(nil)

// NewAccountStreamServer creates the gRPC account stream handler. Panics on nil producer/logger.
//
// Called from cmd/account main.
func NewAccountStreamServer(producer interfaces.EventProducer, logger log.Logger) *AccountStreamServer {
	return &AccountStreamServer{
		producer: helpers.NilPanic(producer, "handlers.account_grpc.go: producer is required"),
		logger:   log.With(helpers.NilPanic(logger, "handlers.account_grpc.go: logger is required"), "component", "AccountStreamServer"),
	}
}

// Account streams the events of one subscription for req's name until the producer ends or the caller cancels.
// A caller cancel ends the call without error; a producer failure is returned and mapped to a gRPC status by the
// stream interceptor.
func (s *AccountStreamServer) Account(req *wrapperspb.StringValue, stream service.AccountStreamSender) error {
	ctx := stream.Context()
	md, _ := metadata.FromIncomingContext(ctx)
	requestID, _ := helpers.GetHeaderValue(md, helpers.HeaderRequestID)
	logger := log.With(s.logger, "request_id", requestID, "name", req.GetValue())
	level.Info(logger).Log("msg", "account stream requested")

	sub, err := s.producer.Produce(helpers.ContextWithRequestID(ctx, requestID), req.GetValue())
	if err != nil {
		return err
	}
	defer sub.Cancel()

	for ev := range sub.Events() {
		if err := stream.Send(wrapperspb.String(ev.Payload)); err != nil {
			level.Debug(logger).Log("msg", "send failed", "err", err)
			return err
		}
	}
	if err := sub.Err(); err != nil {
		level.Error(logger).Log("msg", "account stream failed", "err", err)
		return err
	}
	level.Debug(logger).Log("msg", "account stream ended")
	return nil
}
