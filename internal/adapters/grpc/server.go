package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/usecase"
)

const (
	ServiceName     = "finbridge.advisory.v1.AdvisoryService"
	GetAdviceMethod = "/" + ServiceName + "/GetAdvice"
)

// AdvisoryServer is the server API. Messages are google.protobuf.Struct
// values carrying the same JSON shape as the HTTP API.
type AdvisoryServer interface {
	GetAdvice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// Advisor is the slice of the use case the gRPC layer calls.
type Advisor interface {
	Advise(ctx context.Context, req domain.AdviceRequest) (*domain.AdviceResponse, error)
}

var advisoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdvisoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetAdvice", Handler: getAdviceHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "finbridge/advisory/v1/advisory.proto",
}

func getAdviceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdvisoryServer).GetAdvice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetAdviceMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AdvisoryServer).GetAdvice(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterAdvisoryServer registers the advisory service and reflection.
func RegisterAdvisoryServer(s *grpc.Server, svc Advisor, log zerolog.Logger) {
	s.RegisterService(&advisoryServiceDesc, &advisoryServer{svc: svc, log: log.With().Str("component", "grpc").Logger()})
	reflection.Register(s)
}

type advisoryServer struct {
	svc Advisor
	log zerolog.Logger
}

func (a *advisoryServer) GetAdvice(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	raw, err := protojson.Marshal(in)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encode request: %v", err)
	}
	var req domain.AdviceRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid advice request: %v", err)
	}

	resp, err := a.svc.Advise(ctx, req)
	if err != nil {
		if errors.Is(err, usecase.ErrStoreUnavailable) {
			return nil, status.Error(codes.Unavailable, err.Error())
		}
		a.log.Error().Err(err).Msg("advice failed")
		return nil, status.Error(codes.Internal, "Error generating advice")
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(body, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// AdvisoryClient calls the service from Go.
type AdvisoryClient struct {
	cc grpc.ClientConnInterface
}

func NewAdvisoryClient(cc grpc.ClientConnInterface) *AdvisoryClient {
	return &AdvisoryClient{cc: cc}
}

func (c *AdvisoryClient) GetAdvice(ctx context.Context, req domain.AdviceRequest, opts ...grpc.CallOption) (*domain.AdviceResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	in := &structpb.Struct{}
	if err := protojson.Unmarshal(body, in); err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetAdviceMethod, in, out, opts...); err != nil {
		return nil, err
	}

	raw, err := protojson.Marshal(out)
	if err != nil {
		return nil, err
	}
	var resp domain.AdviceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
