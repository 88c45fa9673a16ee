package assetrpc

import (
	"bytes"
	"context"
	"errors"
	"image/png"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danielpatrickdp/hairfallback/internal/assetstore"
)

// #region descriptor
// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "hairfallback.assets.v1.AssetService"

const (
	existsMethod = "/" + ServiceName + "/Exists"
	loadMethod   = "/" + ServiceName + "/Load"
)

// AssetServiceClient is the client API for the asset service. Requests carry
// the asset path; Load responds with PNG-encoded image bytes.
type AssetServiceClient interface {
	Exists(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	Load(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type assetServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAssetServiceClient wraps a connection.
func NewAssetServiceClient(cc grpc.ClientConnInterface) AssetServiceClient {
	return &assetServiceClient{cc: cc}
}

func (c *assetServiceClient) Exists(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, existsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *assetServiceClient) Load(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, loadMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AssetServiceServer is the server API for the asset service.
type AssetServiceServer interface {
	Exists(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	Load(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
}

// ServiceDesc describes the asset service for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AssetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Exists", Handler: existsHandler},
		{MethodName: "Load", Handler: loadHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hairfallback/assets/v1/assets.proto",
}

func existsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssetServiceServer).Exists(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: existsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AssetServiceServer).Exists(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func loadHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssetServiceServer).Load(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: loadMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AssetServiceServer).Load(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// #endregion descriptor

// #region server
// StoreServer serves any assetstore.Store over gRPC.
type StoreServer struct {
	Store assetstore.Store
}

// Register attaches a StoreServer for store to s.
func Register(s grpc.ServiceRegistrar, store assetstore.Store) {
	s.RegisterService(&ServiceDesc, &StoreServer{Store: store})
}

// Exists reports whether the store has the requested path.
func (s *StoreServer) Exists(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.Store.Exists(ctx, in.GetValue())), nil
}

// Load returns the requested image re-encoded as PNG.
func (s *StoreServer) Load(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	img, err := s.Store.LoadImage(ctx, in.GetValue())
	if err != nil {
		if errors.Is(err, assetstore.ErrAssetUnavailable) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, status.Errorf(codes.Internal, "encode %s: %v", in.GetValue(), err)
	}
	return wrapperspb.Bytes(buf.Bytes()), nil
}

// #endregion server
