package assetrpc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danielpatrickdp/hairfallback/internal/assetstore"
)

// DefaultTimeout bounds each asset RPC.
const DefaultTimeout = 5 * time.Second

// #region client-struct
// Client is an assetstore.Store backed by a remote asset service.
type Client struct {
	conn    *grpc.ClientConn
	client  AssetServiceClient
	health  healthpb.HealthClient
	Timeout time.Duration
}

// #endregion client-struct

// #region constructor
// Dial connects to the asset service at addr.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:    conn,
		client:  NewAssetServiceClient(conn),
		health:  healthpb.NewHealthClient(conn),
		Timeout: DefaultTimeout,
	}, nil
}

// NewClientWithService creates a Client with an injected service implementation.
// Used for testing without a real gRPC connection.
func NewClientWithService(svc AssetServiceClient) *Client {
	return &Client{client: svc, Timeout: DefaultTimeout}
}

// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion constructor

// #region store
// Exists asks the remote store. RPC failures are logged and count as absent.
func (c *Client) Exists(ctx context.Context, path string) bool {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Exists(ctx, wrapperspb.String(path))
	if err != nil {
		log.Printf("asset exists rpc %s: %v", path, err)
		return false
	}
	return resp.GetValue()
}

// LoadImage fetches and decodes a remote image.
func (c *Client) LoadImage(ctx context.Context, path string) (image.Image, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Load(ctx, wrapperspb.String(path))
	if err != nil {
		return nil, fmt.Errorf("%w: load rpc %s: %v", assetstore.ErrAssetUnavailable, path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(resp.GetValue()))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", assetstore.ErrAssetUnavailable, path, err)
	}
	return img, nil
}

// #endregion store

// #region health
// Check queries the standard gRPC health service for the asset service.
func (c *Client) Check(ctx context.Context) error {
	if c.health == nil {
		return nil
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("asset service status %s", resp.GetStatus())
	}
	return nil
}

// #endregion health

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}
