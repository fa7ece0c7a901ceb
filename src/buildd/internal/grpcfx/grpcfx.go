// Package grpcfx runs the daemon's gRPC server inside the fx lifecycle.
package grpcfx

import (
	"context"
	"crypto/subtle"
	stderr "errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/internal/serverinfofile"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

const (
	_configKeyAddress = "grpc.address"
	_healthPrefix     = "/grpc.health.v1.Health/"
)

// Module is an fx module serving the daemon API over gRPC.
var Module = fx.Provide(New)

// Server accepts service registrations and reports the daemon's serving state through the
// standard health service.
type Server interface {
	grpc.ServiceRegistrar
	// SetServing flips the health status of the daemon API.
	SetServing(serving bool)
	// Addr is the bound listener address, "" before start.
	Addr() string
}

// Params define values to be used by the gRPC server.
type Params struct {
	fx.In

	Config         config.Provider
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	ServerInfoFile serverinfofile.ServerInfoFile
	TracerProvider trace.TracerProvider
	Identity       *entity.DaemonIdentity
}

type module struct {
	Address string `yaml:"address"`

	server         *grpc.Server
	health         *health.Server
	ln             net.Listener
	listen         func(address string) (net.Listener, error)
	served         chan struct{}
	logger         *zap.SugaredLogger
	serverInfoFile serverinfofile.ServerInfoFile
	identity       *entity.DaemonIdentity
}

// New creates the server. Services must be registered before the lifecycle starts.
func New(p Params) (Server, error) {
	if p.Lifecycle == nil || p.Config == nil || p.Identity == nil {
		return nil, stderr.New("required parameters are missing")
	}

	m := &module{
		logger:         p.Logger,
		serverInfoFile: p.ServerInfoFile,
		identity:       p.Identity,
		listen: func(address string) (net.Listener, error) {
			return net.Listen("tcp", address)
		},
	}
	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	m.server = NewGRPCServer(p.Identity.AuthToken, p.TracerProvider)
	m.health = health.NewServer()
	healthpb.RegisterHealthServer(m.server, m.health)
	m.SetServing(true)

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
		OnStop:  m.OnStop,
	})
	return m, nil
}

// NewGRPCServer creates a server that requires token on every call except health checks.
func NewGRPCServer(token string, tp trace.TracerProvider, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(UnaryAuthInterceptor(token)),
		grpc.ChainStreamInterceptor(StreamAuthInterceptor(token)),
		grpc.StatsHandler(otelgrpc.NewServerHandler(otelgrpc.WithTracerProvider(tp))),
	}, opts...)
	return grpc.NewServer(opts...)
}

// UnaryAuthInterceptor rejects unary calls that do not carry the daemon's auth token.
func UnaryAuthInterceptor(token string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := authorize(ctx, info.FullMethod, token); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamAuthInterceptor rejects streams that do not carry the daemon's auth token.
func StreamAuthInterceptor(token string) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := authorize(ss.Context(), info.FullMethod, token); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func authorize(ctx context.Context, method, token string) error {
	if strings.HasPrefix(method, _healthPrefix) {
		return nil
	}
	md, _ := metadata.FromIncomingContext(ctx)
	got := md.Get(api.AuthTokenHeader)
	if len(got) != 1 {
		return errors.Protocolf(codes.Unauthenticated, "missing %s", api.AuthTokenHeader)
	}
	if subtle.ConstantTimeCompare([]byte(got[0]), []byte(token)) != 1 {
		return errors.Protocolf(codes.Unauthenticated, "invalid auth token")
	}
	return nil
}

func (m *module) RegisterService(desc *grpc.ServiceDesc, impl any) {
	m.server.RegisterService(desc, impl)
}

func (m *module) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_SERVING
	if !serving {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.health.SetServingStatus("", status)
	m.health.SetServingStatus(api.ServiceName, status)
}

func (m *module) Addr() string {
	if m.ln == nil {
		return ""
	}
	return m.ln.Addr().String()
}

// OnStart binds the listener, publishes the endpoint and begins serving.
func (m *module) OnStart(ctx context.Context) error {
	ln, err := m.listen(m.Address)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", m.Address, err)
	}
	m.ln = ln
	m.identity.SetEndpoint(ln.Addr().String())

	if err := m.serverInfoFile.UpdateFields(map[string]string{
		serverinfofile.KeyPid:        strconv.Itoa(int(m.identity.Pid)),
		serverinfofile.KeyEndpoint:   m.identity.Endpoint(),
		serverinfofile.KeyAuthToken:  m.identity.AuthToken,
		serverinfofile.KeyVersion:    m.identity.Version,
		serverinfofile.KeyInstanceID: m.identity.InstanceID,
	}); err != nil {
		ln.Close()
		return err
	}

	m.served = make(chan struct{})
	go m.serve()
	m.logger.Infow("started gRPC inbound", "address", m.Addr())
	return nil
}

func (m *module) serve() {
	defer close(m.served)
	if err := m.server.Serve(m.ln); err != nil && !stderr.Is(err, grpc.ErrServerStopped) {
		m.logger.Errorw("gRPC server stopped", "error", err)
	}
}

// OnStop drains in-flight calls, or cuts them off when ctx expires first.
func (m *module) OnStop(ctx context.Context) error {
	m.health.Shutdown()
	if m.served == nil {
		return nil
	}

	stopped := make(chan struct{})
	go func() {
		m.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		m.logger.Warnw("graceful stop timed out, closing connections", "error", ctx.Err())
		m.server.Stop()
		<-stopped
	}
	<-m.served
	return nil
}

func (m *module) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyAddress)
	if err := val.Populate(&m.Address); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyAddress, err)
	}

	if m.Address == "" {
		return fmt.Errorf("missing field %q in config", _configKeyAddress)
	}
	return nil
}
