package api

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/uber/buildd/src/buildd/internal/codec"
	"google.golang.org/grpc"
)

// ServiceName is the gRPC service every command is served under.
const ServiceName = "buildd.DaemonApi"

// AuthTokenHeader is the metadata key carrying the daemon's auth token.
const AuthTokenHeader = "x-buildd-auth-token"

// DaemonAPIServer is implemented by the daemon's command dispatcher.
type DaemonAPIServer interface {
	// Unary serves the single-reply commands.
	Unary(ctx context.Context, req Request) (*CommandResult, error)
	// Streaming serves the commands that answer with a progress stream.
	Streaming(req Request, stream ProgressServer) error
	// Lsp serves the interactive stream whose first frame is the client context.
	Lsp(stream LspServer) error
}

// ProgressServer is the daemon's end of a progress stream.
type ProgressServer interface {
	Send(*CommandProgressForWrite) error
	Context() context.Context
}

// LspServer is the daemon's end of the interactive stream.
type LspServer interface {
	ProgressServer
	Recv() (*StreamingRequest, error)
}

// DaemonAPIServiceDesc describes the service. Method names are stable: they are the command kinds' names.
var DaemonAPIServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DaemonAPIServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod[KillRequest](),
		unaryMethod[StatusRequest](),
		unaryMethod[PingRequest](),
		unaryMethod[FlushDepFilesRequest](),
		unaryMethod[UnstableCrashRequest](),
		unaryMethod[SegfaultRequest](),
		unaryMethod[HeapDumpRequest](),
		unaryMethod[AllocatorStatsRequest](),
		unaryMethod[DiceDumpRequest](),
	},
	Streams: []grpc.StreamDesc{
		streamMethod[BuildRequest](),
		streamMethod[BxlRequest](),
		streamMethod[TestRequest](),
		streamMethod[TargetsRequest](),
		streamMethod[TargetsShowOutputsRequest](),
		streamMethod[AqueryRequest](),
		streamMethod[CqueryRequest](),
		streamMethod[UqueryRequest](),
		streamMethod[AuditRequest](),
		streamMethod[UnstableDocsRequest](),
		streamMethod[InstallRequest](),
		streamMethod[MaterializeRequest](),
		streamMethod[CleanStaleRequest](),
		streamMethod[ProfileRequest](),
		streamMethod[AllocativeRequest](),
		{
			StreamName:    KindLsp.String(),
			Handler:       lspHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "buildd/daemon_api",
}

// RegisterDaemonAPIServer registers srv on s.
func RegisterDaemonAPIServer(s grpc.ServiceRegistrar, srv DaemonAPIServer) {
	s.RegisterService(&DaemonAPIServiceDesc, srv)
}

// FullMethod returns the gRPC method path of a command.
func FullMethod(kind CommandKind) string {
	return "/" + ServiceName + "/" + kind.String()
}

func unaryMethod[R any, P interface {
	*R
	Request
}]() grpc.MethodDesc {
	kind := KindOf(P(new(R)))
	return grpc.MethodDesc{
		MethodName: kind.String(),
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := P(new(R))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return srv.(DaemonAPIServer).Unary(ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(kind),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return srv.(DaemonAPIServer).Unary(ctx, req.(Request))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func streamMethod[R any, P interface {
	*R
	Request
}]() grpc.StreamDesc {
	kind := KindOf(P(new(R)))
	return grpc.StreamDesc{
		StreamName: kind.String(),
		Handler: func(srv any, stream grpc.ServerStream) error {
			in := P(new(R))
			if err := stream.RecvMsg(in); err != nil {
				return err
			}
			return srv.(DaemonAPIServer).Streaming(in, &progressServer{stream})
		},
		ServerStreams: true,
	}
}

func lspHandler(srv any, stream grpc.ServerStream) error {
	return srv.(DaemonAPIServer).Lsp(&lspServer{progressServer{stream}})
}

type progressServer struct {
	grpc.ServerStream
}

func (s *progressServer) Send(m *CommandProgressForWrite) error {
	return s.ServerStream.SendMsg(m)
}

type lspServer struct {
	progressServer
}

func (s *lspServer) Recv() (*StreamingRequest, error) {
	m := new(StreamingRequest)
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Client calls the daemon.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client using cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}

// Invoke sends a unary command and returns its result.
func (c *Client) Invoke(ctx context.Context, req Request, opts ...grpc.CallOption) (*CommandResult, error) {
	kind := KindOf(req)
	if !kind.Unary() {
		return nil, fmt.Errorf("api: %s is not a unary command", kind)
	}
	out := new(CommandResult)
	if err := c.cc.Invoke(ctx, FullMethod(kind), req, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// Stream sends a streaming command and returns its progress stream.
func (c *Client) Stream(ctx context.Context, req Request, opts ...grpc.CallOption) (*ProgressClient, error) {
	kind := KindOf(req)
	if kind == KindUnknown || kind == KindLsp || kind.Unary() {
		return nil, fmt.Errorf("api: %s is not a streaming command", kind)
	}
	desc := &grpc.StreamDesc{StreamName: kind.String(), ServerStreams: true}
	s, err := c.cc.NewStream(ctx, desc, FullMethod(kind), callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	// io.EOF means the daemon already ended the stream; Recv reports its status.
	if err := s.SendMsg(req); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := s.CloseSend(); err != nil {
		return nil, err
	}
	return &ProgressClient{stream: s}, nil
}

// Lsp opens the interactive stream. The caller sends the context frame first.
func (c *Client) Lsp(ctx context.Context, opts ...grpc.CallOption) (*LspClient, error) {
	desc := &grpc.StreamDesc{StreamName: KindLsp.String(), ServerStreams: true, ClientStreams: true}
	s, err := c.cc.NewStream(ctx, desc, FullMethod(KindLsp), callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return &LspClient{ProgressClient{stream: s}}, nil
}

// ProgressClient is the client's end of a progress stream.
type ProgressClient struct {
	stream grpc.ClientStream
}

// Recv returns the next stream item.
func (p *ProgressClient) Recv() (*CommandProgress, error) {
	m := new(CommandProgress)
	if err := p.stream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Result reads until the terminal result, passing each event to onEvent.
func (p *ProgressClient) Result(onEvent func(*Event)) (*CommandResult, error) {
	for {
		item, err := p.Recv()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("api: stream ended without a result")
		}
		if err != nil {
			return nil, err
		}
		switch v := item.Progress.(type) {
		case *Event:
			if onEvent != nil {
				onEvent(v)
			}
		case *CommandResult:
			return v, nil
		}
	}
}

// LspClient is the client's end of the interactive stream.
type LspClient struct {
	ProgressClient
}

// Send sends one frame.
func (l *LspClient) Send(req *StreamingRequest) error {
	return l.stream.SendMsg(req)
}

// CloseSend half-closes the stream; the daemon then finishes the session.
func (l *LspClient) CloseSend() error {
	return l.stream.CloseSend()
}
