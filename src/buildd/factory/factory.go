// Package factory builds test fixtures shared across packages.
package factory

import (
	"encoding/json"

	"github.com/gofrs/uuid"
	"github.com/uber/buildd/src/buildd/api"
	"go.lsp.dev/jsonrpc2"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// ClientContext is a factory for a context that passes admission, rooted at workingDir.
func ClientContext(workingDir string, argv ...string) *api.ClientContext {
	return &api.ClientContext{
		WorkingDir:    workingDir,
		TraceID:       UUID().String(),
		SanitizedArgv: argv,
	}
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(id int32, method string, params interface{}) jsonrpc2.Message {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(id), method, params)
	return req
}

// JSONRPCNotification is a user-defined factory for a JSON-RPC notification.
func JSONRPCNotification(method string, params interface{}) jsonrpc2.Message {
	n, _ := jsonrpc2.NewNotification(method, params)
	return n
}

// LspFrame wraps an editor message as one frame of the interactive stream.
func LspFrame(msg jsonrpc2.Message) *api.StreamingRequest {
	raw, _ := json.Marshal(msg)
	return &api.StreamingRequest{Frame: &api.LspRequest{LspJSON: string(raw)}}
}

// ContextFrame wraps cc as the opening frame of the interactive stream.
func ContextFrame(cc *api.ClientContext) *api.StreamingRequest {
	return &api.StreamingRequest{Frame: cc}
}
