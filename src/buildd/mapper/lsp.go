package mapper

import (
	"encoding/json"
	"fmt"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// LspJSONToMessage decodes one JSON-RPC message received from the editor.
func LspJSONToMessage(raw string) (jsonrpc2.Message, error) {
	msg, err := jsonrpc2.DecodeMessage([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jsonrpc2.ErrParse, err)
	}
	return msg, nil
}

// MessageToLspJSON encodes a JSON-RPC message for the editor.
func MessageToLspJSON(msg jsonrpc2.Message) (string, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RequestToDidOpenTextDocumentParams maps the parameters from a jsonrpc2.Request into protocol.DidOpenTextDocumentParams.
func RequestToDidOpenTextDocumentParams(req jsonrpc2.Request) (*protocol.DidOpenTextDocumentParams, error) {
	return decodeParams[protocol.DidOpenTextDocumentParams](req)
}

// RequestToDidChangeTextDocumentParams maps the parameters from a jsonrpc2.Request into protocol.DidChangeTextDocumentParams.
func RequestToDidChangeTextDocumentParams(req jsonrpc2.Request) (*protocol.DidChangeTextDocumentParams, error) {
	return decodeParams[protocol.DidChangeTextDocumentParams](req)
}

// RequestToDidCloseTextDocumentParams maps the parameters from a jsonrpc2.Request into protocol.DidCloseTextDocumentParams.
func RequestToDidCloseTextDocumentParams(req jsonrpc2.Request) (*protocol.DidCloseTextDocumentParams, error) {
	return decodeParams[protocol.DidCloseTextDocumentParams](req)
}

// RequestToDefinitionParams maps the parameters from a jsonrpc2.Request into protocol.DefinitionParams.
func RequestToDefinitionParams(req jsonrpc2.Request) (*protocol.DefinitionParams, error) {
	return decodeParams[protocol.DefinitionParams](req)
}

// decodeParams reports malformed parameters as jsonrpc2.ErrInvalidParams so the reply carries
// the matching error code.
func decodeParams[T any](req jsonrpc2.Request) (*T, error) {
	params := new(T)
	if err := json.Unmarshal(req.Params(), params); err != nil {
		return nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err)
	}
	return params, nil
}
