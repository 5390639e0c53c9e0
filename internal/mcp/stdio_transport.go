package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/repotext/repotext/internal/logging"
	"github.com/repotext/repotext/internal/mcp/tools"
)

// maxLineSize bounds one JSON-RPC message. Snapshot documents never
// travel inbound, so requests stay small, but be generous.
const maxLineSize = 4 << 20

// StdioTransport handles JSON-RPC communication over line-delimited
// stdio.
type StdioTransport struct {
	scanner *bufio.Scanner
	out     io.Writer
	handler *Handler
}

// NewStdioTransport creates a transport reading requests from in and
// writing responses to out.
func NewStdioTransport(handler *Handler, in io.Reader, out io.Writer) *StdioTransport {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	return &StdioTransport{
		scanner: scanner,
		out:     out,
		handler: handler,
	}
}

// Start processes requests until the input stream closes or ctx is
// canceled.
func (t *StdioTransport) Start(ctx context.Context) error {
	for t.scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := t.scanner.Text()
		if line == "" {
			continue
		}

		var req tools.JSONRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			logging.Warn("unparseable request", "error", err)
			t.sendError(nil, -32700, "Parse error")
			continue
		}

		logging.Debug("handling request", "method", req.Method, "id", req.ID)
		t.send(t.handler.Handle(ctx, &req))
	}
	return t.scanner.Err()
}

func (t *StdioTransport) send(response *tools.JSONRPCResponse) {
	respJSON, err := json.Marshal(response)
	if err != nil {
		logging.Error("failed to encode response", "error", err)
		return
	}
	fmt.Fprintln(t.out, string(respJSON))
}

func (t *StdioTransport) sendError(id interface{}, code int, message string) {
	t.send(&tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &tools.JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
