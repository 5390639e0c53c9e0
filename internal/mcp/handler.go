// Package mcp implements a minimal MCP server over JSON-RPC 2.0 so that
// language model agents can query repository metadata and snapshots.
package mcp

import (
	"context"

	"github.com/repotext/repotext/internal/mcp/tools"
)

// Tool represents an MCP tool
type Tool interface {
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
	GetSchema() map[string]interface{}
}

// Handler handles MCP protocol requests
type Handler struct {
	tools map[string]Tool
}

// NewHandler creates a new MCP handler
func NewHandler() *Handler {
	return &Handler{
		tools: make(map[string]Tool),
	}
}

// RegisterTool registers a tool with the handler
func (h *Handler) RegisterTool(name string, tool Tool) {
	h.tools[name] = tool
}

// Handle processes a JSON-RPC request
func (h *Handler) Handle(ctx context.Context, req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	switch req.Method {
	case "initialize":
		return h.handleInitialize(req)
	case "tools/list":
		return h.handleToolsList(req)
	case "tools/call":
		return h.handleToolCall(ctx, req)
	default:
		return &tools.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &tools.JSONRPCError{
				Code:    -32601,
				Message: "Method not found",
			},
		}
	}
}

func (h *Handler) handleInitialize(req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "1.0",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]string{
				"name":    "repotext-server",
				"version": "0.1.0",
			},
		},
	}
}

func (h *Handler) handleToolsList(req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	toolsList := []map[string]interface{}{}

	for name, tool := range h.tools {
		toolsList = append(toolsList, map[string]interface{}{
			"name":   name,
			"schema": tool.GetSchema(),
		})
	}

	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": toolsList,
		},
	}
}

func (h *Handler) handleToolCall(ctx context.Context, req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	toolName, ok := req.Params["name"].(string)
	if !ok {
		return &tools.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &tools.JSONRPCError{
				Code:    -32602,
				Message: "Invalid params: 'name' is required",
			},
		}
	}

	tool, exists := h.tools[toolName]
	if !exists {
		return &tools.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &tools.JSONRPCError{
				Code:    -32602,
				Message: "Tool not found: " + toolName,
			},
		}
	}

	args, ok := req.Params["arguments"].(map[string]interface{})
	if !ok {
		args = make(map[string]interface{})
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		return &tools.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &tools.JSONRPCError{
				Code:    -32603,
				Message: "Tool execution error: " + err.Error(),
			},
		}
	}

	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}
