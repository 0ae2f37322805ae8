package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/advent/internal/errors"
	"github.com/hpungsan/advent/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc *ops.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *ops.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Request types for each tool

// ListRequest represents the arguments for list.
type ListRequest struct {
	OpenedOnly bool `json:"opened_only,omitempty"`
}

// DayRequest represents the arguments for show and open.
type DayRequest struct {
	Day *int `json:"day"`
}

// ResetRequest represents the arguments for reset.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// HistoryRequest represents the arguments for history.
type HistoryRequest struct {
	Day     *int    `json:"day,omitempty"`
	Outcome *string `json:"outcome,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}

// Handler implementations

// HandleList handles the list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.List(ctx, ops.ListInput{OpenedOnly: input.OpenedOnly})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleShow handles the show tool call.
func (h *Handlers) HandleShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := decodeDay(req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.svc.Show(ctx, ops.ShowInput{Day: day})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleOpen handles the open tool call.
func (h *Handlers) HandleOpen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := decodeDay(req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.svc.Open(ctx, ops.OpenInput{Day: day})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProgress handles the progress tool call.
func (h *Handlers) HandleProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.svc.Progress(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleReset handles the reset tool call.
func (h *Handlers) HandleReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ResetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if !input.Confirm {
		return errorResult(errors.NewInvalidRequest("confirm must be true to reset the calendar")), nil
	}

	result, err := h.svc.Reset(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistory handles the history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.History(ctx, ops.HistoryInput{
		Day:     input.Day,
		Outcome: input.Outcome,
		Limit:   input.Limit,
		Offset:  input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// decodeDay reads the required day argument.
func decodeDay(req mcp.CallToolRequest) (int, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return 0, errors.NewInvalidRequest(err.Error())
	}
	if input.Day == nil {
		return 0, errors.NewInvalidRequest("day is required")
	}
	return *input.Day, nil
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if advErr, ok := err.(*errors.AdventError); ok {
		errorObj := map[string]any{
			"code":    advErr.Code,
			"message": advErr.Message,
			"status":  advErr.Status,
		}
		// Internal details may carry SQL errors
		if advErr.Code != errors.ErrInternal && advErr.Details != nil {
			errorObj["details"] = advErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
