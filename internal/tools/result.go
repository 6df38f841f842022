package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/codewandler/gocd-mcp/internal/gocd"
	"github.com/mark3labs/mcp-go/mcp"
)

// errorBody is the uniform JSON error envelope returned to MCP callers
type errorBody struct {
	Error      bool   `json:"error"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// errorResult converts any failure into an IsError tool result carrying the
// error envelope. Status-specific codes: 401 UNAUTHORIZED, 403 FORBIDDEN,
// 404 NOT_FOUND, other upstream failures API_ERROR; validation and
// programming errors ERROR; anything unrecognizable UNKNOWN_ERROR.
func errorResult(err error) *mcp.CallToolResult {
	body := errorBody{Error: true}

	var apiErr *gocd.APIError
	var valErr *gocd.ValidationError

	switch {
	case errors.As(err, &apiErr):
		body.StatusCode = apiErr.StatusCode
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			body.Code = "UNAUTHORIZED"
			body.Message = "Invalid or missing credentials"
		case http.StatusForbidden:
			body.Code = "FORBIDDEN"
			body.Message = fmt.Sprintf("Insufficient permission: %s", apiErr.Endpoint)
		case http.StatusNotFound:
			body.Code = "NOT_FOUND"
			body.Message = fmt.Sprintf("Resource not found: %s", apiErr.Endpoint)
		default:
			body.Code = "API_ERROR"
			body.Message = apiErr.Error()
		}
	case errors.As(err, &valErr):
		body.Code = "ERROR"
		body.Message = valErr.Message
	case err != nil:
		body.Code = "ERROR"
		body.Message = err.Error()
	default:
		body.Code = "UNKNOWN_ERROR"
		body.Message = "unknown error"
	}

	data, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		return mcp.NewToolResultError(`{"error":true,"code":"UNKNOWN_ERROR","message":"failed to encode error"}`)
	}
	return mcp.NewToolResultError(string(data))
}

// rawResult returns an upstream JSON payload as-is
func rawResult(raw json.RawMessage) *mcp.CallToolResult {
	return mcp.NewToolResultText(string(raw))
}

// jsonResult serializes a domain object as indented JSON
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("failed to encode result: %w", err))
	}
	return mcp.NewToolResultText(string(data))
}
