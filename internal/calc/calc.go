// Package calc exposes a small arithmetic toolbox over MCP so agent clients
// can delegate exact computation instead of doing math in-model.
package calc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var errDivisionByZero = errors.New("division by zero")

// NewServer builds the MCP server with all calculator tools registered.
func NewServer() *server.MCPServer {
	srv := server.NewMCPServer(
		"researchbot-calc",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	binary := func(name, desc string, fn func(a, b float64) (float64, error)) {
		srv.AddTool(
			mcp.NewTool(name,
				mcp.WithDescription(desc),
				mcp.WithNumber("a", mcp.Required(), mcp.Description("First operand")),
				mcp.WithNumber("b", mcp.Required(), mcp.Description("Second operand")),
			),
			handleBinary(fn),
		)
	}

	binary("add", "Add two numbers.", func(a, b float64) (float64, error) { return a + b, nil })
	binary("subtract", "Subtract b from a.", func(a, b float64) (float64, error) { return a - b, nil })
	binary("multiply", "Multiply two numbers.", func(a, b float64) (float64, error) { return a * b, nil })
	binary("divide", "Divide a by b.", divide)
	binary("power", "Raise a to the power of b.", func(a, b float64) (float64, error) { return math.Pow(a, b), nil })

	srv.AddTool(
		mcp.NewTool("sqrt",
			mcp.WithDescription("Square root of a non-negative number."),
			mcp.WithNumber("a", mcp.Required(), mcp.Description("Operand")),
		),
		handleUnary(sqrt),
	)

	return srv
}

func handleBinary(fn func(a, b float64) (float64, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, okA := floatArg(req, "a")
		b, okB := floatArg(req, "b")
		if !okA || !okB {
			return mcp.NewToolResultError("arguments a and b must be numbers"), nil
		}

		result, err := fn(a, b)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatResult(result)), nil
	}
}

func handleUnary(fn func(a float64) (float64, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, ok := floatArg(req, "a")
		if !ok {
			return mcp.NewToolResultError("argument a must be a number"), nil
		}

		result, err := fn(a)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatResult(result)), nil
	}
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errDivisionByZero
	}
	return a / b, nil
}

func sqrt(a float64) (float64, error) {
	if a < 0 {
		return 0, fmt.Errorf("square root of negative number %v", a)
	}
	return math.Sqrt(a), nil
}

func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return v, ok
}

func formatResult(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
