package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clinical-risk-gateway/internal/domain"
)

// Tool names
const (
	ToolPredictRisk       = "predict_risk"
	ToolListEngines       = "list_engines"
	ToolNormalizePostcode = "normalize_postcode"
)

// PredictRiskParams defines parameters for the predict_risk tool.
// Input uses the same JSON names as POST /api/v1/Prediction.
type PredictRiskParams struct {
	Input map[string]any `json:"input,omitempty" jsonschema:"patient record; requestedEngines, sex and age are required"`
}

// ListEnginesParams defines parameters for the list_engines tool
type ListEnginesParams struct{}

// NormalizePostcodeParams defines parameters for the normalize_postcode tool
type NormalizePostcodeParams struct {
	Postcode string `json:"postcode" jsonschema:"UK postcode in any case or spacing"`
}

// NormalizePostcodeResult defines the result structure for the normalize_postcode tool
type NormalizePostcodeResult struct {
	Postcode   string `json:"postcode"`
	Normalized string `json:"normalized"`
	Valid      bool   `json:"valid"`
}

// handlePredictRisk handles the predict_risk tool invocation
func (s *Server) handlePredictRisk(ctx context.Context, req *mcp.CallToolRequest, params PredictRiskParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolPredictRisk).Info("Tool invoked")

	if len(params.Input) == 0 {
		return s.createErrorResult("Missing required parameter", errors.New("input is required")), nil, nil
	}

	in, err := decodeInput(params.Input)
	if err != nil {
		return s.createErrorResult("Invalid input", err), nil, nil
	}

	prediction, err := s.service.Predict(ctx, in)
	if err != nil {
		var verrs domain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			return s.createErrorResult("Input failed validation", err), nil, nil
		case errors.Is(err, domain.ErrEngineNotFound):
			return s.createErrorResult("Engine not installed", err), nil, nil
		}
		return nil, nil, fmt.Errorf("prediction failed: %w", err)
	}

	return s.createJSONResult(prediction)
}

// handleListEngines handles the list_engines tool invocation
func (s *Server) handleListEngines(ctx context.Context, req *mcp.CallToolRequest, params ListEnginesParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolListEngines).Info("Tool invoked")
	return s.createJSONResult(s.service.AvailableScores())
}

// handleNormalizePostcode handles the normalize_postcode tool invocation
func (s *Server) handleNormalizePostcode(ctx context.Context, req *mcp.CallToolRequest, params NormalizePostcodeParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolNormalizePostcode).Info("Tool invoked")

	if params.Postcode == "" {
		return s.createErrorResult("Missing required parameter", errors.New("postcode is required")), nil, nil
	}

	normalized := domain.NormalizePostcode(params.Postcode)
	return s.createJSONResult(NormalizePostcodeResult{
		Postcode:   params.Postcode,
		Normalized: normalized,
		Valid:      normalized != domain.PostcodeInvalid,
	})
}

// decodeInput converts loosely typed tool arguments to an Input, applying the
// same enum parsing as the HTTP API.
func decodeInput(raw map[string]any) (*domain.Input, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var in domain.Input
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *Server) createJSONResult(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

// createErrorResult creates an error result for tool responses
func (s *Server) createErrorResult(message string, err error) *mcp.CallToolResult {
	errorText := fmt.Sprintf("Error: %s", message)
	if err != nil {
		errorText += fmt.Sprintf(" - %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: errorText},
		},
		IsError: true,
	}
}
