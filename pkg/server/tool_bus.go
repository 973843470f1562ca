package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sfbridge/mcp/pkg/client"
	"github.com/sfbridge/mcp/pkg/mcp"
	"github.com/sfbridge/mcp/pkg/models"
	"github.com/sfbridge/mcp/pkg/report"
)

const (
	ToolCreateReport       = "salesforce_create_report"
	ToolDescribeReportType = "salesforce_describe_report_type"
	ToolListReportTypes    = "salesforce_list_report_types"
	ToolListReportFolders  = "salesforce_list_report_folders"
	ToolRunReport          = "salesforce_run_report"
)

// ToolBusService routes MCP tool calls to the Salesforce client. The
// create-report tool runs the resolution engine before submitting; the rest
// are direct pass-throughs.
type ToolBusService struct {
	client  *client.SalesforceClient
	builder *report.Builder
	logger  zerolog.Logger
}

func NewToolBusService(sfClient *client.SalesforceClient, logger zerolog.Logger) *ToolBusService {
	return &ToolBusService{
		client:  sfClient,
		builder: report.NewBuilder(sfClient, logger),
		logger:  logger,
	}
}

func (s *ToolBusService) getSessionToken(ctx context.Context) (string, error) {
	token, ok := ctx.Value(mcp.ContextKeySessionToken).(string)
	if !ok || token == "" {
		return "", &mcp.Error{Code: mcp.ErrInternal, Message: "Unauthorized: No session token"}
	}
	return token, nil
}

// HandleListTools returns the report tool catalog
func (s *ToolBusService) HandleListTools(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var allTools []mcp.Tool

	filterItemSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"field": map[string]interface{}{
				"type":        "string",
				"description": "Field to filter on. Accepts the API name or the display label, any case.",
			},
			"operator": map[string]interface{}{
				"type":        "string",
				"description": "Filter operator. Accepts the API operator name or its display label (e.g. 'equals', 'Does Not Equal', 'NOT_EQUAL').",
			},
			"value": map[string]interface{}{
				"type":        "string",
				"description": "Comparison value",
			},
		},
		"required": []string{"field", "operator", "value"},
	}

	groupingItemSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Field to group by. Accepts the API name or the display label.",
			},
			"sortOrder": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"Asc", "Desc"},
				"description": "Sort direction (default Asc)",
			},
			"sortAggregate": map[string]interface{}{
				"type":        "string",
				"description": "Aggregate to sort the grouping by",
			},
			"dateGranularity": map[string]interface{}{
				"type":        "string",
				"description": "Date bucketing for date fields (default None)",
			},
		},
		"required": []string{"name"},
	}

	allTools = append(allTools, mcp.Tool{
		Name: ToolCreateReport,
		Description: "Create a Salesforce report. Field and operator references are resolved against the report type's live schema: " +
			"columns and filter fields accept API names or display labels in any case, and operators accept names or labels. " +
			"Use salesforce_describe_report_type first if you are unsure which fields exist.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"reportName": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the report",
				},
				"developerName": map[string]interface{}{
					"type":        "string",
					"description": "API name of the report. Derived from reportName when omitted.",
				},
				"objectName": map[string]interface{}{
					"type":        "string",
					"description": "Object to report on (e.g. 'Account'). Used to derive the report type when reportType is omitted.",
				},
				"reportType": map[string]interface{}{
					"type":        "object",
					"description": "Explicit report type descriptor",
					"properties": map[string]interface{}{
						"type":  map[string]interface{}{"type": "string"},
						"label": map[string]interface{}{"type": "string"},
					},
					"required": []string{"type"},
				},
				"folderId": map[string]interface{}{
					"type":        "string",
					"description": "Target folder id. Takes precedence over folderName.",
				},
				"folderName": map[string]interface{}{
					"type":        "string",
					"description": "Target folder name. When neither matches, the first report folder in the org is used.",
				},
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"TABULAR", "SUMMARY", "MATRIX"},
					"description": "Report format (default TABULAR)",
				},
				"scope": map[string]interface{}{
					"type":        "string",
					"description": "Report scope (default 'organization')",
				},
				"columns": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Detail columns by API name or label. Takes precedence over detailColumns.",
				},
				"filters": map[string]interface{}{
					"type":        "array",
					"items":       filterItemSchema,
					"description": "Report filters in {field, operator, value} shape. Highest-precedence filter source.",
				},
				"detailColumns": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Detail columns in the raw API shape. Used only when 'columns' is absent.",
				},
				"reportFilters": map[string]interface{}{
					"type":        "array",
					"description": "Report filters in the raw {column, operator, value} shape. Used only when 'filters' is absent.",
				},
				"groupingsDown": map[string]interface{}{
					"type":        "array",
					"items":       groupingItemSchema,
					"description": "Row groupings",
				},
				"groupingsAcross": map[string]interface{}{
					"type":        "array",
					"items":       groupingItemSchema,
					"description": "Column groupings (matrix reports)",
				},
				"reportMetadata": map[string]interface{}{
					"type":        "object",
					"description": "Full report metadata object. Direct arguments above take precedence over the values nested here.",
				},
				"showGrandTotal": map[string]interface{}{"type": "boolean"},
				"showSubtotals":  map[string]interface{}{"type": "boolean"},
				"hasDetailRows":  map[string]interface{}{"type": "boolean"},
				"hasRecordCount": map[string]interface{}{"type": "boolean"},
				"chart": map[string]interface{}{
					"type":        "object",
					"description": "Chart definition, passed through to the platform",
				},
			},
			"required": []string{"reportName"},
		},
	})

	allTools = append(allTools, mcp.Tool{
		Name:        ToolDescribeReportType,
		Description: "Get the schema for a report type: every selectable column with its label and data type, and the valid filter operators per data type.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"reportType": map[string]interface{}{
					"type":        "string",
					"description": "Report type API name (e.g. 'AccountList', 'OpportunityList')",
				},
			},
			"required": []string{"reportType"},
		},
	})

	allTools = append(allTools, mcp.Tool{
		Name:        ToolListReportTypes,
		Description: "List the report types available in the org, grouped by category.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	})

	allTools = append(allTools, mcp.Tool{
		Name:        ToolListReportFolders,
		Description: "List report folders in the org, optionally filtered by exact name.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Exact folder name to look up",
				},
			},
		},
	})

	allTools = append(allTools, mcp.Tool{
		Name:        ToolRunReport,
		Description: "Run an existing report synchronously and return its results.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"reportId": map[string]interface{}{
					"type":        "string",
					"description": "Id of the report to run",
				},
				"includeDetails": map[string]interface{}{
					"type":        "boolean",
					"description": "Include detail rows in the result (default false)",
				},
			},
			"required": []string{"reportId"},
		},
	})

	return mcp.ListToolsResult{Tools: allTools}, nil
}

// HandleCallTool executes a tool
func (s *ToolBusService) HandleCallTool(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req mcp.CallToolParams
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, &mcp.Error{Code: mcp.ErrInvalidParams, Message: "Invalid params"}
	}

	switch req.Name {
	case ToolCreateReport:
		return s.handleCreateReport(ctx, req)
	case ToolDescribeReportType:
		return s.handleDescribeReportType(ctx, req)
	case ToolListReportTypes:
		return s.handleListReportTypes(ctx, req)
	case ToolListReportFolders:
		return s.handleListReportFolders(ctx, req)
	case ToolRunReport:
		return s.handleRunReport(ctx, req)
	}

	return nil, &mcp.Error{Code: mcp.ErrMethodNotFound, Message: fmt.Sprintf("Tool '%s' not found", req.Name)}
}

// decodeArguments maps the loose tool arguments onto a typed struct.
func decodeArguments(arguments map[string]interface{}, target interface{}) error {
	raw, err := json.Marshal(arguments)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

func (s *ToolBusService) handleCreateReport(ctx context.Context, req mcp.CallToolParams) (mcp.CallToolResult, error) {
	token, err := s.getSessionToken(ctx)
	if err != nil {
		return mcp.CallToolResult{}, err
	}

	var args models.CreateReportArgs
	if err := decodeArguments(req.Arguments, &args); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Invalid arguments: %v", err)), nil
	}
	if args.ReportName == "" {
		return mcp.ErrorResult("reportName is required"), nil
	}

	doc, err := s.builder.Build(ctx, args, token)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Failed to build report: %v", err)), nil
	}

	id, err := s.client.CreateReport(ctx, doc, token)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Failed to create report: %v", err)), nil
	}

	return mcp.TextResult(fmt.Sprintf("Successfully created report '%s' with ID: %s", doc.Name, id)), nil
}

func (s *ToolBusService) handleDescribeReportType(ctx context.Context, req mcp.CallToolParams) (mcp.CallToolResult, error) {
	token, err := s.getSessionToken(ctx)
	if err != nil {
		return mcp.CallToolResult{}, err
	}

	reportType, ok := req.Arguments["reportType"].(string)
	if !ok || reportType == "" {
		return mcp.ErrorResult("reportType required"), nil
	}

	describe, err := s.client.DescribeReportType(ctx, reportType, token)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Describe failed: %v", err)), nil
	}

	jsonBytes, _ := json.MarshalIndent(describe, "", "  ")
	return mcp.TextResult(string(jsonBytes)), nil
}

func (s *ToolBusService) handleListReportTypes(ctx context.Context, req mcp.CallToolParams) (mcp.CallToolResult, error) {
	token, err := s.getSessionToken(ctx)
	if err != nil {
		return mcp.CallToolResult{}, err
	}

	categories, err := s.client.ListReportTypes(ctx, token)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Failed to list report types: %v", err)), nil
	}

	jsonBytes, _ := json.MarshalIndent(categories, "", "  ")
	return mcp.TextResult(fmt.Sprintf("Found %d report type categories:\n%s", len(categories), string(jsonBytes))), nil
}

func (s *ToolBusService) handleListReportFolders(ctx context.Context, req mcp.CallToolParams) (mcp.CallToolResult, error) {
	token, err := s.getSessionToken(ctx)
	if err != nil {
		return mcp.CallToolResult{}, err
	}

	name, _ := req.Arguments["name"].(string)

	var folders []models.FolderRecord
	if name != "" {
		record, err := s.client.GetReportFolderByName(ctx, name, token)
		if err != nil {
			return mcp.ErrorResult(fmt.Sprintf("Folder lookup failed: %v", err)), nil
		}
		if record != nil {
			folders = append(folders, *record)
		}
	} else {
		result, err := s.client.Query(ctx, "SELECT Id, Name FROM Folder WHERE Type = 'Report'", token)
		if err != nil {
			return mcp.ErrorResult(fmt.Sprintf("Folder query failed: %v", err)), nil
		}
		for _, record := range result.Records {
			folder := models.FolderRecord{}
			if id, ok := record["Id"].(string); ok {
				folder.ID = id
			}
			if folderName, ok := record["Name"].(string); ok {
				folder.Name = folderName
			}
			folders = append(folders, folder)
		}
	}

	if len(folders) == 0 {
		return mcp.TextResult("No report folders found"), nil
	}

	jsonBytes, _ := json.MarshalIndent(folders, "", "  ")
	return mcp.TextResult(fmt.Sprintf("Found %d report folders:\n%s", len(folders), string(jsonBytes))), nil
}

func (s *ToolBusService) handleRunReport(ctx context.Context, req mcp.CallToolParams) (mcp.CallToolResult, error) {
	token, err := s.getSessionToken(ctx)
	if err != nil {
		return mcp.CallToolResult{}, err
	}

	reportID, ok := req.Arguments["reportId"].(string)
	if !ok || reportID == "" {
		return mcp.ErrorResult("reportId required"), nil
	}
	includeDetails, _ := req.Arguments["includeDetails"].(bool)

	result, err := s.client.RunReport(ctx, reportID, includeDetails, token)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Run report failed: %v", err)), nil
	}

	jsonBytes, _ := json.MarshalIndent(result, "", "  ")
	return mcp.TextResult(string(jsonBytes)), nil
}
