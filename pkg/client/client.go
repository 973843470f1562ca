package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sfbridge/mcp/pkg/models"
)

// DefaultAPIVersion is the Salesforce REST API version used when the caller
// does not configure one.
const DefaultAPIVersion = "59.0"

// SalesforceClient talks to the Salesforce REST API of one org instance.
// The session token is produced elsewhere and passed per call.
type SalesforceClient struct {
	InstanceURL string
	APIVersion  string
	HTTPClient  *http.Client
}

func NewSalesforceClient(instanceURL, apiVersion string) *SalesforceClient {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &SalesforceClient{
		InstanceURL: strings.TrimRight(instanceURL, "/"),
		APIVersion:  apiVersion,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *SalesforceClient) restPath(path string) string {
	return fmt.Sprintf("%s/services/data/v%s%s", c.InstanceURL, c.APIVersion, path)
}

// Helper to execute requests
func (c *SalesforceClient) doRequest(ctx context.Context, method, fullURL string, body interface{}, result interface{}, sessionToken string) error {
	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sessionToken))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("salesforce api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// DescribeReportType fetches the field/operator schema for one report type.
func (c *SalesforceClient) DescribeReportType(ctx context.Context, reportType string, sessionToken string) (*models.ReportTypeDescribe, error) {
	var describe models.ReportTypeDescribe
	u := c.restPath(fmt.Sprintf("/analytics/reportTypes/%s/describe", url.PathEscape(reportType)))
	if err := c.doRequest(ctx, "GET", u, nil, &describe, sessionToken); err != nil {
		return nil, err
	}
	return &describe, nil
}

// ListReportTypes fetches the report type catalog.
func (c *SalesforceClient) ListReportTypes(ctx context.Context, sessionToken string) ([]models.ReportTypeCategory, error) {
	var categories []models.ReportTypeCategory
	u := c.restPath("/analytics/reportTypes")
	if err := c.doRequest(ctx, "GET", u, nil, &categories, sessionToken); err != nil {
		return nil, err
	}
	return categories, nil
}

// Query runs a SOQL query and returns the raw record envelope.
func (c *SalesforceClient) Query(ctx context.Context, soql string, sessionToken string) (*models.QueryResponse, error) {
	var result models.QueryResponse
	u := c.restPath("/query") + "?q=" + url.QueryEscape(soql)
	if err := c.doRequest(ctx, "GET", u, nil, &result, sessionToken); err != nil {
		return nil, err
	}
	return &result, nil
}

// soqlQuote escapes a literal for inclusion in single quotes.
func soqlQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

func (c *SalesforceClient) queryReportFolders(ctx context.Context, where string, limit int, sessionToken string) ([]models.FolderRecord, error) {
	soql := "SELECT Id, Name FROM Folder WHERE Type = 'Report'"
	if where != "" {
		soql += " AND " + where
	}
	if limit > 0 {
		soql += fmt.Sprintf(" LIMIT %d", limit)
	}

	var result models.FolderQueryResponse
	u := c.restPath("/query") + "?q=" + url.QueryEscape(soql)
	if err := c.doRequest(ctx, "GET", u, nil, &result, sessionToken); err != nil {
		return nil, err
	}
	return result.Records, nil
}

// GetReportFolderByID looks up a report folder by exact id. Returns nil when
// no folder matches.
func (c *SalesforceClient) GetReportFolderByID(ctx context.Context, id string, sessionToken string) (*models.FolderRecord, error) {
	records, err := c.queryReportFolders(ctx, fmt.Sprintf("Id = '%s'", soqlQuote(id)), 1, sessionToken)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// GetReportFolderByName looks up a report folder by exact name. Returns nil
// when no folder matches.
func (c *SalesforceClient) GetReportFolderByName(ctx context.Context, name string, sessionToken string) (*models.FolderRecord, error) {
	records, err := c.queryReportFolders(ctx, fmt.Sprintf("Name = '%s'", soqlQuote(name)), 1, sessionToken)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// GetAnyReportFolder returns the first report folder in the org, or nil when
// the org has none.
func (c *SalesforceClient) GetAnyReportFolder(ctx context.Context, sessionToken string) (*models.FolderRecord, error) {
	records, err := c.queryReportFolders(ctx, "", 1, sessionToken)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// CreateReport submits an assembled report document. A creation is
// recognized as successful when the response carries extended metadata
// content together with an assigned report id.
func (c *SalesforceClient) CreateReport(ctx context.Context, metadata *models.ReportMetadata, sessionToken string) (string, error) {
	payload := map[string]interface{}{"reportMetadata": metadata}

	var rawResp map[string]interface{}
	u := c.restPath("/analytics/reports")
	if err := c.doRequest(ctx, "POST", u, payload, &rawResp, sessionToken); err != nil {
		return "", err
	}

	extended, ok := rawResp["reportExtendedMetadata"]
	if !ok || extended == nil {
		return "", fmt.Errorf("created report missing extended metadata")
	}

	if metaVal, ok := rawResp["reportMetadata"]; ok {
		if metaMap, ok := metaVal.(map[string]interface{}); ok {
			if id, ok := metaMap["id"].(string); ok && id != "" {
				return id, nil
			}
		}
	}
	if id, ok := rawResp["id"].(string); ok && id != "" {
		return id, nil
	}

	return "", fmt.Errorf("created report missing ID")
}

// RunReport executes a report synchronously and returns the raw result body.
func (c *SalesforceClient) RunReport(ctx context.Context, reportID string, includeDetails bool, sessionToken string) (models.SObject, error) {
	var result models.SObject
	u := c.restPath(fmt.Sprintf("/analytics/reports/%s", url.PathEscape(reportID)))
	if includeDetails {
		u += "?includeDetails=true"
	}
	if err := c.doRequest(ctx, "GET", u, nil, &result, sessionToken); err != nil {
		return nil, err
	}
	return result, nil
}
