package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfbridge/mcp/pkg/models"
)

func testReportMetadata(name string) *models.ReportMetadata {
	return &models.ReportMetadata{
		Name:          name,
		DeveloperName: "Test_Report",
		ReportFormat:  "TABULAR",
		Scope:         "organization",
		DetailColumns: []string{},
	}
}

func TestDescribeReportType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/analytics/reportTypes/AccountList/describe", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Write([]byte(`{
			"reportExtendedMetadata": {
				"detailColumnInfo": {
					"AccountName": {"label": "Account Name", "dataType": "string"},
					"Industry": {"label": "Industry", "dataType": "picklist"}
				}
			},
			"reportTypeMetadata": {
				"categories": [],
				"dataTypeFilterOperatorMap": {
					"string": [{"name": "equals", "label": "Equals"}]
				}
			}
		}`))
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	describe, err := c.DescribeReportType(context.Background(), "AccountList", "test-token")

	require.NoError(t, err)
	assert.Equal(t, []string{"AccountName", "Industry"}, describe.ReportExtendedMetadata.DetailColumnInfo.Keys)
	assert.Len(t, describe.ReportTypeMetadata.DataTypeFilterOperatorMap["string"], 1)
}

func TestDescribeReportType_ShapeDeviationTolerated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reportTypeMetadata": {}}`))
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	describe, err := c.DescribeReportType(context.Background(), "AccountList", "test-token")

	require.NoError(t, err)
	assert.Zero(t, describe.ReportExtendedMetadata.DetailColumnInfo.Len())
}

func TestDescribeReportType_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`[{"errorCode": "NOT_FOUND", "message": "Invalid report type"}]`))
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	_, err := c.DescribeReportType(context.Background(), "BogusList", "test-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Invalid report type")
}

func TestGetReportFolderByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/query", r.URL.Path)
		soql := r.URL.Query().Get("q")
		assert.Contains(t, soql, "FROM Folder")
		assert.Contains(t, soql, "Type = 'Report'")
		assert.Contains(t, soql, `Name = 'Sales \'Q1\' Reports'`)
		assert.Contains(t, soql, "LIMIT 1")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"totalSize": 1,
			"done":      true,
			"records": []map[string]string{
				{"Id": "00l123", "Name": "Sales 'Q1' Reports"},
			},
		})
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	record, err := c.GetReportFolderByName(context.Background(), "Sales 'Q1' Reports", "test-token")

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "00l123", record.ID)
}

func TestGetAnyReportFolder_None(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"totalSize": 0, "done": true, "records": []interface{}{}})
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	record, err := c.GetAnyReportFolder(context.Background(), "test-token")

	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCreateReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/analytics/reports", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		meta, ok := body["reportMetadata"].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "Test Report", meta["name"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"reportMetadata":         map[string]interface{}{"id": "00O123", "name": "Test Report"},
			"reportExtendedMetadata": map[string]interface{}{"detailColumnInfo": map[string]interface{}{}},
		})
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	id, err := c.CreateReport(context.Background(), testReportMetadata("Test Report"), "test-token")

	require.NoError(t, err)
	assert.Equal(t, "00O123", id)
}

func TestCreateReport_MissingExtendedMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"reportMetadata": map[string]interface{}{"id": "00O123"},
		})
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	_, err := c.CreateReport(context.Background(), testReportMetadata("Test Report"), "test-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extended metadata")
}

func TestListReportTypes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/analytics/reportTypes", r.URL.Path)
		w.Write([]byte(`[
			{"label": "Accounts & Contacts", "reportTypes": [
				{"type": "AccountList", "label": "Accounts"}
			]}
		]`))
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	categories, err := c.ListReportTypes(context.Background(), "test-token")

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "AccountList", categories[0].ReportTypes[0].Type)
}

func TestRunReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/analytics/reports/00O123", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includeDetails"))
		json.NewEncoder(w).Encode(map[string]interface{}{"allData": true})
	}))
	defer server.Close()

	c := NewSalesforceClient(server.URL, "")
	result, err := c.RunReport(context.Background(), "00O123", true, "test-token")

	require.NoError(t, err)
	assert.Equal(t, true, result["allData"])
}
