package models

// SObject represents a generic Salesforce record (map of field names to values)
type SObject = map[string]interface{}

// ReportTypeRef identifies a report type as the platform expects it
type ReportTypeRef struct {
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// ColumnInfo describes one selectable report column
type ColumnInfo struct {
	Label    string `json:"label"`
	DataType string `json:"dataType"`
}

// FilterOperator is one entry of the per-data-type operator table
type FilterOperator struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// ColumnCategory is a supplementary catalog of columns grouped under a label
type ColumnCategory struct {
	Label   string           `json:"label"`
	Columns OrderedColumnMap `json:"columns"`
}

// ReportTypeMetadata is the category/operator half of a report type describe
type ReportTypeMetadata struct {
	Categories                []ColumnCategory            `json:"categories"`
	DataTypeFilterOperatorMap map[string][]FilterOperator `json:"dataTypeFilterOperatorMap"`
}

// ReportExtendedMetadata carries the detail column catalog
type ReportExtendedMetadata struct {
	DetailColumnInfo OrderedColumnMap `json:"detailColumnInfo"`
}

// ReportTypeDescribe is the full describe response for one report type.
// Missing catalogs decode as empty rather than failing.
type ReportTypeDescribe struct {
	ReportTypeMetadata     ReportTypeMetadata     `json:"reportTypeMetadata"`
	ReportExtendedMetadata ReportExtendedMetadata `json:"reportExtendedMetadata"`
}

// ReportFilter is a filter row in the platform's raw shape
type ReportFilter struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// SimpleFilter is the convenience filter shape accepted from callers
type SimpleFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// ReportGrouping is a row/column grouping in the assembled document
type ReportGrouping struct {
	Name            string  `json:"name"`
	SortOrder       string  `json:"sortOrder"`
	SortAggregate   *string `json:"sortAggregate"`
	DateGranularity string  `json:"dateGranularity"`
}

// GroupingInput is the caller-side grouping shape; defaults are applied
// during merge.
type GroupingInput struct {
	Name            string `json:"name"`
	SortOrder       string `json:"sortOrder,omitempty"`
	SortAggregate   string `json:"sortAggregate,omitempty"`
	DateGranularity string `json:"dateGranularity,omitempty"`
}

// ReportMetadata is the assembled report document submitted to the platform
type ReportMetadata struct {
	Name                string                 `json:"name"`
	DeveloperName       string                 `json:"developerName"`
	ReportType          ReportTypeRef          `json:"reportType"`
	FolderID            string                 `json:"folderId,omitempty"`
	ReportFormat        string                 `json:"reportFormat"`
	Scope               string                 `json:"scope"`
	DetailColumns       []string               `json:"detailColumns"`
	ReportFilters       []ReportFilter         `json:"reportFilters,omitempty"`
	ReportBooleanFilter *string                `json:"reportBooleanFilter,omitempty"`
	GroupingsDown       []ReportGrouping       `json:"groupingsDown,omitempty"`
	GroupingsAcross     []ReportGrouping       `json:"groupingsAcross,omitempty"`
	Aggregates          []string               `json:"aggregates,omitempty"`
	ShowGrandTotal      *bool                  `json:"showGrandTotal,omitempty"`
	ShowSubtotals       *bool                  `json:"showSubtotals,omitempty"`
	HasDetailRows       *bool                  `json:"hasDetailRows,omitempty"`
	HasRecordCount      *bool                  `json:"hasRecordCount,omitempty"`
	Currency            string                 `json:"currency,omitempty"`
	Division            string                 `json:"division,omitempty"`
	Chart               map[string]interface{} `json:"chart,omitempty"`
	StandardDateFilter  map[string]interface{} `json:"standardDateFilter,omitempty"`
	CrossFilters        []interface{}          `json:"crossFilters,omitempty"`
	PresentationOptions map[string]interface{} `json:"presentationOptions,omitempty"`
}

// ReportMetadataInput is the nested full-metadata object callers may supply.
// It can carry filters in either shape; it never carries a columns override.
type ReportMetadataInput struct {
	Name                string                 `json:"name,omitempty"`
	DeveloperName       string                 `json:"developerName,omitempty"`
	ReportType          *ReportTypeRef         `json:"reportType,omitempty"`
	ReportFormat        string                 `json:"reportFormat,omitempty"`
	Scope               string                 `json:"scope,omitempty"`
	Filters             []SimpleFilter         `json:"filters,omitempty"`
	ReportFilters       []ReportFilter         `json:"reportFilters,omitempty"`
	ReportBooleanFilter *string                `json:"reportBooleanFilter,omitempty"`
	GroupingsDown       []GroupingInput        `json:"groupingsDown,omitempty"`
	GroupingsAcross     []GroupingInput        `json:"groupingsAcross,omitempty"`
	Aggregates          []string               `json:"aggregates,omitempty"`
	ShowGrandTotal      *bool                  `json:"showGrandTotal,omitempty"`
	ShowSubtotals       *bool                  `json:"showSubtotals,omitempty"`
	HasDetailRows       *bool                  `json:"hasDetailRows,omitempty"`
	HasRecordCount      *bool                  `json:"hasRecordCount,omitempty"`
	Currency            string                 `json:"currency,omitempty"`
	Division            string                 `json:"division,omitempty"`
	Chart               map[string]interface{} `json:"chart,omitempty"`
	StandardDateFilter  map[string]interface{} `json:"standardDateFilter,omitempty"`
	CrossFilters        []interface{}          `json:"crossFilters,omitempty"`
	PresentationOptions map[string]interface{} `json:"presentationOptions,omitempty"`
}

// CreateReportArgs is the union of every argument shape the create-report
// tool accepts. Precedence between the overlapping shapes is applied by the
// report engine, not here.
type CreateReportArgs struct {
	ReportName          string                 `json:"reportName"`
	DeveloperName       string                 `json:"developerName,omitempty"`
	ObjectName          string                 `json:"objectName,omitempty"`
	ReportType          *ReportTypeRef         `json:"reportType,omitempty"`
	FolderID            string                 `json:"folderId,omitempty"`
	FolderName          string                 `json:"folderName,omitempty"`
	Format              string                 `json:"format,omitempty"`
	Scope               string                 `json:"scope,omitempty"`
	Columns             []string               `json:"columns,omitempty"`
	Filters             []SimpleFilter         `json:"filters,omitempty"`
	DetailColumns       []string               `json:"detailColumns,omitempty"`
	ReportFilters       []ReportFilter         `json:"reportFilters,omitempty"`
	ReportBooleanFilter *string                `json:"reportBooleanFilter,omitempty"`
	GroupingsDown       []GroupingInput        `json:"groupingsDown,omitempty"`
	GroupingsAcross     []GroupingInput        `json:"groupingsAcross,omitempty"`
	Aggregates          []string               `json:"aggregates,omitempty"`
	ShowGrandTotal      *bool                  `json:"showGrandTotal,omitempty"`
	ShowSubtotals       *bool                  `json:"showSubtotals,omitempty"`
	HasDetailRows       *bool                  `json:"hasDetailRows,omitempty"`
	HasRecordCount      *bool                  `json:"hasRecordCount,omitempty"`
	Currency            string                 `json:"currency,omitempty"`
	Division            string                 `json:"division,omitempty"`
	Chart               map[string]interface{} `json:"chart,omitempty"`
	StandardDateFilter  map[string]interface{} `json:"standardDateFilter,omitempty"`
	CrossFilters        []interface{}          `json:"crossFilters,omitempty"`
	PresentationOptions map[string]interface{} `json:"presentationOptions,omitempty"`
	ReportMetadata      *ReportMetadataInput   `json:"reportMetadata,omitempty"`
}

// FolderRecord is one row of a report folder query
type FolderRecord struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// FolderQueryResponse is the SOQL envelope for folder lookups
type FolderQueryResponse struct {
	TotalSize int            `json:"totalSize"`
	Done      bool           `json:"done"`
	Records   []FolderRecord `json:"records"`
}

// QueryResponse is the generic SOQL envelope
type QueryResponse struct {
	TotalSize int       `json:"totalSize"`
	Done      bool      `json:"done"`
	Records   []SObject `json:"records"`
}

// ReportTypeListEntry is one report type in the catalog listing
type ReportTypeListEntry struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// ReportTypeCategory groups catalog entries under a display label
type ReportTypeCategory struct {
	Label       string                `json:"label"`
	ReportTypes []ReportTypeListEntry `json:"reportTypes"`
}
