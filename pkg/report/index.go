package report

import (
	"strings"

	"github.com/sfbridge/mcp/pkg/models"
)

// FieldIndex maps loosely-specified field identifiers (labels or API names,
// any case) to the canonical API names of one report type. It is built fresh
// for every call from a live describe; nothing is cached across calls.
type FieldIndex struct {
	byKey     map[string]string // uppercased label or apiName -> canonical apiName
	dataTypes map[string]string // canonical apiName -> data type
	apiNames  []string          // canonical apiNames in catalog order
	operators map[string][]models.FilterOperator
}

func newFieldIndex() *FieldIndex {
	return &FieldIndex{
		byKey:     make(map[string]string),
		dataTypes: make(map[string]string),
	}
}

// Empty reports whether the index has no fields. An empty index disables
// validation entirely: identifiers pass through unresolved.
func (ix *FieldIndex) Empty() bool {
	return len(ix.byKey) == 0
}

// FieldNames returns the canonical API names in catalog order.
func (ix *FieldIndex) FieldNames() []string {
	return append([]string(nil), ix.apiNames...)
}

// DataType returns the data type recorded for a canonical API name, or ""
// when unknown.
func (ix *FieldIndex) DataType(apiName string) string {
	return ix.dataTypes[apiName]
}

// register adds one catalog entry. Entries registered earlier always win;
// the detail catalog is indexed before the category catalogs, which makes
// it the higher-priority source.
func (ix *FieldIndex) register(apiName, label, dataType string) {
	if _, seen := ix.dataTypes[apiName]; !seen {
		ix.dataTypes[apiName] = dataType
		ix.apiNames = append(ix.apiNames, apiName)
	}
	upperAPI := strings.ToUpper(apiName)
	if _, ok := ix.byKey[upperAPI]; !ok {
		ix.byKey[upperAPI] = apiName
	}
	if label == "" {
		return
	}
	upperLabel := strings.ToUpper(label)
	if _, ok := ix.byKey[upperLabel]; !ok {
		ix.byKey[upperLabel] = apiName
	}
}

// Resolve maps an identifier to its canonical API name: exact key first,
// then the uppercased key, then a linear scan comparing uppercased keys.
func (ix *FieldIndex) Resolve(name string) (string, bool) {
	if api, ok := ix.byKey[name]; ok {
		return api, true
	}
	upper := strings.ToUpper(name)
	if api, ok := ix.byKey[upper]; ok {
		return api, true
	}
	for key, api := range ix.byKey {
		if strings.ToUpper(key) == upper {
			return api, true
		}
	}
	return "", false
}

// indexDescribe builds the index from a describe response: the detail
// column catalog first, then each category's catalog.
func indexDescribe(describe *models.ReportTypeDescribe) *FieldIndex {
	ix := newFieldIndex()

	detail := describe.ReportExtendedMetadata.DetailColumnInfo
	for _, api := range detail.Keys {
		info := detail.Entries[api]
		ix.register(api, info.Label, info.DataType)
	}

	for _, category := range describe.ReportTypeMetadata.Categories {
		for _, api := range category.Columns.Keys {
			info := category.Columns.Entries[api]
			ix.register(api, info.Label, info.DataType)
		}
	}

	ix.operators = describe.ReportTypeMetadata.DataTypeFilterOperatorMap
	return ix
}
