package report

import (
	"regexp"

	"github.com/sfbridge/mcp/pkg/models"
)

var developerNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

const (
	defaultReportFormat = "TABULAR"
	defaultScope        = "organization"
)

// deriveDeveloperName turns a display name into a valid developer name by
// replacing every character outside [A-Za-z0-9_] with an underscore.
func deriveDeveloperName(name string) string {
	return developerNameSanitizer.ReplaceAllString(name, "_")
}

// assemble folds the resolved folder, report type and merged inputs into
// the final document. Pass-through sections are copied verbatim when
// present; still-missing required attributes are derived deterministically.
// No network calls happen here.
func (b *Builder) assemble(args models.CreateReportArgs, reportType models.ReportTypeRef, folderID string, merged *mergedInputs) *models.ReportMetadata {
	meta := args.ReportMetadata
	if meta == nil {
		meta = &models.ReportMetadataInput{}
	}

	name := args.ReportName
	if name == "" {
		name = meta.Name
	}

	developerName := args.DeveloperName
	if developerName == "" {
		developerName = meta.DeveloperName
	}
	if developerName == "" {
		developerName = deriveDeveloperName(name)
	}

	format := args.Format
	if format == "" {
		format = meta.ReportFormat
	}
	if format == "" {
		format = defaultReportFormat
	}

	scope := args.Scope
	if scope == "" {
		scope = meta.Scope
	}
	if scope == "" {
		scope = defaultScope
	}

	doc := &models.ReportMetadata{
		Name:            name,
		DeveloperName:   developerName,
		ReportType:      reportType,
		FolderID:        folderID,
		ReportFormat:    format,
		Scope:           scope,
		DetailColumns:   merged.detailColumns,
		ReportFilters:   merged.reportFilters,
		GroupingsDown:   merged.groupingsDown,
		GroupingsAcross: merged.groupingsAcross,
	}

	doc.Aggregates = firstStrings(args.Aggregates, meta.Aggregates)
	doc.ReportBooleanFilter = firstStringPtr(args.ReportBooleanFilter, meta.ReportBooleanFilter)

	doc.ShowGrandTotal = firstBool(args.ShowGrandTotal, meta.ShowGrandTotal)
	doc.ShowSubtotals = firstBool(args.ShowSubtotals, meta.ShowSubtotals)
	doc.HasDetailRows = firstBool(args.HasDetailRows, meta.HasDetailRows)
	doc.HasRecordCount = firstBool(args.HasRecordCount, meta.HasRecordCount)

	doc.Currency = firstString(args.Currency, meta.Currency)
	doc.Division = firstString(args.Division, meta.Division)

	doc.Chart = firstMap(args.Chart, meta.Chart)
	doc.StandardDateFilter = firstMap(args.StandardDateFilter, meta.StandardDateFilter)
	doc.PresentationOptions = firstMap(args.PresentationOptions, meta.PresentationOptions)
	if len(args.CrossFilters) > 0 {
		doc.CrossFilters = args.CrossFilters
	} else {
		doc.CrossFilters = meta.CrossFilters
	}

	return doc
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstStrings(values ...[]string) []string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

func firstStringPtr(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstBool(values ...*bool) *bool {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstMap(values ...map[string]interface{}) map[string]interface{} {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
