package report

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sfbridge/mcp/pkg/models"
)

// PlatformAPI is the slice of the Salesforce client the engine consumes.
type PlatformAPI interface {
	DescribeReportType(ctx context.Context, reportType string, sessionToken string) (*models.ReportTypeDescribe, error)
	GetReportFolderByID(ctx context.Context, id string, sessionToken string) (*models.FolderRecord, error)
	GetReportFolderByName(ctx context.Context, name string, sessionToken string) (*models.FolderRecord, error)
	GetAnyReportFolder(ctx context.Context, sessionToken string) (*models.FolderRecord, error)
}

// Builder resolves loosely-specified report arguments against the live
// report type schema and assembles the canonical report document. One
// Build call performs at most two remote calls (schema describe, folder
// lookup); submission of the document happens elsewhere.
type Builder struct {
	api    PlatformAPI
	logger zerolog.Logger
}

func NewBuilder(api PlatformAPI, logger zerolog.Logger) *Builder {
	return &Builder{api: api, logger: logger}
}

// Build produces the assembled report document. SchemaFetchError and
// ValidationError abort the call; folder resolution gaps do not.
func (b *Builder) Build(ctx context.Context, args models.CreateReportArgs, sessionToken string) (*models.ReportMetadata, error) {
	reportType := b.resolveReportType(args)

	ix, err := b.buildFieldIndex(ctx, reportType, sessionToken)
	if err != nil {
		return nil, err
	}

	merged, err := b.mergeInputs(ix, args)
	if err != nil {
		return nil, err
	}

	folderID := b.resolveFolder(ctx, args.FolderID, args.FolderName, sessionToken)

	doc := b.assemble(args, reportType, folderID, merged)

	b.logger.Debug().
		Str("name", doc.Name).
		Str("developerName", doc.DeveloperName).
		Str("reportType", doc.ReportType.Type).
		Str("folderId", doc.FolderID).
		Int("detailColumns", len(doc.DetailColumns)).
		Int("reportFilters", len(doc.ReportFilters)).
		Msg("report document assembled")

	return doc, nil
}

// resolveReportType picks the report type descriptor: the direct argument,
// else the nested metadata's, else one derived from the object name using
// the <object>List / <object>s convention.
func (b *Builder) resolveReportType(args models.CreateReportArgs) models.ReportTypeRef {
	if args.ReportType != nil && args.ReportType.Type != "" {
		return *args.ReportType
	}
	if args.ReportMetadata != nil && args.ReportMetadata.ReportType != nil && args.ReportMetadata.ReportType.Type != "" {
		return *args.ReportMetadata.ReportType
	}
	if args.ObjectName != "" {
		return models.ReportTypeRef{
			Type:  args.ObjectName + "List",
			Label: args.ObjectName + "s",
		}
	}
	return models.ReportTypeRef{}
}

// buildFieldIndex fetches the describe for the report type and indexes it.
// Without a report type there is nothing to fetch and validation is skipped
// downstream.
func (b *Builder) buildFieldIndex(ctx context.Context, reportType models.ReportTypeRef, sessionToken string) (*FieldIndex, error) {
	if reportType.Type == "" {
		return newFieldIndex(), nil
	}

	b.logger.Debug().Str("reportType", reportType.Type).Msg("fetching report type schema")

	describe, err := b.api.DescribeReportType(ctx, reportType.Type, sessionToken)
	if err != nil {
		return nil, &SchemaFetchError{ReportType: reportType.Type, Err: err}
	}

	ix := indexDescribe(describe)

	b.logger.Debug().
		Str("reportType", reportType.Type).
		Int("fields", len(ix.apiNames)).
		Int("operatorTypes", len(ix.operators)).
		Msg("report type schema indexed")

	return ix, nil
}

// validateFields canonicalizes one batch of field identifiers. The batch is
// all-or-nothing: a single unknown identifier fails the whole batch.
func (b *Builder) validateFields(ix *FieldIndex, names []string, kind string) ([]string, error) {
	if ix.Empty() {
		return append([]string(nil), names...), nil
	}
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		api, ok := ix.Resolve(name)
		if !ok {
			b.logger.Debug().Str("kind", kind).Str("field", name).Msg("field rejected")
			return nil, &ValidationError{Field: name, Allowed: ix.FieldNames()}
		}
		b.logger.Debug().Str("kind", kind).Str("field", name).Str("resolved", api).Msg("field resolved")
		resolved = append(resolved, api)
	}
	return resolved, nil
}
