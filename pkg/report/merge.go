package report

import (
	"github.com/sfbridge/mcp/pkg/models"
)

// mergedInputs is the reconciled, canonicalized view of all the overlapping
// argument shapes.
type mergedInputs struct {
	detailColumns   []string
	reportFilters   []models.ReportFilter
	groupingsDown   []models.ReportGrouping
	groupingsAcross []models.ReportGrouping
}

// filterSource is one candidate supplier of the report filter list. Sources
// are tried in order; the first non-empty one wins and stops the scan.
type filterSource struct {
	name   string
	simple []models.SimpleFilter
	raw    []models.ReportFilter
}

func (s filterSource) empty() bool {
	return len(s.simple) == 0 && len(s.raw) == 0
}

// mergeInputs applies the fixed precedence across the argument shapes:
//
//	columns:  columns > detailColumns (the nested metadata carries no
//	          columns override)
//	filters:  filters > reportFilters > reportMetadata.filters >
//	          reportMetadata.reportFilters
//	groupings: direct argument > nested metadata, per axis
//
// Every field reference in the winning source is validated and
// canonicalized; an unknown field anywhere aborts the call.
func (b *Builder) mergeInputs(ix *FieldIndex, args models.CreateReportArgs) (*mergedInputs, error) {
	merged := &mergedInputs{}

	columnSources := [][]string{args.Columns, args.DetailColumns}
	for _, source := range columnSources {
		if len(source) == 0 {
			continue
		}
		resolved, err := b.validateFields(ix, source, "column")
		if err != nil {
			return nil, err
		}
		merged.detailColumns = resolved
		break
	}
	if merged.detailColumns == nil {
		merged.detailColumns = []string{}
	}

	sources := []filterSource{
		{name: "filters", simple: args.Filters},
		{name: "reportFilters", raw: args.ReportFilters},
	}
	if args.ReportMetadata != nil {
		sources = append(sources,
			filterSource{name: "reportMetadata.filters", simple: args.ReportMetadata.Filters},
			filterSource{name: "reportMetadata.reportFilters", raw: args.ReportMetadata.ReportFilters},
		)
	}
	for _, source := range sources {
		if source.empty() {
			continue
		}
		filters, err := b.convertFilters(ix, source)
		if err != nil {
			return nil, err
		}
		merged.reportFilters = filters
		break
	}

	groupingsDown := args.GroupingsDown
	groupingsAcross := args.GroupingsAcross
	if args.ReportMetadata != nil {
		if len(groupingsDown) == 0 {
			groupingsDown = args.ReportMetadata.GroupingsDown
		}
		if len(groupingsAcross) == 0 {
			groupingsAcross = args.ReportMetadata.GroupingsAcross
		}
	}

	var err error
	merged.groupingsDown, err = b.convertGroupings(ix, groupingsDown, "groupingDown")
	if err != nil {
		return nil, err
	}
	merged.groupingsAcross, err = b.convertGroupings(ix, groupingsAcross, "groupingAcross")
	if err != nil {
		return nil, err
	}

	return merged, nil
}

// convertFilters validates the source's fields as one batch and normalizes
// each operator for its column's data type. Values pass through untouched.
func (b *Builder) convertFilters(ix *FieldIndex, source filterSource) ([]models.ReportFilter, error) {
	fields := make([]string, 0, len(source.simple)+len(source.raw))
	operators := make([]string, 0, cap(fields))
	values := make([]string, 0, cap(fields))

	for _, f := range source.simple {
		fields = append(fields, f.Field)
		operators = append(operators, f.Operator)
		values = append(values, f.Value)
	}
	for _, f := range source.raw {
		fields = append(fields, f.Column)
		operators = append(operators, f.Operator)
		values = append(values, f.Value)
	}

	columns, err := b.validateFields(ix, fields, "filter")
	if err != nil {
		return nil, err
	}

	filters := make([]models.ReportFilter, 0, len(columns))
	for i, column := range columns {
		filters = append(filters, models.ReportFilter{
			Column:   column,
			Operator: ix.ResolveOperator(column, operators[i]),
			Value:    values[i],
		})
	}
	return filters, nil
}

// convertGroupings validates grouping names as one batch and applies the
// per-entry defaults: sortOrder "Asc", dateGranularity "None". A supplied
// sortAggregate is canonicalized when the index knows it, otherwise kept.
func (b *Builder) convertGroupings(ix *FieldIndex, inputs []models.GroupingInput, kind string) ([]models.ReportGrouping, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(inputs))
	for _, g := range inputs {
		names = append(names, g.Name)
	}
	resolved, err := b.validateFields(ix, names, kind)
	if err != nil {
		return nil, err
	}

	groupings := make([]models.ReportGrouping, 0, len(inputs))
	for i, g := range inputs {
		sortOrder := g.SortOrder
		if sortOrder == "" {
			sortOrder = "Asc"
		}
		granularity := g.DateGranularity
		if granularity == "" {
			granularity = "None"
		}
		var aggregate *string
		if g.SortAggregate != "" {
			agg := g.SortAggregate
			if api, ok := ix.Resolve(agg); ok {
				agg = api
			}
			aggregate = &agg
		}
		groupings = append(groupings, models.ReportGrouping{
			Name:            resolved[i],
			SortOrder:       sortOrder,
			SortAggregate:   aggregate,
			DateGranularity: granularity,
		})
	}
	return groupings, nil
}
