package report

import "context"

// resolveFolder picks the target report folder: exact id when given, else
// exact name when given, else the first report folder in the org. Every
// outcome here is soft — lookup failures and empty orgs leave the folder
// reference absent and assembly continues; the creation call surfaces any
// resulting problem.
func (b *Builder) resolveFolder(ctx context.Context, folderID, folderName, sessionToken string) string {
	if folderID != "" {
		record, err := b.api.GetReportFolderByID(ctx, folderID, sessionToken)
		if err != nil {
			b.logger.Warn().Err(err).Str("folderId", folderID).Msg("folder lookup by id failed")
		} else if record != nil {
			b.logger.Debug().Str("folderId", record.ID).Msg("folder resolved by id")
			return record.ID
		}
	} else if folderName != "" {
		record, err := b.api.GetReportFolderByName(ctx, folderName, sessionToken)
		if err != nil {
			b.logger.Warn().Err(err).Str("folderName", folderName).Msg("folder lookup by name failed")
		} else if record != nil {
			b.logger.Debug().Str("folderId", record.ID).Str("folderName", record.Name).Msg("folder resolved by name")
			return record.ID
		}
	}

	record, err := b.api.GetAnyReportFolder(ctx, sessionToken)
	if err != nil {
		b.logger.Warn().Err(err).Msg("fallback folder lookup failed")
		return ""
	}
	if record == nil {
		b.logger.Debug().Msg("no report folders in org; proceeding without folder")
		return ""
	}
	b.logger.Debug().Str("folderId", record.ID).Msg("folder resolved by fallback")
	return record.ID
}
