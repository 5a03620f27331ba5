package sqlstore

const (
	sqlTableLinks = "links"
	sqlAliasLinks = "l"

	sqlColID            = "id"
	sqlColCode          = "code"
	sqlColTargetURL     = "target_url"
	sqlColTotalClicks   = "total_clicks"
	sqlColLastClickedAt = "last_clicked_at"
	sqlColCreatedAt     = "created_at"
	sqlColUpdatedAt     = "updated_at"

	likeEscapeChar = `\`
)
