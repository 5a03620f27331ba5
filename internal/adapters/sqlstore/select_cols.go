package sqlstore

import "strings"

// Order matches scanLink.
var sqlLinkCols = []string{
	sqlColID,
	sqlColCode,
	sqlColTargetURL,
	sqlColTotalClicks,
	sqlColLastClickedAt,
	sqlColCreatedAt,
	sqlColUpdatedAt,
}

func qualify(alias, col string) string {
	return alias + "." + col
}

func qualifiedLinkCols() []string {
	out := make([]string, 0, len(sqlLinkCols))
	for _, col := range sqlLinkCols {
		out = append(out, qualify(sqlAliasLinks, col))
	}

	return out
}

func returningLinkCols() string {
	return "RETURNING " + strings.Join(sqlLinkCols, ", ")
}
