package parser

import "bizdoc/internal/domain"

// ExtractTables returns every pipe table in lines, in source order.
func ExtractTables(lines []string) []domain.Table {
	return blockTables(extractTableBlocks(lines))
}
