package parser

import "bizdoc/internal/domain"

// tableBlock is an extracted table together with the index of the line it
// starts on.
type tableBlock struct {
	rows      domain.Table
	startLine int
}

// extractTableBlocks groups consecutive pipe rows into tables, in source
// order. Separator rows are discarded; blocks left without rows are skipped.
func extractTableBlocks(lines []string) []tableBlock {
	var (
		blocks  []tableBlock
		pending []string
		start   int
	)

	closeBlock := func() {
		if len(pending) == 0 {
			return
		}
		if rows := parseTable(pending); len(rows) > 0 {
			blocks = append(blocks, tableBlock{rows: rows, startLine: start})
		}
		pending = nil
	}

	for i, line := range lines {
		if !isTableRow(line) {
			closeBlock()
			continue
		}
		if len(pending) == 0 {
			start = i
		}
		pending = append(pending, line)
	}
	closeBlock()
	return blocks
}

func parseTable(lines []string) domain.Table {
	var table domain.Table
	for _, line := range lines {
		if isSeparatorRow(line) {
			continue
		}
		if cells := splitRow(line); len(cells) > 0 {
			table = append(table, cells)
		}
	}
	return table
}

// blockTables returns the rows of every block, in source order.
func blockTables(blocks []tableBlock) []domain.Table {
	tables := make([]domain.Table, 0, len(blocks))
	for _, b := range blocks {
		tables = append(tables, b.rows)
	}
	return tables
}
