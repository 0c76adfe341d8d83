package esic

// BuildTable reconstructs the structured rows of one raw table. Rows without
// a pivot token are skipped; a table with no surviving rows reports false.
func BuildTable(raw RawTable) (StructuredTable, bool) {
	table := NewTable()
	for _, rawRow := range raw {
		tokens := FlattenRow(rawRow)
		if len(tokens) == 0 {
			continue
		}
		row, ok := ParseTokens(tokens)
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if table.Len() == 0 {
		return StructuredTable{}, false
	}
	return table, true
}

// BuildTables builds every raw table, dropping the ones without data rows.
func BuildTables(raws []RawTable) []StructuredTable {
	tables := make([]StructuredTable, 0, len(raws))
	for _, raw := range raws {
		if table, ok := BuildTable(raw); ok {
			tables = append(tables, table)
		}
	}
	return tables
}
