// Package descriptions holds the long-form help text the MCP tools are
// registered with.
package descriptions

import "sort"

// Tool names
const (
	ToolExtractIP  = "esic_extract_ip"
	ToolParseRow   = "esic_parse_row"
	ToolServerInfo = "pdf_server_info"
)

const (
	ExtractIPDescription = `Find the contribution rows of insured persons in an ESIC monthly contribution statement PDF.

**When to use:** You have a statement PDF and need the wage and contribution rows of specific employees, looked up by 10-digit IP number or by name.

**Examples:**
• Single employee: "Get the row for IP 3100000001 from statements/march.pdf"
• Several employees: "Find ramesh | sita | 3100000007 in march.pdf and save an xlsx report"
• Audit trail: "Extract these IP numbers from every page and tell me which were not found"

**Common workflows:**
1. Lookup: pdf_server_info → pick a statement → esic_extract_ip with the terms
2. Reporting: esic_extract_ip with output_path and format → hand the report over
3. Troubleshooting: a row looks wrong → copy its text → esic_parse_row

**Best practices:** Terms match the IP number or the full name exactly, ignoring case and surrounding spaces. Rows from all pages are combined and serials are renumbered in reports.`

	ParseRowDescription = `Reconstruct one flattened statement row into its eight fields.

**When to use:** Checking how a row whose cells ran together is split into SNo, disability flag, IP number, name, days, wages, contribution and reason.

**Examples:**
• Name and reason merged: "Parse '12 No 3100000012 ANIL KUMAR On Leave 0 0 0'"
• Missing amounts: "Parse '3 Y 3100000003 MOHAN 30'"

**Common workflows:**
1. Verification: esic_extract_ip returns an odd row → esic_parse_row on the raw text → compare fields

**Best practices:** The row must contain a 10-digit IP number. Numbers after it are read from the end: contribution, then wages, then days.`

	ServerInfoDescription = `Get server configuration, the statements available for extraction and usage guidance.

**When to use:** First call in a session, or when you need to know which statement PDFs can be read and what the limits are.

**Examples:**
• Discovery: "Which statements are available?"
• Limits: "What is the maximum file size and term delimiter?"

**Best practices:** Paths returned here can be passed straight to esic_extract_ip.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	ToolExtractIP:  ExtractIPDescription,
	ToolParseRow:   ParseRowDescription,
	ToolServerInfo: ServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the sorted names of all described tools
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
