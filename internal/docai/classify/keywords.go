package classify

// categoryKeywords drives the in-process fallback scorer. Declaration
// order matters: ties between equal scores resolve to the earlier entry.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Engineering Drawings", []string{
		"drawing", "blueprint", "schematic", "technical drawing", "dimensions",
		"CAD", "isometric", "mechanical drawing", "electrical diagram",
	}},
	{"Maintenance job cards", []string{
		"job card", "work order", "service report", "maintenance task", "inspection report",
	}},
	{"Incident reports", []string{
		"incident", "accident", "report", "safety incident", "investigation", "root cause",
	}},
	{"Vendor invoices", []string{
		"invoice", "bill", "payment", "vendor", "supplier", "invoice number", "billing",
	}},
	{"Purchase-order correspondence", []string{
		"purchase order", "PO", "order confirmation", "requisition", "procurement",
	}},
	{"Regulatory directives", []string{
		"regulation", "compliance", "directive", "regulatory requirement", "statutory",
	}},
	{"Environmental-impact studies", []string{
		"environmental impact", "ecological", "assessment", "EIA", "sustainability",
	}},
	{"Safety circulars", []string{
		"safety", "circular", "safety notice", "alert", "safety bulletin", "warning",
	}},
	{"HR policies", []string{
		"HR", "human resources", "policy", "employee", "personnel", "employment",
	}},
	{"Legal opinions", []string{
		"legal opinion", "legal advice", "counsel", "attorney", "legal analysis",
	}},
	{"Board meeting minutes", []string{
		"board meeting", "minutes", "resolution", "board of directors", "meeting agenda",
	}},
}
