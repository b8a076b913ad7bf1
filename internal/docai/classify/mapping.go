package classify

// The fixed organisational taxonomy. Closed set; "Unknown" is the only
// value outside it a classification may carry.
var Categories = []string{
	"Engineering Drawings",
	"Maintenance job cards",
	"Incident reports",
	"Vendor invoices",
	"Purchase-order correspondence",
	"Regulatory directives",
	"Environmental-impact studies",
	"Safety circulars",
	"HR policies",
	"Legal opinions",
	"Board meeting minutes",
}

const CategoryUnknown = "Unknown"

type mappingEntry struct {
	fragment string //matched as a substring of the external category path
	category string
}

// externalMapping translates external content-category paths into the
// domain taxonomy. Deliberately many-to-many: one path fragment may feed
// several domain categories and several fragments may feed one category.
// Longer fragments carry more weight via the specificity boost.
var externalMapping = []mappingEntry{
	// Engineering
	{"/Science/Engineering", "Engineering Drawings"},
	{"/Business/Manufacturing", "Engineering Drawings"},
	{"/Science/Technology", "Engineering Drawings"},
	{"/Science/Engineering & Technology", "Engineering Drawings"},
	{"/Arts & Entertainment/Visual Art & Design", "Engineering Drawings"},

	// Maintenance
	{"/Business/Industrial Goods & Services", "Maintenance job cards"},
	{"/Autos & Vehicles/Vehicle Repair & Maintenance", "Maintenance job cards"},
	{"/Business/Business Operations/Management", "Maintenance job cards"},

	// Incident reports
	{"/Law & Government/Public Safety", "Incident reports"},
	{"/Health/Health & Safety", "Incident reports"},
	{"/Law & Government/Legal/Legal Services", "Incident reports"},

	// Vendor invoices
	{"/Finance/Accounting & Auditing", "Vendor invoices"},
	{"/Finance/Financial Documents", "Vendor invoices"},
	{"/Business/Business Operations/Business Plans & Presentations", "Vendor invoices"},

	// Purchase orders
	{"/Business/Business Operations/Supply Chain & Logistics", "Purchase-order correspondence"},
	{"/Finance/Investing/Commodities & Futures Trading", "Purchase-order correspondence"},
	{"/Finance/Financial Planning", "Purchase-order correspondence"},

	// Regulatory
	{"/Law & Government", "Regulatory directives"},
	{"/Law & Government/Government", "Regulatory directives"},
	{"/Law & Government/Legal", "Regulatory directives"},

	// Environmental
	{"/Science/Ecology & Environment", "Environmental-impact studies"},
	{"/Science/Earth Sciences", "Environmental-impact studies"},
	{"/Science/Weather", "Environmental-impact studies"},

	// Safety
	{"/Health/Health & Safety", "Safety circulars"},
	{"/Law & Government/Public Safety", "Safety circulars"},
	{"/Health/Medical Facilities & Services", "Safety circulars"},
	{"/Health/Public Health/Occupational Health & Safety", "Safety circulars"},

	// HR
	{"/Business/Business Operations/Human Resources", "HR policies"},
	{"/Jobs & Education", "HR policies"},
	{"/People & Society", "HR policies"},
	{"/Business & Industrial/Business Operations/Human Resources", "HR policies"},
	{"/Business & Industrial/Business Operations", "HR policies"},

	// Financial
	{"/Finance", "Vendor invoices"},
	{"/News/Business News", "Vendor invoices"},
	{"/Business & Industrial/Accounting & Finance", "Vendor invoices"},
	{"/Business & Industrial", "Vendor invoices"},

	// Legal
	{"/Law & Government/Legal", "Legal opinions"},
	{"/Law & Government/Legal/Legal Services", "Legal opinions"},
	{"/Business/Business Operations/Business Plans & Presentations", "Legal opinions"},

	// Board meetings
	{"/Business/Business Operations/Business Plans & Presentations", "Board meeting minutes"},
	{"/Business/Business Operations/Management", "Board meeting minutes"},
	{"/Finance/Investing/Stocks & Bonds", "Board meeting minutes"},
}

// ambiguousBusinessOps is mapped to both HR and Financial; a local
// keyword vote over the document text breaks the tie with a 1.2x boost.
const ambiguousBusinessOps = "/Business & Industrial/Business Operations"

const tiebreakBoost = 1.2

var hrTiebreakKeywords = []string{
	"human resources", "employee", "leave", "policy", "staff", "personnel",
}

var financialTiebreakKeywords = []string{
	"financial", "revenue", "expense", "budget", "invoice", "payment", "fiscal",
}
