package engine

// DynamicFamily describes a header family sharing a base name and an
// incrementing numeric suffix of run-determined size, e.g. "Award #1",
// "Award #2". Format carries a single %d verb; Label is the reporting
// name with the suffix position shown as X.
type DynamicFamily struct {
	Label  string
	Format string
}

// QuoteWinTemplate holds the embedded template configuration for Quote
// Win workbooks: fixed row positions plus the required header
// vocabulary. It is data consumed by the rule catalog at construction
// time, not behavior.
type QuoteWinTemplate struct {
	SummaryHeaderRow   int
	HeaderRow          int
	DataStartRow       int
	ProjectRow         int
	ProjectValueColumn int
	PartNumberHeader   string

	SummaryStaticHeaders   []string
	SummaryDynamicFamilies []DynamicFamily
	StaticHeaders          []string
	DynamicFamilies        []DynamicFamily
}

// DefaultQuoteWinTemplate returns the embedded Quote Win template:
// summary headers on row 12, main headers on row 16, data immediately
// below, project name on row 3.
func DefaultQuoteWinTemplate() QuoteWinTemplate {
	return QuoteWinTemplate{
		SummaryHeaderRow:   12,
		HeaderRow:          16,
		DataStartRow:       17,
		ProjectRow:         3,
		ProjectValueColumn: 4,
		PartNumberHeader:   "Part Number",

		SummaryStaticHeaders: []string{
			"Group By Field",
		},
		SummaryDynamicFamilies: []DynamicFamily{
			{Label: "Ext Vol (Splits) #X", Format: "Ext Vol (Splits) #%d"},
			{Label: "% Ext Vol Qty #X", Format: "%% Ext Vol Qty #%d"},
			{Label: "Ext Part Vol Cost (Splits) #X (Conv.)", Format: "Ext Part Vol Cost (Splits) #%d (Conv.)"},
			{Label: "% Ext Vol Cost (Splits) #X", Format: "%% Ext Vol Cost (Splits) #%d"},
		},
		StaticHeaders: []string{
			"Project",
			"Part Number",
			"Part Description",
			"Commodity",
			"Mfg Name",
			"Mfg Part Number",
			"Currency (Original)",
			"Supp Name",
			"Pkg Qty",
			"MOQ",
			"Lead Time",
			"Part Qty",
			"Corrected MPN",
			"Long Comment",
			"Price Type",
			"No Bid Reason",
			"Short Comment",
			"NCNR",
			"RFQ Number",
			"Eff Date",
			"Exp Date",
			"Quote Validity",
			"Part Status",
		},
		DynamicFamilies: []DynamicFamily{
			{Label: "Cost #X (Conv.)", Format: "Cost #%d (Conv.)"},
			{Label: "Price (Original) #X", Format: "Price (Original) #%d"},
			{Label: "Awarded Volume #X", Format: "Awarded Volume #%d"},
			{Label: "Award #X", Format: "Award #%d"},
			{Label: "Source #X", Format: "Source #%d"},
		},
	}
}

// BOMTemplate holds sheet names and patterns for the BOM Matrix rule
// set. The CBOM and Ex Inv patterns carry one capture group for the
// volume-level number embedded in the sheet name.
type BOMTemplate struct {
	CBOMSheetPattern  string
	ExInvSheetPattern string
	MatrixSheet       string
	NotesSheet        string
	AClassSheet       string
	SummarySheet      string
	ProtoSheet        string
	ExInvProtoSheet   string
	LeadTimeSheet     string

	// HeaderRow is the main header row on BOM MATRIX (the template
	// variant places it one row lower than Quote Win's).
	HeaderRow int

	// HeaderSearchRows bounds header scans on sheets where the header
	// row floats rather than sitting at a fixed position.
	HeaderSearchRows int

	// IsDataColumn is the fixed column (AF) carrying the Is Data flag
	// in CBOM sheets.
	IsDataColumn int
}

// DefaultBOMTemplate returns the embedded BOM Matrix template.
func DefaultBOMTemplate() BOMTemplate {
	return BOMTemplate{
		CBOMSheetPattern:  `^7\.0 CBOM VL-(\d+)$`,
		ExInvSheetPattern: `^Ex Inv VL-(\d+)$`,
		MatrixSheet:       "BOM MATRIX",
		NotesSheet:        "Missing Notes",
		AClassSheet:       "A CLASS PARTS",
		SummarySheet:      "Summary",
		ProtoSheet:        "7.0 CBOM Proto",
		ExInvProtoSheet:   "Ex Inv VL-proto",
		LeadTimeSheet:     "Lead Time (FG Wise)",
		HeaderRow:         17,
		HeaderSearchRows:  30,
		IsDataColumn:      32,
	}
}
