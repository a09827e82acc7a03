package document

// Column ids. These double as the JSON field names on the wire, so the
// engine, the HTTP client, and the persistence service all speak the same
// identifiers.
const (
	ColStatus         = "status"
	ColUploadDate     = "uploadDate"
	ColEmployer       = "employer"
	ColWages          = "wages"
	ColFedWithholding = "fedWithholding"
	ColPayer          = "payer"
	ColAmount         = "amount"
	ColVendor         = "vendor"
	ColDate           = "date"
	ColPaymentMethod  = "payment_method"
	ColCategory       = "category"
	ColCharityName    = "charityName"
	ColDonationType   = "donationType"
)

// Kind is the value kind of a column, which determines how it is compared,
// validated, and edited.
type Kind int

const (
	KindText Kind = iota
	KindAmount
	KindDate
	KindSelect
)

// Column describes one table column of a document type.
type Column struct {
	ID       string
	Label    string
	Kind     Kind
	Editable bool
	Options  []string // closed value list for KindSelect
}

// ExpenseCategories is the closed list of Schedule C expense categories.
var ExpenseCategories = []string{
	"Advertising",
	"Car and Truck Expenses",
	"Commissions and Fees",
	"Contract Labor",
	"Depletion",
	"Depreciation and Section 179 Expense Deduction",
	"Employee Benefit Programs",
	"Insurance (Other Than Health)",
	"Interest",
	"Legal and Professional Services",
	"Office Expenses",
	"Pension and Profit-Sharing Plans",
	"Rent or Lease",
	"Repairs and Maintenance",
	"Supplies",
	"Taxes and Licenses",
	"Travel",
	"Meals",
	"Utilities",
	"Wages",
	"Other Expenses",
}

// PaymentMethods is the closed list of accepted payment methods.
var PaymentMethods = []string{
	"Credit Card",
	"Debit Card",
	"Cash",
	"Check",
	"Wire Transfer",
	"Other",
}

var statusColumn = Column{
	ID: ColStatus, Label: "Status", Kind: KindSelect, Editable: true,
	Options: Statuses(),
}

var columnsByType = map[Type][]Column{
	TypeW2: {
		{ID: ColEmployer, Label: "Employer", Kind: KindText, Editable: true},
		{ID: ColWages, Label: "Wages", Kind: KindAmount, Editable: true},
		{ID: ColFedWithholding, Label: "Federal Withholding", Kind: KindAmount, Editable: true},
		{ID: ColUploadDate, Label: "Upload Date", Kind: KindDate},
		statusColumn,
	},
	Type1099: {
		{ID: ColPayer, Label: "Payer", Kind: KindText, Editable: true},
		{ID: ColAmount, Label: "Compensation", Kind: KindAmount, Editable: true},
		{ID: ColUploadDate, Label: "Upload Date", Kind: KindDate},
		statusColumn,
	},
	TypeExpense: {
		{ID: ColVendor, Label: "Vendor", Kind: KindText, Editable: true},
		{ID: ColAmount, Label: "Amount", Kind: KindAmount, Editable: true},
		{ID: ColDate, Label: "Date", Kind: KindDate, Editable: true},
		{ID: ColPaymentMethod, Label: "Payment Method", Kind: KindSelect, Editable: true, Options: PaymentMethods},
		{ID: ColCategory, Label: "Expense Type", Kind: KindSelect, Editable: true, Options: ExpenseCategories},
		statusColumn,
	},
	TypeDonation: {
		{ID: ColCharityName, Label: "Charity", Kind: KindText, Editable: true},
		{ID: ColAmount, Label: "Amount", Kind: KindAmount, Editable: true},
		{ID: ColDonationType, Label: "Type", Kind: KindText, Editable: true},
		{ID: ColDate, Label: "Date", Kind: KindDate, Editable: true},
		statusColumn,
	},
}

// Columns returns the column registry for a document type.
func Columns(t Type) []Column {
	return columnsByType[t]
}

// ColumnByID looks up a column of a document type by id.
func ColumnByID(t Type, id string) (Column, bool) {
	for _, c := range columnsByType[t] {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}
