package document

// FilterKind is the constraint style of a filter field.
type FilterKind int

const (
	FilterMultiSelect FilterKind = iota
	FilterNumberRange
	FilterDateRange
)

// FilterField binds a named filter constraint to the document column it
// narrows. The names match the filter payloads the UI layer sends
// (wageRange, amountRange, dateRange, ...).
type FilterField struct {
	Name   string
	Label  string
	Kind   FilterKind
	Column string // column id the constraint evaluates against
}

var filterFieldsByType = map[Type][]FilterField{
	TypeW2: {
		{Name: "employer", Label: "Employer", Kind: FilterMultiSelect, Column: ColEmployer},
		{Name: "wageRange", Label: "Wages", Kind: FilterNumberRange, Column: ColWages},
		{Name: "withHoldingRange", Label: "Withholding", Kind: FilterNumberRange, Column: ColFedWithholding},
		{Name: "dateRange", Label: "Date", Kind: FilterDateRange, Column: ColUploadDate},
		{Name: "status", Label: "Status", Kind: FilterMultiSelect, Column: ColStatus},
	},
	Type1099: {
		{Name: "employer", Label: "Payer", Kind: FilterMultiSelect, Column: ColPayer},
		{Name: "amountRange", Label: "Amount", Kind: FilterNumberRange, Column: ColAmount},
		{Name: "dateRange", Label: "Date", Kind: FilterDateRange, Column: ColUploadDate},
		{Name: "status", Label: "Status", Kind: FilterMultiSelect, Column: ColStatus},
	},
	TypeExpense: {
		{Name: "vendor", Label: "Vendor", Kind: FilterMultiSelect, Column: ColVendor},
		{Name: "amountRange", Label: "Amount", Kind: FilterNumberRange, Column: ColAmount},
		{Name: "dateRange", Label: "Date", Kind: FilterDateRange, Column: ColDate},
		{Name: "paymentMethod", Label: "Payment Method", Kind: FilterMultiSelect, Column: ColPaymentMethod},
		{Name: "category", Label: "Expense Type", Kind: FilterMultiSelect, Column: ColCategory},
		{Name: "status", Label: "Status", Kind: FilterMultiSelect, Column: ColStatus},
	},
	TypeDonation: {
		{Name: "charityName", Label: "Charity", Kind: FilterMultiSelect, Column: ColCharityName},
		{Name: "amountRange", Label: "Amount", Kind: FilterNumberRange, Column: ColAmount},
		{Name: "donationType", Label: "Type", Kind: FilterMultiSelect, Column: ColDonationType},
		{Name: "dateRange", Label: "Date", Kind: FilterDateRange, Column: ColDate},
		{Name: "status", Label: "Status", Kind: FilterMultiSelect, Column: ColStatus},
	},
}

// FilterFields returns the filter-field registry for a document type.
func FilterFields(t Type) []FilterField {
	return filterFieldsByType[t]
}
