package statement

// Profile describes the header names of one creditor statement layout.
// Matching is case-insensitive.
type Profile struct {
	Name       string
	NameCol    string
	RefCol     string
	BalanceCol string
	AmountCol  string
}

func (p Profile) columns() []string {
	return []string{p.NameCol, p.RefCol, p.BalanceCol, p.AmountCol}
}

// profiles are tried in order against every row until one matches.
var profiles = []Profile{
	{
		Name:       "statement",
		NameCol:    "creditor",
		RefCol:     "reference",
		BalanceCol: "balance",
		AmountCol:  "instalment",
	},
	{
		Name:       "bureau",
		NameCol:    "credit provider",
		RefCol:     "account number",
		BalanceCol: "outstanding balance",
		AmountCol:  "monthly instalment",
	},
}
