package output

// DefaultAssumptions lists the modeling simplifications printed under a
// scenario breakdown.
var DefaultAssumptions = []string{
	"Federal brackets, standard deduction and payroll thresholds come from one tax year",
	"No itemized deductions or credits; mortgage interest is not deducted",
	"State income tax is a flat effective rate on wages after pre-tax deductions",
	"Fixed-rate, fully amortizing mortgage; property tax, insurance and maintenance scale with price",
}
