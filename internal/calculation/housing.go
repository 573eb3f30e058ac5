package calculation

import (
	"math"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// ComputeMonthlyPI returns the level monthly principal-and-interest payment.
// A loan amount at or below zero costs nothing; a zero rate divides the loan
// evenly across the payments.
func ComputeMonthlyPI(loanAmount, apr, termYears float64) float64 {
	if loanAmount <= 0 {
		return 0
	}

	n := termYears * 12
	r := apr / 12

	if r == 0 {
		return loanAmount / n
	}

	factor := math.Pow(1+r, n)
	return loanAmount * (r * factor) / (factor - 1)
}

// ComputeHousingCosts returns the monthly cost breakdown for a home.
// Property tax, insurance and maintenance are annual rates of the price.
func ComputeHousingCosts(
	homePrice float64,
	downPaymentPct float64,
	apr float64,
	termYears float64,
	propertyTaxRateAnnual float64,
	insuranceRateAnnual float64,
	maintenanceRateAnnual float64,
	hoaMonthly float64,
) domain.HousingResult {
	loanAmount := homePrice * (1 - downPaymentPct)
	pi := ComputeMonthlyPI(loanAmount, apr, termYears)
	propertyTax := homePrice * propertyTaxRateAnnual / 12
	insurance := homePrice * insuranceRateAnnual / 12
	maintenance := homePrice * maintenanceRateAnnual / 12

	return domain.HousingResult{
		LoanAmount:          loanAmount,
		PIMonthly:           pi,
		PropertyTaxMonthly:  propertyTax,
		InsuranceMonthly:    insurance,
		MaintenanceMonthly:  maintenance,
		HOAMonthly:          hoaMonthly,
		HousingTotalMonthly: pi + propertyTax + insurance + maintenance + hoaMonthly,
	}
}

// housingFor runs ComputeHousingCosts with the home fields of a scenario
func housingFor(in domain.ScenarioInputs) domain.HousingResult {
	return ComputeHousingCosts(
		in.HomePrice,
		in.DownPaymentPct,
		in.APR,
		in.TermYears,
		in.PropertyTaxRateAnnual,
		in.InsuranceRateAnnual,
		in.MaintenanceRateAnnual,
		in.HOAMonthly,
	)
}
