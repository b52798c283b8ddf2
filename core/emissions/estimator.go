package emissions

// Estimate computes the annual emissions of a plant.
//
// Process emissions are credited by the scrap share of the charge. Negative
// inputs propagate through the arithmetic unchanged.
func Estimate(a PlantActivity, f EmissionFactors) Result {
	b := Breakdown{
		Coal:        a.AnnualCoal * f.Coal,
		Electricity: a.AnnualElectricity * f.Electricity,
		Process:     a.AnnualProduction * f.Process * (1 - a.ScrapPercent/100),
	}
	return Result{Total: b.Coal + b.Electricity + b.Process, Breakdown: b}
}
