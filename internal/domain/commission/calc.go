package commission

// BrokerGrossRate is the broker's fixed cut of the effective loan amount.
// Shared by estimate-time and close-time computation so the two can only
// differ in which loan amount they use, never in formula.
const BrokerGrossRate = 0.02

// Calculate returns the gross and partner commission amounts for a loan
// amount and a partner share. partnerPct must already be validated to [0,1]
// at the input boundary; this function does not defend against bad callers.
func Calculate(loanAmount, partnerPct float64) (gross, partner float64) {
	gross = loanAmount * BrokerGrossRate
	return gross, gross * partnerPct
}
