// Package emissions estimates the annual CO2 footprint of a steel plant and
// projects the effect of mitigation actions.
//
// Every function in this package is pure: inputs are passed by value, nothing
// is cached and no input validation is performed. Range checks on plant
// activity belong to the caller.
//
//	res := emissions.Estimate(activity, emissions.DefaultFactors())
//	post, reduction := emissions.ApplyInterventions(res.Total, emissions.FlagsOf(emissions.ActionScrap))
package emissions
