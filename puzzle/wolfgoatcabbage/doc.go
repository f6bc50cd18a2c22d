// Package wolfgoatcabbage models the wolf, goat and cabbage crossing,
// generalized to counts.
//
// Farmers ferry wolves, goats and cabbages from the left bank to the
// right. The boat needs a farmer to steer and holds at most its
// capacity. Whenever a bank is left without a farmer, a wolf eats any
// goat present and a goat eats any cabbage, so such configurations are
// never entered.
//
// The package implements the search.State and search.Action contracts,
// so plans are produced by handing Config.Initial to the search driver
// or by calling the Solve convenience wrapper.
package wolfgoatcabbage
