// Package humanszombies models the humans-and-zombies river crossing.
//
// A group of humans and zombies stands on the left bank with a boat.
// Everyone must reach the right bank, under two constraints: zombies
// may never outnumber humans on a mixed boat, and after every crossing
// zombies may not outnumber the humans still present on either bank.
// The boat needs at least one passenger and holds at most its
// capacity.
//
// The package implements the search.State and search.Action contracts,
// so plans are produced by handing Config.Initial to the search driver
// or by calling the Solve convenience wrapper.
package humanszombies
