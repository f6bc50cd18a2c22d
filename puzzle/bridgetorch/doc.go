// Package bridgetorch models the bridge-and-torch crossing.
//
// People with different walking speeds cross a narrow bridge at night.
// The bridge holds a limited party, every crossing needs the torch, and
// a party moves at its slowest member's pace. The torch burns one unit
// of fuel per minute, so a move is only legal while enough fuel remains
// for it. Everyone starts on the left and must reach the right side.
//
// The package implements the search.State and search.Action contracts,
// so plans are produced by handing Config.Initial to the search driver
// or by calling the Solve convenience wrapper.
package bridgetorch
