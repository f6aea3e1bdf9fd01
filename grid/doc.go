// Package grid maps symbol streams onto flat pixel buffers and plans
// the dimensions those buffers need.
//
// A Grid is width*height pixels of 3 or 4 byte channels in row-major
// order. Mapper.Layout writes each symbol as one channel intensity, the
// interval anchor for data symbols and zero for filler; Mapper.Extract
// reads them back, treating pixels whose first three channels are all
// filler-valued as pure filler. Planner chooses dimensions for a
// payload, either adaptively from its symbol count or from a ladder of
// fixed square presets.
package grid
