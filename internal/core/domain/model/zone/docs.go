// Package zone holds the Zone entity.
//
// A zone knows nothing about the entries located in it; entries point at their
// zone by id and are looked up by that foreign key.
package zone
