// Package marker holds the Marker entity, a classification tag that vendors,
// zones and deliveries refer to by id.
package marker
