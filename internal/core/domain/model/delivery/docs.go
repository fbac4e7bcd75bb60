// Package delivery contains the Delivery aggregate and its status state machine.
//
// A delivery is created Pending, approved once, and moves to Processing and
// Finished as its entries are processed. Entries are not held by the aggregate;
// they reference it by id.
package delivery
