// Package dropwatch discovers gofile.io share links published in social
// media timelines and RSS feeds, verifies that each link is still alive, and
// forwards the live ones to a durable sink. Links that have been handled are
// recorded in a ledger so that no link is ever probed twice.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, gofeed/, sqlite/).
package dropwatch
