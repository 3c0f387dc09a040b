// Package tgfeed extracts structured message records from the public web
// preview of a Telegram channel and paginates backward through its history.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, etree/).
package tgfeed
