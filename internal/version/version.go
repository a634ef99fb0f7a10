// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Results browser TUI, JSON export, Horizons cross-check in verify mode
// 0.2.0 - Grid and ancient-site search, first-match/exhaustive modes
// 0.1.0 - Initial release: eclipse enumeration, pair search, visibility predicates
