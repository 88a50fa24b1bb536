// Package domain contains the core entities shared across the site safety
// scanner: users, subscriptions and their plans, scan targets, analysis
// verdicts and persisted scan records. The types carry no infrastructure
// concerns so storage, transport and analysis packages can all depend on them.
package domain
