// Package domain defines core data models, errors and interfaces shared across the app.
// It contains plain types (records and the persisted mapping) and contracts (interfaces) only.
package domain
