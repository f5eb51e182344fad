// Package carrier provides an abstraction layer for parcel carrier integrations.
package carrier

import (
	"context"
	"time"
)

// Carrier defines the interface that all carrier integrations must implement.
type Carrier interface {
	// Name returns the carrier method identifier (e.g., "correos").
	Name() string

	// SendShipments sends a batch of shipments to the carrier over a single
	// session. Per-shipment failures are collected in the result, never
	// returned as an error; the error return covers session establishment only.
	SendShipments(ctx context.Context, shipments []*Shipment) (*SendResult, error)

	// PrintLabels re-fetches labels for already-sent shipments and returns
	// the paths of the label files written to disk.
	PrintLabels(ctx context.Context, shipments []*Shipment) ([]string, error)

	// TestConnection probes the carrier API and returns its status message.
	TestConnection(ctx context.Context) (string, error)

	// GetManifest retrieves the carrier manifest for a date range.
	GetManifest(ctx context.Context, from, to time.Time) ([]byte, error)
}
