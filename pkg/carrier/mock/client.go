// Package mock provides a mock carrier implementation for testing.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/tournevent/correos/pkg/carrier"
)

// Client is a mock carrier for testing.
type Client struct {
	name string

	// Err, when set, is returned by every operation.
	Err error
}

// New creates a new mock carrier.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return c.name
}

// SendShipments marks every shipment as sent with a synthetic tracking
// reference and produces no label files.
func (c *Client) SendShipments(ctx context.Context, shipments []*carrier.Shipment) (*carrier.SendResult, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	now := time.Now()
	result := &carrier.SendResult{}
	for i, sh := range shipments {
		sh.TrackingRef = fmt.Sprintf("%s%09d", c.name, now.UnixNano()%1e6+int64(i))
		sh.Delivery = true
		sh.Printed = true
		sh.SendDate = now
		result.Sent = append(result.Sent, sh.Code)
	}
	return result, nil
}

// PrintLabels marks the shipments as printed and returns no paths.
func (c *Client) PrintLabels(ctx context.Context, shipments []*carrier.Shipment) ([]string, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	for _, sh := range shipments {
		sh.Printed = true
	}
	return nil, nil
}

// TestConnection reports a canned status message.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	return fmt.Sprintf("%s: connection successfully", c.name), nil
}

// GetManifest is unsupported by the mock carrier.
func (c *Client) GetManifest(ctx context.Context, from, to time.Time) ([]byte, error) {
	return nil, carrier.ErrManifestNotAvailable
}
