package correos

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/correos/pkg/carrier"
)

// MockDialer is a mock session factory for testing. Every session it dials
// shares the mock's hooks, and released sessions are counted so tests can
// assert the scoped-session discipline.
type MockDialer struct {
	SimulateDialErrors bool

	// OnDial replaces the default session when set.
	OnDial func(ctx context.Context, cfg SessionConfig) (PickingAPI, error)

	Dialed []SessionConfig
	API    *MockPickingAPI
}

// NewMockDialer creates a mock dialer with a default mock session.
func NewMockDialer() *MockDialer {
	return &MockDialer{API: NewMockPickingAPI()}
}

// Dial establishes a mock session.
func (d *MockDialer) Dial(ctx context.Context, cfg SessionConfig) (PickingAPI, error) {
	if d.SimulateDialErrors {
		return nil, carrier.NewError(carrierName, "DIAL_ERROR", "simulated dial error")
	}
	if d.OnDial != nil {
		return d.OnDial(ctx, cfg)
	}
	d.Dialed = append(d.Dialed, cfg)
	return d.API, nil
}

// MockPickingAPI is a mock implementation of PickingAPI for testing.
type MockPickingAPI struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCreate         func(ctx context.Context, data Payload) (*CreateResult, error)
	OnLabel          func(ctx context.Context, data Payload) (string, error)
	OnTestConnection func(ctx context.Context) (string, error)

	Created    []Payload
	CloseCalls int
}

// NewMockPickingAPI creates a new mock picking API with default behavior.
func NewMockPickingAPI() *MockPickingAPI {
	return &MockPickingAPI{}
}

// Create registers a mock shipment and returns a synthetic reference and a
// small base64 label.
func (m *MockPickingAPI) Create(ctx context.Context, data Payload) (*CreateResult, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return nil, carrier.NewError(carrierName, "MOCK_ERROR", "simulated API error")
	}
	if m.OnCreate != nil {
		return m.OnCreate(ctx, data)
	}

	m.Created = append(m.Created, data)
	return &CreateResult{
		Reference: "PQ" + uuid.New().String()[:8],
		Label:     MockLabel(),
	}, nil
}

// Label returns a mock label for the referenced shipment.
func (m *MockPickingAPI) Label(ctx context.Context, data Payload) (string, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return "", carrier.NewError(carrierName, "MOCK_ERROR", "simulated API error")
	}
	if m.OnLabel != nil {
		return m.OnLabel(ctx, data)
	}
	return MockLabel(), nil
}

// TestConnection reports a canned probe message.
func (m *MockPickingAPI) TestConnection(ctx context.Context) (string, error) {
	if m.SimulateErrors {
		return "", carrier.NewError(carrierName, "MOCK_ERROR", "simulated API error")
	}
	if m.OnTestConnection != nil {
		return m.OnTestConnection(ctx)
	}
	return "Connection successfully", nil
}

// Close records the session release.
func (m *MockPickingAPI) Close() error {
	m.CloseCalls++
	return nil
}

// MockLabel returns a base64-encoded placeholder PDF.
func MockLabel() string {
	pdf := fmt.Sprintf("%%PDF-1.4\n%% mock correos label %d\n%%%%EOF\n", time.Now().UnixNano())
	return base64.StdEncoding.EncodeToString([]byte(pdf))
}
