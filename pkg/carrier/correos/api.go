package correos

import (
	"context"
	"sort"
	"time"
)

// Payload is the wire mapping sent to the Correos picking API. Values are
// strings, numbers, booleans or decimals; the transport owns serialization.
type Payload map[string]any

// CreateResult is the outcome of a create-shipment call. The three fields
// are independently optional: the carrier may return a reference and an
// error, or a reference without a label.
type CreateResult struct {
	// Reference is the tracking reference assigned by Correos.
	Reference string
	// Label is the base64-encoded PDF label.
	Label string
	// Error is the error message reported by Correos, if any.
	Error string
}

// PickingAPI is one authenticated session against the Correos picking
// service. Implementations own transport and authentication; sessions are
// not safe for concurrent use.
type PickingAPI interface {
	// Create registers a shipment and returns its tracking reference,
	// label and carrier-reported error, any of which may be absent.
	Create(ctx context.Context, data Payload) (*CreateResult, error)

	// Label fetches the label for an already-registered shipment,
	// addressed by {"CodEnvio": reference}.
	Label(ctx context.Context, data Payload) (string, error)

	// TestConnection runs a no-op connectivity probe and returns the
	// carrier's status message.
	TestConnection(ctx context.Context) (string, error)

	// Close releases the session.
	Close() error
}

// SessionConfig carries the credentials a session is dialed with.
type SessionConfig struct {
	Username string
	Password string
	Code     string // CodeEtiquetador
	Timeout  time.Duration
	Debug    bool
}

// Dialer establishes picking sessions.
type Dialer interface {
	Dial(ctx context.Context, cfg SessionConfig) (PickingAPI, error)
}

// nationalCountries is the set of destination countries Correos treats as
// domestic traffic (no customs, domestic postal-code field).
var nationalCountries = map[string]bool{
	"ES": true,
	"AD": true,
}

// IsNational reports whether Correos handles the country as domestic traffic.
func IsNational(countryCode string) bool {
	return nationalCountries[countryCode]
}

// cashOnDeliveryServices are the product codes that accept reimbursement.
var cashOnDeliveryServices = map[string]bool{
	"S0030": true, // Paq Premium
	"S0132": true, // Paq Estandar
	"S0235": true, // Paq Ligero
}

// officeDeliveryServices are the product codes delivered to a Correos
// office instead of a street address.
var officeDeliveryServices = map[string]bool{
	"S0031": true, // Paq Premium Entrega en Oficina
	"S0133": true, // Paq Estandar Entrega en Oficina
}

func sortedCodes(set map[string]bool) []string {
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
