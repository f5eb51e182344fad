package carrier

import (
	"time"

	"github.com/shopspring/decimal"
)

// Method identifies a carrier integration.
type Method string

const (
	MethodCorreos Method = "correos"
)

// WeightUnit represents a weight unit of measure.
type WeightUnit string

const (
	WeightG  WeightUnit = "g"
	WeightKG WeightUnit = "kg"
	WeightLB WeightUnit = "lb"
	WeightOZ WeightUnit = "oz"
)

// Service represents a product/rate class offered by a carrier.
type Service struct {
	Code string
	Name string
}

// Party represents a company or customer party with its contact mechanisms.
type Party struct {
	Name           string
	VATCode        string
	IdentifierCode string
	Phone          string
	Mobile         string
	Email          string
}

// Address represents a postal address.
type Address struct {
	Street      string
	City        string
	Subdivision string // province/state name
	PostalCode  string
	CountryCode string // ISO 3166-1 alpha-2, e.g. "ES", "FR"
	Phone       string
	Email       string

	// OfficeCode is the carrier office associated with this address,
	// required by office-delivery services.
	OfficeCode string
}

// Company is the shipment's owning company.
type Company struct {
	Party     Party
	Addresses []Address
}

// Shipment is the unit of work sent to a carrier. Optional attributes are
// pointers or empty values; the workflows never probe for their presence
// beyond a nil/empty check.
type Shipment struct {
	Code         string
	CustomerName string
	Phone        string
	Mobile       string
	Email        string

	Company          Company
	WarehouseAddress *Address
	DeliveryAddress  Address

	// Origin is the display name of the originating document (sale, order),
	// empty when the shipment has none.
	Origin string

	CarrierNotes   string
	NumberPackages int

	// Weight is the computed shipment weight; nil when the shipment does not
	// expose one. WeightUnit qualifies it and may be empty.
	Weight     *float64
	WeightUnit WeightUnit

	// OutgoingItems is the number of outgoing line items, declared on
	// international shipments.
	OutgoingItems int

	TotalAmount          decimal.Decimal
	CashOnDelivery       bool
	CashOnDeliveryAmount decimal.Decimal

	// Service overrides the carrier and configuration defaults when set.
	Service *Service
	// CarrierService is the default service of the shipment's carrier record.
	CarrierService *Service

	// Result fields, written by the send/print workflows.
	TrackingRef  string
	ServiceUsed  *Service
	Delivery     bool
	Printed      bool
	SendDate     time.Time
	SendEmployee string
}

// SendResult accumulates the outcome of one batch send.
type SendResult struct {
	Sent   []string // codes of successfully sent shipments
	Labels []string // paths of label files written to disk
	Errors []string // human-readable per-shipment error messages
}

// Config holds the carrier-neutral part of a carrier API configuration.
// Carrier integrations embed it and add their method-specific fields.
type Config struct {
	Method   Method
	Username string
	Password string
	Timeout  time.Duration
	Debug    bool

	// Instance discriminates label files written by different deployments
	// sharing one directory.
	Instance string
	// LabelDir is where label files are written; empty means the platform
	// temp directory.
	LabelDir string

	// UseWeight requests weight inclusion in outgoing payloads.
	UseWeight bool
	// WeightUnit is the fallback unit for shipments that carry a weight but
	// no unit of their own.
	WeightUnit WeightUnit
	// APIWeightUnit is the unit the carrier API expects; weights are
	// converted to it before transmission when set.
	APIWeightUnit WeightUnit

	// ReferenceOrigin selects the shipment's origin document name as the
	// customer reference instead of the shipment code.
	ReferenceOrigin bool

	// DefaultService is used when neither the shipment nor its carrier
	// resolve a service.
	DefaultService *Service
}
