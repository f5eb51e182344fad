package correos

import (
	"fmt"

	"github.com/tournevent/correos/pkg/carrier"
)

// Config extends the carrier-neutral configuration with the Correos fields.
type Config struct {
	carrier.Config

	// Code is the Correos labeller code (CodeEtiquetador).
	Code string
	// BankAccount is the account cash-on-delivery amounts are settled to.
	BankAccount string

	// Customs defaults applied to international shipments.
	CustomsShipmentType string // AduanaTipoEnvio
	CustomsCommercial   string // AduanaEnvioComercial
	CustomsClearance    string // AduanaDUAConCorreos
	CustomsDescription  string // AduanaDescripcion
}

// NewConfig returns a Config with the Correos customs defaults applied.
func NewConfig(base carrier.Config) Config {
	base.Method = carrier.MethodCorreos
	return Config{
		Config:              base,
		CustomsShipmentType: "2",
		CustomsCommercial:   "S",
		CustomsClearance:    "N",
	}
}

// Validate enforces the fields that are required when the configuration's
// method selects Correos. Other methods are not this package's concern.
func (c *Config) Validate() error {
	if c.Method != carrier.MethodCorreos {
		return nil
	}
	required := map[string]string{
		"code":                  c.Code,
		"bank account":          c.BankAccount,
		"customs shipment type": c.CustomsShipmentType,
		"customs commercial":    c.CustomsCommercial,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s is required for the correos method",
				carrier.ErrInvalidConfig, name)
		}
	}
	return nil
}

// sessionConfig projects the credentials a picking session is dialed with.
func (c *Config) sessionConfig() SessionConfig {
	return SessionConfig{
		Username: c.Username,
		Password: c.Password,
		Code:     c.Code,
		Timeout:  c.Timeout,
		Debug:    c.Debug,
	}
}
