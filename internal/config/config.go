package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tournevent/correos/pkg/carrier"
	"github.com/tournevent/correos/pkg/carrier/correos"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Instance discriminates label files across deployments sharing storage.
	Instance string `envconfig:"INSTANCE" default:"correos"`
	LabelDir string `envconfig:"LABEL_DIR" default:""`

	// Correos credentials
	CorreosUsername string        `envconfig:"CORREOS_USERNAME"`
	CorreosPassword string        `envconfig:"CORREOS_PASSWORD"`
	CorreosCode     string        `envconfig:"CORREOS_CODE"`
	CorreosTimeout  time.Duration `envconfig:"CORREOS_TIMEOUT" default:"30s"`
	CorreosDebug    bool          `envconfig:"CORREOS_DEBUG" default:"false"`
	CorreosUseMock  bool          `envconfig:"CORREOS_USE_MOCK" default:"false"`

	// Cash on delivery settlement account
	CorreosBankAccount string `envconfig:"CORREOS_CC"`

	// Customs defaults
	CorreosCustomsShipmentType string `envconfig:"CORREOS_ADUANA_TIPO_ENVIO" default:"2"`
	CorreosCustomsCommercial   string `envconfig:"CORREOS_ADUANA_ENVIO_COMERCIAL" default:"S"`
	CorreosCustomsClearance    string `envconfig:"CORREOS_ADUANA_DUA" default:"N"`
	CorreosCustomsDescription  string `envconfig:"CORREOS_ADUANA_DESCRIPTION"`

	// Weight handling
	CorreosUseWeight     bool   `envconfig:"CORREOS_WEIGHT" default:"true"`
	CorreosWeightUnit    string `envconfig:"CORREOS_WEIGHT_UNIT" default:"kg"`
	CorreosAPIWeightUnit string `envconfig:"CORREOS_API_WEIGHT_UNIT" default:"g"`

	// Reference selection and default service
	CorreosReferenceOrigin bool   `envconfig:"CORREOS_REFERENCE_ORIGIN" default:"false"`
	CorreosDefaultService  string `envconfig:"CORREOS_DEFAULT_SERVICE"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.claude.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"correos-bridge"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Correos builds the Correos carrier configuration.
func (c *Config) Correos() correos.Config {
	base := carrier.Config{
		Method:          carrier.MethodCorreos,
		Username:        c.CorreosUsername,
		Password:        c.CorreosPassword,
		Timeout:         c.CorreosTimeout,
		Debug:           c.CorreosDebug,
		Instance:        c.Instance,
		LabelDir:        c.LabelDir,
		UseWeight:       c.CorreosUseWeight,
		WeightUnit:      carrier.WeightUnit(c.CorreosWeightUnit),
		APIWeightUnit:   carrier.WeightUnit(c.CorreosAPIWeightUnit),
		ReferenceOrigin: c.CorreosReferenceOrigin,
	}
	if c.CorreosDefaultService != "" {
		base.DefaultService = &carrier.Service{Code: c.CorreosDefaultService}
	}

	cfg := correos.NewConfig(base)
	cfg.Code = c.CorreosCode
	cfg.BankAccount = c.CorreosBankAccount
	cfg.CustomsShipmentType = c.CorreosCustomsShipmentType
	cfg.CustomsCommercial = c.CorreosCustomsCommercial
	cfg.CustomsClearance = c.CorreosCustomsClearance
	cfg.CustomsDescription = c.CorreosCustomsDescription
	return cfg
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("correos.instance", c.Instance),
		attribute.Bool("correos.use_mock", c.CorreosUseMock),
	}
}
