// Package correos integrates the Spanish postal carrier Correos: it maps
// outbound shipments onto the carrier's picking wire format, drives the
// batch send and label workflows over one scoped session per batch, and
// persists tracking results back onto the shipment records.
package correos

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tournevent/correos/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = "correos"

// Client is the Correos carrier client.
type Client struct {
	cfg    Config
	dialer Dialer
	logger *otelzap.Logger
	tracer trace.Tracer

	now   func() time.Time
	actor func() string
}

// Option customizes a Client.
type Option func(*Client)

// WithClock overrides the send-timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithActor overrides the sending-employee lookup.
func WithActor(actor func() string) Option {
	return func(c *Client) { c.actor = actor }
}

// New creates a new Correos client. The dialer is the external picking
// transport; see MockDialer for the test implementation.
func New(cfg Config, dialer Dialer, logger *otelzap.Logger, tracer trace.Tracer, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		dialer: dialer,
		logger: logger,
		tracer: tracer,
		now:    time.Now,
		actor:  func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// SendShipments sends a batch of shipments to Correos over one session.
// Shipments are processed sequentially; a failing shipment records an error
// message and never aborts the batch.
func (c *Client) SendShipments(ctx context.Context, shipments []*carrier.Shipment) (*carrier.SendResult, error) {
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "correos.send_shipments")
		defer span.End()
	}

	c.logger.Info("Sending shipments to Correos",
		zap.Int("shipment_count", len(shipments)),
	)

	result := &carrier.SendResult{}

	err := withSession(ctx, c.dialer, c.cfg.sessionConfig(), func(api PickingAPI) error {
		for _, shipment := range shipments {
			c.sendOne(ctx, api, shipment, result)
		}
		return nil
	})
	if err != nil {
		c.logger.Error("Correos session error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// sendOne validates and sends a single shipment, accumulating into result.
func (c *Client) sendOne(ctx context.Context, api PickingAPI, shipment *carrier.Shipment, result *carrier.SendResult) {
	service := resolveService(shipment, c.cfg.DefaultService)
	if service == nil {
		result.Errors = append(result.Errors, msgAddServices())
		return
	}

	if shipment.CashOnDelivery && !cashOnDeliveryServices[service.Code] {
		result.Errors = append(result.Errors,
			msgCashOnDeliveryServices(service.Code, sortedCodes(cashOnDeliveryServices)))
		return
	}

	officeCode := ""
	if officeDeliveryServices[service.Code] {
		if shipment.DeliveryAddress.OfficeCode == "" {
			result.Errors = append(result.Errors, msgAddOffice())
			return
		}
		officeCode = shipment.DeliveryAddress.OfficeCode
	}

	if shipment.DeliveryAddress.CountryCode == "" {
		result.Errors = append(result.Errors, msgNotCountry(shipment.Code))
		return
	}

	if !IsNational(shipment.DeliveryAddress.CountryCode) && shipment.CashOnDelivery {
		result.Errors = append(result.Errors, msgNotNationalCashOnDelivery())
		return
	}

	var price decimal.Decimal
	if shipment.CashOnDelivery {
		price = shipment.CashOnDeliveryAmount
	} else {
		price = shipment.TotalAmount
	}

	data, err := BuildPayload(&c.cfg, shipment, service, price, c.cfg.UseWeight, officeCode)
	if err != nil {
		result.Errors = append(result.Errors, msgNotSent(shipment.Code, err.Error()))
		c.logger.Error("Correos payload error",
			zap.String("shipment", shipment.Code), zap.Error(err))
		return
	}

	created, err := api.Create(ctx, data)
	if err != nil {
		result.Errors = append(result.Errors, msgNotSent(shipment.Code, err.Error()))
		c.logger.Error("Correos API error",
			zap.String("shipment", shipment.Code), zap.Error(err))
		return
	}

	if created.Reference != "" {
		shipment.TrackingRef = created.Reference
		shipment.ServiceUsed = service
		shipment.Delivery = true
		shipment.Printed = true
		shipment.SendDate = c.now()
		shipment.SendEmployee = c.actor()
		result.Sent = append(result.Sent, shipment.Code)
		c.logger.Info("Send shipment",
			zap.String("shipment", shipment.Code),
			zap.String("tracking_ref", created.Reference),
		)
	} else {
		c.logger.Error("Not send shipment", zap.String("shipment", shipment.Code))
	}

	if created.Label != "" {
		path, err := c.writeLabel(created.Reference, created.Label)
		if err != nil {
			result.Errors = append(result.Errors, msgNotLabel(shipment.Code))
			c.logger.Error("Label write error",
				zap.String("shipment", shipment.Code), zap.Error(err))
		} else {
			result.Labels = append(result.Labels, path)
			c.logger.Info("Generated tmp label", zap.String("path", path))
		}
	} else {
		message := msgNotLabel(shipment.Code)
		result.Errors = append(result.Errors, message)
		c.logger.Error(message)
	}

	// partial success is possible: a carrier error may accompany a reference
	if created.Error != "" {
		message := msgNotSent(shipment.Code, created.Error)
		result.Errors = append(result.Errors, message)
		c.logger.Error(message)
	}
}

// PrintLabels re-fetches labels for already-sent shipments by tracking
// reference. Shipments never sent are skipped without recording an error.
// Every shipment in the batch is marked printed afterwards.
func (c *Client) PrintLabels(ctx context.Context, shipments []*carrier.Shipment) ([]string, error) {
	labels := []string{}

	err := withSession(ctx, c.dialer, c.cfg.sessionConfig(), func(api PickingAPI) error {
		for _, shipment := range shipments {
			if shipment.TrackingRef == "" {
				c.logger.Error("Shipment has not been sent by Correos",
					zap.String("shipment", shipment.Code))
				continue
			}
			reference := shipment.TrackingRef

			label, err := api.Label(ctx, Payload{"CodEnvio": reference})
			if err != nil {
				c.logger.Error("Correos API error",
					zap.String("shipment", shipment.Code), zap.Error(err))
				continue
			}
			if label == "" {
				c.logger.Error("Label is not available from Correos",
					zap.String("shipment", shipment.Code))
				continue
			}

			path, err := c.writeLabel(reference, label)
			if err != nil {
				c.logger.Error("Label write error",
					zap.String("shipment", shipment.Code), zap.Error(err))
				continue
			}
			c.logger.Info("Generated tmp label", zap.String("path", path))
			labels = append(labels, path)
		}
		for _, shipment := range shipments {
			shipment.Printed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

// TestConnection probes the Correos API and returns its status message. The
// message is surfaced to the caller regardless of probe outcome; the error
// return covers transport failures only.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	message := "Connection unknown result"

	err := withSession(ctx, c.dialer, c.cfg.sessionConfig(), func(api PickingAPI) error {
		m, err := api.TestConnection(ctx)
		if err != nil {
			return err
		}
		message = m
		return nil
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// GetManifest is not offered by the Correos picking API.
func (c *Client) GetManifest(ctx context.Context, from, to time.Time) ([]byte, error) {
	return nil, carrier.ErrManifestNotAvailable
}

// writeLabel decodes a base64 label and writes it to a uniquely named PDF in
// the configured label directory. The file is never deleted by this package.
func (c *Client) writeLabel(reference, label string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(label)
	if err != nil {
		return "", fmt.Errorf("decoding label: %w", err)
	}

	pattern := fmt.Sprintf("%s-correos-%s-*.pdf", c.cfg.Instance, reference)
	tmp, err := os.CreateTemp(c.cfg.LabelDir, pattern)
	if err != nil {
		return "", fmt.Errorf("creating label file: %w", err)
	}
	defer tmp.Close()

	if _, err := tmp.Write(decoded); err != nil {
		return "", fmt.Errorf("writing label file: %w", err)
	}
	return tmp.Name(), nil
}

// resolveService picks the effective service: shipment override, then the
// shipment carrier's default, then the configuration default.
func resolveService(shipment *carrier.Shipment, fallback *carrier.Service) *carrier.Service {
	if shipment.Service != nil {
		return shipment.Service
	}
	if shipment.CarrierService != nil {
		return shipment.CarrierService
	}
	return fallback
}
