package server

import (
	"github.com/shopspring/decimal"
	"github.com/tournevent/correos/pkg/carrier"
)

// Request/response DTOs. The domain model stays transport-agnostic; JSON
// tags live here only.

type batchRequest struct {
	Carrier   string          `json:"carrier,omitempty"`
	Shipments []shipmentInput `json:"shipments"`
}

type partyInput struct {
	Name           string `json:"name"`
	VATCode        string `json:"vatCode,omitempty"`
	IdentifierCode string `json:"identifierCode,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Mobile         string `json:"mobile,omitempty"`
	Email          string `json:"email,omitempty"`
}

type addressInput struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	Subdivision string `json:"subdivision,omitempty"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	OfficeCode  string `json:"officeCode,omitempty"`
}

type companyInput struct {
	Party     partyInput     `json:"party"`
	Addresses []addressInput `json:"addresses,omitempty"`
}

type shipmentInput struct {
	Code         string `json:"code"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Email        string `json:"email,omitempty"`

	Company          companyInput  `json:"company"`
	WarehouseAddress *addressInput `json:"warehouseAddress,omitempty"`
	DeliveryAddress  addressInput  `json:"deliveryAddress"`

	Origin         string `json:"origin,omitempty"`
	CarrierNotes   string `json:"carrierNotes,omitempty"`
	NumberPackages int    `json:"numberPackages,omitempty"`

	Weight     *float64 `json:"weight,omitempty"`
	WeightUnit string   `json:"weightUnit,omitempty"`

	OutgoingItems int `json:"outgoingItems,omitempty"`

	TotalAmount          decimal.Decimal `json:"totalAmount"`
	CashOnDelivery       bool            `json:"cashOnDelivery,omitempty"`
	CashOnDeliveryAmount decimal.Decimal `json:"cashOnDeliveryAmount,omitempty"`

	ServiceCode        string `json:"serviceCode,omitempty"`
	CarrierServiceCode string `json:"carrierServiceCode,omitempty"`

	// TrackingRef addresses already-sent shipments in label reprints.
	TrackingRef string `json:"trackingRef,omitempty"`
}

type sendResponse struct {
	Sent     []string          `json:"sent"`
	Labels   []string          `json:"labels"`
	Errors   []string          `json:"errors"`
	Tracking map[string]string `json:"tracking,omitempty"`
}

type labelsResponse struct {
	Labels []string `json:"labels"`
}

type connectionTestResponse struct {
	Messages map[string]string `json:"messages"`
	Errors   []string          `json:"errors,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func addressToModel(in addressInput) carrier.Address {
	return carrier.Address{
		Street:      in.Street,
		City:        in.City,
		Subdivision: in.Subdivision,
		PostalCode:  in.PostalCode,
		CountryCode: in.CountryCode,
		Phone:       in.Phone,
		Email:       in.Email,
		OfficeCode:  in.OfficeCode,
	}
}

func companyToModel(in companyInput) carrier.Company {
	company := carrier.Company{
		Party: carrier.Party{
			Name:           in.Party.Name,
			VATCode:        in.Party.VATCode,
			IdentifierCode: in.Party.IdentifierCode,
			Phone:          in.Party.Phone,
			Mobile:         in.Party.Mobile,
			Email:          in.Party.Email,
		},
	}
	for _, addr := range in.Addresses {
		company.Addresses = append(company.Addresses, addressToModel(addr))
	}
	return company
}

func shipmentToModel(in shipmentInput) *carrier.Shipment {
	sh := &carrier.Shipment{
		Code:                 in.Code,
		CustomerName:         in.CustomerName,
		Phone:                in.Phone,
		Mobile:               in.Mobile,
		Email:                in.Email,
		Company:              companyToModel(in.Company),
		DeliveryAddress:      addressToModel(in.DeliveryAddress),
		Origin:               in.Origin,
		CarrierNotes:         in.CarrierNotes,
		NumberPackages:       in.NumberPackages,
		Weight:               in.Weight,
		WeightUnit:           carrier.WeightUnit(in.WeightUnit),
		OutgoingItems:        in.OutgoingItems,
		TotalAmount:          in.TotalAmount,
		CashOnDelivery:       in.CashOnDelivery,
		CashOnDeliveryAmount: in.CashOnDeliveryAmount,
		TrackingRef:          in.TrackingRef,
	}
	if in.WarehouseAddress != nil {
		addr := addressToModel(*in.WarehouseAddress)
		sh.WarehouseAddress = &addr
	}
	if in.ServiceCode != "" {
		sh.Service = &carrier.Service{Code: in.ServiceCode}
	}
	if in.CarrierServiceCode != "" {
		sh.CarrierService = &carrier.Service{Code: in.CarrierServiceCode}
	}
	return sh
}

func shipmentsToModel(inputs []shipmentInput) []*carrier.Shipment {
	shipments := make([]*carrier.Shipment, 0, len(inputs))
	for _, in := range inputs {
		shipments = append(shipments, shipmentToModel(in))
	}
	return shipments
}
