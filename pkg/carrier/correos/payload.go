package correos

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tournevent/correos/pkg/carrier"
)

// customsThreshold is the declared value above which Correos requires the
// over-500 invoice flag on international shipments.
var customsThreshold = decimal.NewFromInt(500)

// reimbursementType is the only settlement mode Correos supports for
// cash-on-delivery (reembolso a cuenta corriente).
const reimbursementType = "RC"

// BuildPayload maps a shipment onto the Correos picking wire format. It is
// pure: no I/O, deterministic for a given input.
func BuildPayload(cfg *Config, shipment *carrier.Shipment, service *carrier.Service,
	price decimal.Decimal, useWeight bool, officeCode string) (Payload, error) {

	packages := shipment.NumberPackages
	if packages == 0 {
		packages = 1
	}

	sender := shipment.Company.Party
	senderAddr, err := resolveSenderAddress(shipment)
	if err != nil {
		return nil, err
	}
	delivery := shipment.DeliveryAddress

	code := shipment.Code
	if cfg.ReferenceOrigin && shipment.Origin != "" {
		code = shipment.Origin
	}

	notes := ""
	if shipment.CarrierNotes != "" {
		notes = shipment.CarrierNotes + "\n"
	}

	data := Payload{}
	data["TotalBultos"] = packages
	data["RemitenteNombre"] = sender.Name
	data["RemitenteNif"] = senderTaxID(sender)
	data["RemitenteDireccion"] = carrier.Unaccent(senderAddr.Street)
	data["RemitenteLocalidad"] = carrier.Unaccent(senderAddr.City)
	data["RemitenteProvincia"] = carrier.Unaccent(senderAddr.Subdivision)
	data["RemitenteCP"] = senderAddr.PostalCode
	data["RemitenteTelefonocontacto"] = firstOf(senderAddr.Phone, sender.Phone)
	data["RemitenteEmail"] = firstOf(senderAddr.Email, sender.Email)
	data["DestinatarioNombre"] = carrier.Unaccent(shipment.CustomerName)
	data["DestinatarioDireccion"] = carrier.Unaccent(delivery.Street)
	data["DestinatarioLocalidad"] = carrier.Unaccent(delivery.City)
	data["DestinatarioProvincia"] = carrier.Unaccent(delivery.Subdivision)
	if IsNational(delivery.CountryCode) {
		data["DestinatarioCP"] = delivery.PostalCode
	} else {
		data["DestinatarioZIP"] = delivery.PostalCode
	}
	data["DestinatarioPais"] = delivery.CountryCode
	data["DestinatarioTelefonocontacto"] = carrier.Unspaces(shipment.Phone)
	data["DestinatarioNumeroSMS"] = carrier.Unspaces(shipment.Mobile)
	data["DestinatarioEmail"] = carrier.Unspaces(shipment.Email)
	data["CodProducto"] = service.Code
	data["ReferenciaCliente"] = code
	data["Observaciones1"] = carrier.Unaccent(notes)

	if shipment.CashOnDelivery {
		data["Reembolso"] = true
		data["TipoReembolso"] = reimbursementType
		data["Importe"] = price
		data["NumeroCuenta"] = cfg.BankAccount
	}

	weight := 100.0
	if useWeight && shipment.Weight != nil {
		weight = *shipment.Weight
		if weight == 0 {
			weight = 100
		}
		if cfg.APIWeightUnit != "" {
			from := shipment.WeightUnit
			if from == "" {
				from = cfg.WeightUnit
			}
			if from != "" {
				weight, err = carrier.ConvertWeight(weight, from, cfg.APIWeightUnit)
				if err != nil {
					return nil, err
				}
			}
		}
	}
	data["Peso"] = strconv.Itoa(int(weight))

	if officeCode != "" {
		data["OficinaElegida"] = officeCode
	}

	if !IsNational(delivery.CountryCode) {
		data["Aduana"] = true
		data["AduanaTipoEnvio"] = firstOf(cfg.CustomsShipmentType, "2")
		data["AduanaEnvioComercial"] = firstOf(cfg.CustomsCommercial, "S")
		if price.GreaterThan(customsThreshold) {
			data["AduanaFacturaSuperiora500"] = "S"
		} else {
			data["AduanaFacturaSuperiora500"] = "N"
		}
		data["AduanaDUAConCorreos"] = firstOf(cfg.CustomsClearance, "N")
		data["AduanaCantidad"] = strconv.Itoa(shipment.OutgoingItems)
		data["AduanaDescripcion"] = cfg.CustomsDescription
		data["AduanaPesoneto"] = data["Peso"]
		data["AduanaValorneto"] = price
	} else {
		data["RemitenteNumeroSMS"] = sender.Mobile
	}

	return data, nil
}

// resolveSenderAddress is the warehouse address when the shipment has one, else the
// owning company's first registered address.
func resolveSenderAddress(shipment *carrier.Shipment) (carrier.Address, error) {
	if shipment.WarehouseAddress != nil {
		return *shipment.WarehouseAddress, nil
	}
	if len(shipment.Company.Addresses) == 0 {
		return carrier.Address{}, carrier.NewError(carrierName, "no-sender-address",
			"shipment "+shipment.Code+" has no warehouse or company address")
	}
	return shipment.Company.Addresses[0], nil
}

func senderTaxID(p carrier.Party) string {
	return firstOf(p.VATCode, p.IdentifierCode)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
