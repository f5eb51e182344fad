package correos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/correos/pkg/carrier"
	"github.com/tournevent/correos/pkg/carrier/correos"
)

func testConfig() correos.Config {
	cfg := correos.NewConfig(carrier.Config{
		Method:        carrier.MethodCorreos,
		Username:      "user",
		Password:      "secret",
		Instance:      "test",
		UseWeight:     true,
		WeightUnit:    carrier.WeightKG,
		APIWeightUnit: carrier.WeightG,
	})
	cfg.Code = "123456"
	cfg.BankAccount = "ES9121000418450200051332"
	cfg.CustomsDescription = "Merchandise"
	return cfg
}

func floatPtr(v float64) *float64 { return &v }

func testShipment() *carrier.Shipment {
	return &carrier.Shipment{
		Code:         "OUT001",
		CustomerName: "José Núñez",
		Phone:        "+34 600 11 22 33",
		Mobile:       "+34 600 44 55 66",
		Email:        "jose@example.com",
		Company: carrier.Company{
			Party: carrier.Party{
				Name:    "Acme SL",
				VATCode: "ESB12345678",
				Phone:   "+34911111111",
				Email:   "warehouse@acme.example",
				Mobile:  "+34622222222",
			},
			Addresses: []carrier.Address{{
				Street:      "Calle Mayor 1",
				City:        "Madrid",
				Subdivision: "Madrid",
				PostalCode:  "28001",
				CountryCode: "ES",
			}},
		},
		DeliveryAddress: carrier.Address{
			Street:      "Avinguda Diagonal 22",
			City:        "Barcelona",
			Subdivision: "Cataluña",
			PostalCode:  "08019",
			CountryCode: "ES",
		},
		NumberPackages: 2,
		Weight:         floatPtr(2.5),
		WeightUnit:     carrier.WeightKG,
		OutgoingItems:  3,
		TotalAmount:    decimal.NewFromFloat(120.50),
		Service:        &carrier.Service{Code: "S0132", Name: "Paq Estandar"},
	}
}

var paqEstandar = &carrier.Service{Code: "S0132", Name: "Paq Estandar"}

func buildTestPayload(t *testing.T, cfg correos.Config, sh *carrier.Shipment) correos.Payload {
	t.Helper()
	data, err := correos.BuildPayload(&cfg, sh, paqEstandar, sh.TotalAmount, cfg.UseWeight, "")
	require.NoError(t, err)
	return data
}

func TestBuildPayload_Basic(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, 2, data["TotalBultos"])
	assert.Equal(t, "Acme SL", data["RemitenteNombre"])
	assert.Equal(t, "ESB12345678", data["RemitenteNif"])
	assert.Equal(t, "Calle Mayor 1", data["RemitenteDireccion"])
	assert.Equal(t, "S0132", data["CodProducto"])
	assert.Equal(t, "OUT001", data["ReferenciaCliente"])
}

func TestBuildPayload_DefaultPackageCount(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.NumberPackages = 0

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, 1, data["TotalBultos"])
}

func TestBuildPayload_AccentsAndSpaces(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "Jose Nunez", data["DestinatarioNombre"])
	assert.Equal(t, "Cataluna", data["DestinatarioProvincia"])
	assert.Equal(t, "+34600112233", data["DestinatarioTelefonocontacto"])
	assert.Equal(t, "+34600445566", data["DestinatarioNumeroSMS"])
}

func TestBuildPayload_NationalPostalCodeKey(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "08019", data["DestinatarioCP"])
	assert.NotContains(t, data, "DestinatarioZIP")
}

func TestBuildPayload_InternationalZIPKey(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.DeliveryAddress.CountryCode = "FR"
	sh.DeliveryAddress.PostalCode = "75001"

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "75001", data["DestinatarioZIP"])
	assert.NotContains(t, data, "DestinatarioCP")
}

func TestBuildPayload_AndorraIsNational(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.DeliveryAddress.CountryCode = "AD"

	data := buildTestPayload(t, cfg, sh)

	assert.Contains(t, data, "DestinatarioCP")
	assert.NotContains(t, data, "Aduana")
}

func TestBuildPayload_CashOnDelivery(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.CashOnDelivery = true
	price := decimal.NewFromFloat(49.95)

	data, err := correos.BuildPayload(&cfg, sh, paqEstandar, price, false, "")
	require.NoError(t, err)

	assert.Equal(t, true, data["Reembolso"])
	assert.Equal(t, "RC", data["TipoReembolso"])
	assert.Equal(t, cfg.BankAccount, data["NumeroCuenta"])
	got, ok := data["Importe"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, got.Equal(price))
}

func TestBuildPayload_NoCashOnDelivery(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()

	data := buildTestPayload(t, cfg, sh)

	assert.NotContains(t, data, "Reembolso")
	assert.NotContains(t, data, "TipoReembolso")
	assert.NotContains(t, data, "NumeroCuenta")
	assert.NotContains(t, data, "Importe")
}

func TestBuildPayload_CustomsThreshold(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		want  string
	}{
		{"over threshold", decimal.RequireFromString("500.01"), "S"},
		{"exactly threshold", decimal.RequireFromString("500.00"), "N"},
		{"under threshold", decimal.RequireFromString("499.99"), "N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			sh := testShipment()
			sh.DeliveryAddress.CountryCode = "FR"

			data, err := correos.BuildPayload(&cfg, sh, paqEstandar, tt.price, false, "")
			require.NoError(t, err)

			assert.Equal(t, tt.want, data["AduanaFacturaSuperiora500"])
		})
	}
}

func TestBuildPayload_CustomsBlock(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.DeliveryAddress.CountryCode = "DE"
	price := decimal.NewFromFloat(120.50)

	data, err := correos.BuildPayload(&cfg, sh, paqEstandar, price, true, "")
	require.NoError(t, err)

	assert.Equal(t, true, data["Aduana"])
	assert.Equal(t, "2", data["AduanaTipoEnvio"])
	assert.Equal(t, "S", data["AduanaEnvioComercial"])
	assert.Equal(t, "N", data["AduanaDUAConCorreos"])
	assert.Equal(t, "3", data["AduanaCantidad"])
	assert.Equal(t, "Merchandise", data["AduanaDescripcion"])
	assert.Equal(t, data["Peso"], data["AduanaPesoneto"])
	got, ok := data["AduanaValorneto"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, got.Equal(price))
	assert.NotContains(t, data, "RemitenteNumeroSMS")
}

func TestBuildPayload_DomesticSenderSMS(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()

	data := buildTestPayload(t, cfg, sh)

	assert.NotContains(t, data, "Aduana")
	assert.Equal(t, "+34622222222", data["RemitenteNumeroSMS"])
}

func TestBuildPayload_WeightConversion(t *testing.T) {
	cfg := testConfig()
	sh := testShipment() // 2.5 kg, API unit grams

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "2500", data["Peso"])
}

func TestBuildPayload_ZeroWeightDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.APIWeightUnit = ""
	sh := testShipment()
	sh.Weight = floatPtr(0)

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "100", data["Peso"])
}

func TestBuildPayload_WeightNotRequested(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()

	data, err := correos.BuildPayload(&cfg, sh, paqEstandar, sh.TotalAmount, false, "")
	require.NoError(t, err)

	// weight is computed only on request, but Peso is always transmitted
	assert.Equal(t, "100", data["Peso"])
}

func TestBuildPayload_WeightUnitFallback(t *testing.T) {
	cfg := testConfig() // fallback kg, API unit g
	sh := testShipment()
	sh.WeightUnit = ""
	sh.Weight = floatPtr(1.2)

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "1200", data["Peso"])
}

func TestBuildPayload_OfficeCode(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()

	data, err := correos.BuildPayload(&cfg, sh, paqEstandar, sh.TotalAmount, false, "2801001")
	require.NoError(t, err)

	assert.Equal(t, "2801001", data["OficinaElegida"])
}

func TestBuildPayload_ReferenceOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.ReferenceOrigin = true
	sh := testShipment()
	sh.Origin = "SALE042"

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "SALE042", data["ReferenciaCliente"])
}

func TestBuildPayload_ReferenceOriginWithoutOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.ReferenceOrigin = true
	sh := testShipment()

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "OUT001", data["ReferenciaCliente"])
}

func TestBuildPayload_Notes(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.CarrierNotes = "Entrega mañana"

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "Entrega manana\n", data["Observaciones1"])
}

func TestBuildPayload_EmptyNotes(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "", data["Observaciones1"])
}

func TestBuildPayload_WarehouseAddressPreferred(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.WarehouseAddress = &carrier.Address{
		Street:     "Polígono 5",
		City:       "Getafe",
		PostalCode: "28901",
	}

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "Poligono 5", data["RemitenteDireccion"])
	assert.Equal(t, "28901", data["RemitenteCP"])
}

func TestBuildPayload_NoSenderAddress(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.WarehouseAddress = nil
	sh.Company.Addresses = nil

	_, err := correos.BuildPayload(&cfg, sh, paqEstandar, sh.TotalAmount, false, "")
	assert.Error(t, err)
}

func TestBuildPayload_IdentifierCodeFallback(t *testing.T) {
	cfg := testConfig()
	sh := testShipment()
	sh.Company.Party.VATCode = ""
	sh.Company.Party.IdentifierCode = "X1234567L"

	data := buildTestPayload(t, cfg, sh)

	assert.Equal(t, "X1234567L", data["RemitenteNif"])
}
