package correos

import (
	"fmt"
	"strings"
)

// User-facing batch messages. They are collected in the send result, never
// returned as errors, so a failing shipment cannot abort the batch.

func msgAddServices() string {
	return "Select a service or default service in Correos API"
}

func msgNotCountry(name string) string {
	return fmt.Sprintf("Add country in shipment %q delivery address", name)
}

func msgNotSent(name, err string) string {
	return fmt.Sprintf("Not send shipment %s. %s", name, err)
}

func msgNotLabel(name string) string {
	return fmt.Sprintf("Not available %q label from Correos", name)
}

func msgAddOffice() string {
	return "Add a office Correos to delivery or change service"
}

func msgNotNationalCashOnDelivery() string {
	return "Not available Correos international delivery and cash on delivery"
}

func msgCashOnDeliveryServices(service string, services []string) string {
	return fmt.Sprintf("Correos %q service and cash on delivery is not valid. "+
		"Please select an option: %q", service, strings.Join(services, ", "))
}
