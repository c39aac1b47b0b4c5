package services

import "strings"

// DefaultDeliveryFee applies when no zone keyword matches the address.
const DefaultDeliveryFee int64 = 250

type DeliveryServiceInterface interface {
	// ResolveFee maps a free-text delivery address to a flat fee by substring
	// matching against the zone table.
	ResolveFee(address string) (zone string, fee int64)
}

type deliveryZone struct {
	Name     string
	Keywords []string
	Fee      int64
}

// Flat-fee zones around Nairobi. First match wins, top to bottom.
var zones = []deliveryZone{
	{Name: "CBD", Keywords: []string{"cbd", "city centre", "town"}, Fee: 100},
	{Name: "Westlands", Keywords: []string{"westlands", "parklands"}, Fee: 200},
	{Name: "Kilimani", Keywords: []string{"kilimani", "kileleshwa", "lavington"}, Fee: 150},
	{Name: "Karen", Keywords: []string{"karen", "langata"}, Fee: 350},
	{Name: "Eastlands", Keywords: []string{"embakasi", "donholm", "buruburu"}, Fee: 300},
}

type DeliveryService struct{}

func NewDeliveryService() DeliveryServiceInterface {
	return &DeliveryService{}
}

func (d *DeliveryService) ResolveFee(address string) (string, int64) {
	lower := strings.ToLower(address)
	for _, zone := range zones {
		for _, kw := range zone.Keywords {
			if strings.Contains(lower, kw) {
				return zone.Name, zone.Fee
			}
		}
	}
	return "Other", DefaultDeliveryFee
}
