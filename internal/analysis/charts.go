package analysis

import "chainsight/internal/domain"

// DefaultCharts returns the fixed illustrative chart series. Chart data is
// not derived from the completion text or the source dataset; callers may
// overlay their own computed series afterward.
func DefaultCharts() domain.Charts {
	return domain.Charts{
		InventoryTurnover: []domain.TurnoverPoint{
			{Product: "iPhone 14 Pro", Turnover: 5.2},
			{Product: "Samsung S23", Turnover: 4.8},
			{Product: "Apple Watch", Turnover: 3.9},
			{Product: "USB-C Cables", Turnover: 6.7},
			{Product: "Wall Chargers", Turnover: 5.5},
		},
		CategoryPerformance: []domain.CategoryPoint{
			{Category: "Smartphones", Value: 45},
			{Category: "Accessories", Value: 25},
			{Category: "Cables", Value: 15},
			{Category: "Chargers", Value: 10},
			{Category: "Other", Value: 5},
		},
		VendorPerformance: []domain.VendorPoint{
			{Vendor: "Apple", OnTimeDelivery: 96, OrderFulfillment: 98},
			{Vendor: "Samsung", OnTimeDelivery: 92, OrderFulfillment: 95},
			{Vendor: "Accessory Vendor A", OnTimeDelivery: 88, OrderFulfillment: 92},
			{Vendor: "Accessory Vendor B", OnTimeDelivery: 85, OrderFulfillment: 90},
		},
		SalesVsPurchases: []domain.MonthlyPoint{
			{Month: "Jul 2023", Sales: 45000, Purchases: 40000},
			{Month: "Aug 2023", Sales: 48000, Purchases: 42000},
			{Month: "Sep 2023", Sales: 50000, Purchases: 45000},
			{Month: "Oct 2023", Sales: 53000, Purchases: 48000},
			{Month: "Nov 2023", Sales: 58000, Purchases: 52000},
			{Month: "Dec 2023", Sales: 65000, Purchases: 58000},
		},
	}
}
