package domain

// Category is a fixed expense classification label. The set is versioned
// in code; adding a variant is a code change, not a schema read.
type Category string

// Expense categories
const (
	CategoryFood         Category = "Food"
	CategoryTransport    Category = "Transport"
	CategoryGroceries    Category = "Groceries"
	CategoryRent         Category = "Rent"
	CategoryStationery   Category = "Stationery"
	CategoryPersonalCare Category = "Personal Care"
	CategoryElectricBill Category = "Electric Bill"
	CategoryWaterBill    Category = "Water Bill"
	CategoryCylinder     Category = "Cylinder"
	CategoryInternetBill Category = "Internet Bill"
	CategoryEMI          Category = "EMI"
	CategoryRecharge     Category = "Recharge"
	CategoryOther        Category = "Other"
)

// Categories returns every allowed expense category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryGroceries,
		CategoryRent,
		CategoryStationery,
		CategoryPersonalCare,
		CategoryElectricBill,
		CategoryWaterBill,
		CategoryCylinder,
		CategoryInternetBill,
		CategoryEMI,
		CategoryRecharge,
		CategoryOther,
	}
}

// Valid reports whether c is one of the allowed categories.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}
