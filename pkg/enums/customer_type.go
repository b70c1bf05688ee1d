package enums

import "fmt"

// CustomerType is the customer classification snapshotted onto an order.
type CustomerType string

const (
	CustomerTypeRetail      CustomerType = "RETAIL"
	CustomerTypeWholesale   CustomerType = "WHOLESALE"
	CustomerTypeDistributor CustomerType = "DISTRIBUTOR"
	CustomerTypeBusiness    CustomerType = "BUSINESS"
)

var validCustomerTypes = []CustomerType{
	CustomerTypeRetail,
	CustomerTypeWholesale,
	CustomerTypeDistributor,
	CustomerTypeBusiness,
}

// String implements fmt.Stringer.
func (c CustomerType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerType.
func (c CustomerType) IsValid() bool {
	for _, candidate := range validCustomerTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerType converts raw input into a CustomerType.
func ParseCustomerType(value string) (CustomerType, error) {
	for _, candidate := range validCustomerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer type %q", value)
}

// CustomerTypeFromClientType maps the numeric client_type column onto a
// CustomerType. Unknown and absent codes both fall back to BUSINESS.
func CustomerTypeFromClientType(clientType *int) CustomerType {
	if clientType == nil {
		return CustomerTypeBusiness
	}
	switch *clientType {
	case 1:
		return CustomerTypeRetail
	case 2:
		return CustomerTypeWholesale
	case 3:
		return CustomerTypeDistributor
	default:
		return CustomerTypeBusiness
	}
}
