package model

// IOHIDDevice property keys (kIOHID*Key).
const (
	HIDUniqueID      = "UniqueID"
	HIDSerialNumber  = "SerialNumber"
	HIDVendorID      = "VendorID"
	HIDCountryCode   = "CountryCode"
	HIDManufacturer  = "Manufacturer"
	HIDProduct       = "Product"
	HIDVersionNumber = "VersionNumber"
	HIDProductID     = "ProductID"
	HIDTransport     = "Transport"
)

// InputValue describes the keyboard device that produced a HID input value,
// plus the element usage and value that fired. Every descriptor field is
// optional and nil when the device does not report it.
type InputValue struct {
	ID            *int64  `yaml:"id,omitempty"             json:"id,omitempty"`
	VendorID      *int    `yaml:"vendor_id,omitempty"      json:"vendor_id,omitempty"`
	ProductID     *int    `yaml:"product_id,omitempty"     json:"product_id,omitempty"`
	Manufacturer  *string `yaml:"manufacturer,omitempty"   json:"manufacturer,omitempty"`
	SerialNumber  *string `yaml:"serial_number,omitempty"  json:"serial_number,omitempty"`
	Product       *string `yaml:"product,omitempty"        json:"product,omitempty"`
	VersionNumber *int    `yaml:"version_number,omitempty" json:"version_number,omitempty"`
	Transport     *string `yaml:"transport,omitempty"      json:"transport,omitempty"`
	CountryCode   *int    `yaml:"country_code,omitempty"   json:"country_code,omitempty"`

	UsagePage uint32 `yaml:"usage_page" json:"usage_page"`
	Usage     uint32 `yaml:"usage"      json:"usage"`
	Value     int64  `yaml:"value"      json:"value"`
}

// DevicePropertyReader reads typed values off a HID device.
type DevicePropertyReader interface {
	Int(key string) (int64, bool)
	String(key string) (string, bool)
}

// NewInputValue reads the device descriptor fields from r.
func NewInputValue(r DevicePropertyReader) InputValue {
	var v InputValue
	if n, ok := r.Int(HIDUniqueID); ok {
		v.ID = &n
	}
	v.VendorID = intProp(r, HIDVendorID)
	v.ProductID = intProp(r, HIDProductID)
	v.VersionNumber = intProp(r, HIDVersionNumber)
	v.CountryCode = intProp(r, HIDCountryCode)
	v.Manufacturer = stringProp(r, HIDManufacturer)
	v.SerialNumber = stringProp(r, HIDSerialNumber)
	v.Product = stringProp(r, HIDProduct)
	v.Transport = stringProp(r, HIDTransport)
	return v
}

func intProp(r DevicePropertyReader, key string) *int {
	n, ok := r.Int(key)
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

func stringProp(r DevicePropertyReader, key string) *string {
	s, ok := r.String(key)
	if !ok {
		return nil
	}
	return &s
}
