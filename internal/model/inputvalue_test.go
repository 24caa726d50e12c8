package model

import (
	"encoding/json"
	"testing"
)

type fakeDevice map[string]interface{}

func (f fakeDevice) Int(key string) (int64, bool) {
	n, ok := f[key].(int64)
	return n, ok
}

func (f fakeDevice) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

func TestNewInputValue_AllFields(t *testing.T) {
	v := NewInputValue(fakeDevice{
		HIDUniqueID:      int64(4294968359),
		HIDVendorID:      int64(1452),
		HIDProductID:     int64(832),
		HIDVersionNumber: int64(549),
		HIDCountryCode:   int64(33),
		HIDManufacturer:  "Apple Inc.",
		HIDSerialNumber:  "FVH1234",
		HIDProduct:       "Apple Internal Keyboard / Trackpad",
		HIDTransport:     "SPI",
	})

	if v.ID == nil || *v.ID != 4294968359 {
		t.Errorf("ID = %v", v.ID)
	}
	if v.VendorID == nil || *v.VendorID != 1452 {
		t.Errorf("VendorID = %v", v.VendorID)
	}
	if v.ProductID == nil || *v.ProductID != 832 {
		t.Errorf("ProductID = %v", v.ProductID)
	}
	if v.VersionNumber == nil || *v.VersionNumber != 549 {
		t.Errorf("VersionNumber = %v", v.VersionNumber)
	}
	if v.CountryCode == nil || *v.CountryCode != 33 {
		t.Errorf("CountryCode = %v", v.CountryCode)
	}
	if v.Manufacturer == nil || *v.Manufacturer != "Apple Inc." {
		t.Errorf("Manufacturer = %v", v.Manufacturer)
	}
	if v.SerialNumber == nil || *v.SerialNumber != "FVH1234" {
		t.Errorf("SerialNumber = %v", v.SerialNumber)
	}
	if v.Product == nil || *v.Product != "Apple Internal Keyboard / Trackpad" {
		t.Errorf("Product = %v", v.Product)
	}
	if v.Transport == nil || *v.Transport != "SPI" {
		t.Errorf("Transport = %v", v.Transport)
	}
}

func TestNewInputValue_MissingFieldsNil(t *testing.T) {
	v := NewInputValue(fakeDevice{
		HIDVendorID: int64(1133),
		HIDProduct:  "USB Keyboard",
	})
	if v.VendorID == nil || *v.VendorID != 1133 {
		t.Errorf("VendorID = %v", v.VendorID)
	}
	if v.ID != nil || v.ProductID != nil || v.SerialNumber != nil || v.Transport != nil {
		t.Errorf("unreported properties should be nil: %+v", v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["serial_number"]; ok {
		t.Error("nil serial_number should be omitted")
	}
	if _, ok := m["vendor_id"]; !ok {
		t.Error("vendor_id should be present")
	}
}

func TestNewInputValue_WrongTypeIsMissing(t *testing.T) {
	v := NewInputValue(fakeDevice{HIDVendorID: "1452"})
	if v.VendorID != nil {
		t.Errorf("string vendor id should read as missing, got %v", *v.VendorID)
	}
}
