package store

import "github.com/picogrid/cosim-input/pkg/models"

// Scalar keys for the system settings
const (
	KeyStorage    = "storage"
	KeyGrid       = "grid"
	KeyMoney      = "money"
	KeyPriceHigh  = "price_high"
	KeyPriceLow   = "price_low"
	KeyConfigName = "config_name"
)

// ReadSettings returns the committed system settings, zero-valued where unset
func ReadSettings(s *FieldStore) models.ScalarSettings {
	return models.ScalarSettings{
		StorageCapacity: s.Float(KeyStorage, 0),
		GridCapacity:    s.Float(KeyGrid, 0),
		InitialMoney:    s.Float(KeyMoney, 0),
		PriceHigh:       s.Float(KeyPriceHigh, 0),
		PriceLow:        s.Float(KeyPriceLow, 0),
		ConfigName:      s.String(KeyConfigName, ""),
	}
}

// WriteSettings commits every system setting
func WriteSettings(s *FieldStore, settings models.ScalarSettings) {
	s.Set(KeyStorage, settings.StorageCapacity)
	s.Set(KeyGrid, settings.GridCapacity)
	s.Set(KeyMoney, settings.InitialMoney)
	s.Set(KeyPriceHigh, settings.PriceHigh)
	s.Set(KeyPriceLow, settings.PriceLow)
	s.Set(KeyConfigName, settings.ConfigName)
}
