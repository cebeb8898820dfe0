package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Inspection.validate(); err != nil {
		return fmt.Errorf("inspection: %w", err)
	}

	return nil
}

func (i *InspectionConfig) validate() error {
	if i.WarningPoints < 0 {
		return fmt.Errorf("warning_points must be >= 0 (got %d)", i.WarningPoints)
	}
	if i.DisposePoints < 0 {
		return fmt.Errorf("dispose_points must be >= 0 (got %d)", i.DisposePoints)
	}
	if i.DisposePoints < i.WarningPoints {
		return fmt.Errorf("dispose_points (%d) must not be lower than warning_points (%d)", i.DisposePoints, i.WarningPoints)
	}
	if i.PenaltyExpiryDays < 0 {
		return fmt.Errorf("penalty_expiry_days must be >= 0 (got %d)", i.PenaltyExpiryDays)
	}
	if i.ExpiringWindowDays < 0 {
		return fmt.Errorf("expiring_window_days must be >= 0 (got %d)", i.ExpiringWindowDays)
	}
	return nil
}
