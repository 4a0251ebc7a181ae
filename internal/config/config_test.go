package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfiguration() Configuration {
	c := Configuration{
		Location: LocationConfig{
			City:    "Haifa",
			Country: "Israel",
		},
		Fiscal: FiscalConfig{
			Date: "04-20",
			Time: "sunset",
		},
	}
	c.applyDefaults()
	return c
}

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huquq.yaml")
	yaml := `location:
  city: Haifa
  country: Israel
fiscal:
  date: "04-20"
  time: sunset
pricing:
  currency: EUR
  unit: g
record:
  file: /tmp/records.csv
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() returned error: %v", err)
	}
	if conf.Location.City != "Haifa" || conf.Location.Country != "Israel" {
		t.Errorf("Location = %+v", conf.Location)
	}
	if conf.Fiscal.Date != "04-20" || conf.Fiscal.Time != "sunset" {
		t.Errorf("Fiscal = %+v", conf.Fiscal)
	}
	if conf.Pricing.Currency != "EUR" || conf.Pricing.Unit != "g" {
		t.Errorf("Pricing = %+v", conf.Pricing)
	}
	if conf.Record.File != "/tmp/records.csv" {
		t.Errorf("Record = %+v", conf.Record)
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", conf.Logging)
	}
	if err := conf.ValidateConfiguration(); err != nil {
		t.Errorf("ValidateConfiguration() = %v, expected nil", err)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huquq.yaml")
	yaml := `location:
  latitude: "32.943608"
  longitude: "35.091979"
fiscal:
  date: "04-20"
  time: now
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() returned error: %v", err)
	}
	if conf.Pricing.Currency != "USD" {
		t.Errorf("default currency = %q, expected USD", conf.Pricing.Currency)
	}
	if conf.Pricing.Unit != "oz" {
		t.Errorf("default unit = %q, expected oz", conf.Pricing.Unit)
	}
	if conf.Record.File != "huququllah_record.csv" {
		t.Errorf("default record file = %q", conf.Record.File)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("LoadConfiguration() accepted a missing file")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr bool
	}{
		{
			name:    "Valid with address",
			mutate:  func(c *Configuration) {},
			wantErr: false,
		},
		{
			name: "Valid with coordinates only",
			mutate: func(c *Configuration) {
				c.Location = LocationConfig{Latitude: "32.9", Longitude: "35.1"}
			},
			wantErr: false,
		},
		{
			name: "Missing location entirely",
			mutate: func(c *Configuration) {
				c.Location = LocationConfig{}
			},
			wantErr: true,
		},
		{
			name: "City without country and no coordinates",
			mutate: func(c *Configuration) {
				c.Location = LocationConfig{City: "Haifa"}
			},
			wantErr: true,
		},
		{
			name: "Missing fiscal date",
			mutate: func(c *Configuration) {
				c.Fiscal.Date = ""
			},
			wantErr: true,
		},
		{
			name: "Fiscal date wrong shape",
			mutate: func(c *Configuration) {
				c.Fiscal.Date = "2026-04-20"
			},
			wantErr: true,
		},
		{
			name: "Fiscal date impossible day",
			mutate: func(c *Configuration) {
				c.Fiscal.Date = "02-31"
			},
			wantErr: true,
		},
		{
			name: "Fiscal time solar period",
			mutate: func(c *Configuration) {
				c.Fiscal.Time = "dawn"
			},
			wantErr: false,
		},
		{
			name: "Fiscal time now",
			mutate: func(c *Configuration) {
				c.Fiscal.Time = "now"
			},
			wantErr: false,
		},
		{
			name: "Fiscal time literal clock",
			mutate: func(c *Configuration) {
				c.Fiscal.Time = "18:30"
			},
			wantErr: false,
		},
		{
			name: "Fiscal time invalid word",
			mutate: func(c *Configuration) {
				c.Fiscal.Time = "midnightish"
			},
			wantErr: true,
		},
		{
			name: "Fiscal time out-of-range clock",
			mutate: func(c *Configuration) {
				c.Fiscal.Time = "25:00"
			},
			wantErr: true,
		},
		{
			name: "Missing fiscal time",
			mutate: func(c *Configuration) {
				c.Fiscal.Time = ""
			},
			wantErr: true,
		},
		{
			name: "Invalid currency",
			mutate: func(c *Configuration) {
				c.Pricing.Currency = "ZZZ"
			},
			wantErr: true,
		},
		{
			name: "Invalid pricing unit",
			mutate: func(c *Configuration) {
				c.Pricing.Unit = "stone"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := validConfiguration()
			tt.mutate(&conf)
			err := conf.ValidateConfiguration()
			if tt.wantErr && err == nil {
				t.Errorf("ValidateConfiguration() = nil, expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateConfiguration() = %v, expected nil", err)
			}
		})
	}
}

func TestIsSolarPeriod(t *testing.T) {
	for _, period := range []string{"dawn", "sunrise", "noon", "sunset", "dusk"} {
		if !IsSolarPeriod(period) {
			t.Errorf("IsSolarPeriod(%q) = false, expected true", period)
		}
	}
	for _, period := range []string{"now", "midnight", "", "Sunset"} {
		if IsSolarPeriod(period) {
			t.Errorf("IsSolarPeriod(%q) = true, expected false", period)
		}
	}
}
