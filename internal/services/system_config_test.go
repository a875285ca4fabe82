package services

import (
	"testing"
)

func TestSystemConfig_SetAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemConfigService(db)

	if err := svc.Set("email_host", "smtp.campus.edu"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := svc.Get("email_host")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "smtp.campus.edu" {
		t.Errorf("Get() = %q, expected %q", value, "smtp.campus.edu")
	}
}

func TestSystemConfig_SetOverwrites(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemConfigService(db)

	if err := svc.Set("log_retention_days", "30"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := svc.Set("log_retention_days", "90"); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}

	value, _ := svc.Get("log_retention_days")
	if value != "90" {
		t.Errorf("Get() = %q, expected %q", value, "90")
	}
}

func TestSystemConfig_GetWithDefault(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemConfigService(db)

	if got := svc.GetWithDefault("missing_key", "fallback"); got != "fallback" {
		t.Errorf("GetWithDefault() = %q, expected %q", got, "fallback")
	}

	svc.Set("present_key", "stored")
	if got := svc.GetWithDefault("present_key", "fallback"); got != "stored" {
		t.Errorf("GetWithDefault() = %q, expected %q", got, "stored")
	}
}

func TestSystemConfig_GetMissingKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemConfigService(db)

	if _, err := svc.Get("never_set"); err == nil {
		t.Error("Get() for missing key should fail")
	}
}
