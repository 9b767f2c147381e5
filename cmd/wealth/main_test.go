package main

import (
	"testing"
	"time"

	"wealth/internal/config"
)

func TestDefaultTimezoneLoadsWithoutSystemZoneinfo(t *testing.T) {
	t.Setenv("ZONEINFO", t.TempDir())
	t.Setenv("TIMEZONE", "")

	name := config.Load().Timezone
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	if loc.String() != "Europe/Istanbul" {
		t.Errorf("location = %s", loc)
	}
}
