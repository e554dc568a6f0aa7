package main

import (
	"testing"

	"monthcal/internal/config"
)

func TestSnapshotOptions(t *testing.T) {
	conf := config.DefaultConfig()

	tests := []struct {
		listen string
		want   string
	}{
		{"127.0.0.1:8080", "http://127.0.0.1:8080/"},
		{":8080", "http://127.0.0.1:8080/"},
		{"0.0.0.0:9000", "http://127.0.0.1:9000/"},
		{"127.0.0.1:41234", "http://127.0.0.1:41234/"},
	}
	for _, tt := range tests {
		if got := snapshotOptions(conf, tt.listen, "out.png").URL; got != tt.want {
			t.Errorf("snapshotOptions(%q).URL = %q, want %q", tt.listen, got, tt.want)
		}
	}

	if o := snapshotOptions(conf, conf.Listen, "out.png"); o.Username != "" {
		t.Errorf("credentials without basic auth: %q", o.Username)
	}
	conf.BasicAuth = &config.BasicAuthConfig{Username: "admin", Password: "secret"}
	o := snapshotOptions(conf, conf.Listen, "out.png")
	if o.Username != "admin" || o.Password != "secret" {
		t.Errorf("credentials = %q/%q", o.Username, o.Password)
	}
}
