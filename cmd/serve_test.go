package cmd

import (
	"testing"
)

func TestServeCmdFlagDefaults(t *testing.T) {
	cmd := newServeCmd()

	tests := []struct {
		flag     string
		expected string
	}{
		{flag: "transport", expected: "stdio"},
		{flag: "http-addr", expected: ":8080"},
		{flag: "yolo", expected: "false"},
		{flag: "metrics-enabled", expected: "true"},
		{flag: "metrics-addr", expected: ":9090"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("flag %q is not registered", tt.flag)
			}
			if f.DefValue != tt.expected {
				t.Errorf("flag %q default = %q, want %q", tt.flag, f.DefValue, tt.expected)
			}
		})
	}
}

func TestRunServeRejectsUnknownTransport(t *testing.T) {
	err := runServe("carrier-pigeon", ":8080", false, MetricsConfig{})
	if err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	for _, name := range []string{"serve", "auth", "version"} {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q is not registered", name)
		}
	}
}

func TestSetVersion(t *testing.T) {
	defer SetVersion(version)

	SetVersion("1.2.3")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("rootCmd.Version = %q, want %q", rootCmd.Version, "1.2.3")
	}
}
