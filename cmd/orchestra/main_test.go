package main

import "testing"

func TestConfigDirFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no args",
			args: nil,
			want: "",
		},
		{
			name: "long flag",
			args: []string{"run", "--config", "/etc/orchestra"},
			want: "/etc/orchestra",
		},
		{
			name: "short flag",
			args: []string{"-c", "/tmp/cfg", "status"},
			want: "/tmp/cfg",
		},
		{
			name: "equals form",
			args: []string{"--config=/home/user/.orchestra", "run"},
			want: "/home/user/.orchestra",
		},
		{
			name: "flag without value",
			args: []string{"run", "--config"},
			want: "",
		},
		{
			name: "unrelated flags",
			args: []string{"run", "--daemon", "--test"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := configDirFromArgs(tt.args); got != tt.want {
				t.Fatalf("configDirFromArgs(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
