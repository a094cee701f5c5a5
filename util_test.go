package main

import "testing"

func TestCanonicalizeChannel(t *testing.T) {
	if canonicalizeChannel("#Room") != "#room" {
		t.Fatalf("canonicalizeChannel did not lowercase")
	}
}

func TestIsValidChannelName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"#room", true},
		{"#a", true},
		{"#", false},
		{"room", false},
		{"#ro om", false},
		{"#ro,om", false},
		{"#ro\x07om", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isValidChannelName(tt.name); got != tt.want {
			t.Errorf("isValidChannelName(%q) = %v, wanted %v", tt.name, got, tt.want)
		}
	}
}
