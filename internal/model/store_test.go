package model

import "testing"

func TestIsAllStore(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"-1", true},
		{"1", false},
		{"0", false},
		{"-2", false},
		{"999", false},
		{"", false},
		{"All", false},
		{"abc", false},
		{"-1x", false},
	}

	for _, tt := range tests {
		if got := IsAllStore(tt.id); got != tt.want {
			t.Errorf("IsAllStore(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestAllStoreConstant(t *testing.T) {
	if AllStore.ID != -1 {
		t.Errorf("AllStore.ID = %d, want -1", AllStore.ID)
	}
	if AllStore.Name != "All" {
		t.Errorf("AllStore.Name = %q, want %q", AllStore.Name, "All")
	}
	if AllStore.Modified != nil {
		t.Error("AllStore.Modified should be nil")
	}
}
