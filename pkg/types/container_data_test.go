package types

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContainerDataFromModData(t *testing.T) {
	tests := []struct {
		name       string
		md         ModData
		want       *ContainerData
		wantErrKey []string
	}{
		{
			name: "empty metadata yields defaults",
			md:   ModData{},
			want: NewContainerData(),
		},
		{
			name: "nil metadata yields defaults",
			md:   nil,
			want: NewContainerData(),
		},
		{
			name: "all fields",
			md: ModData{
				KeyName:          "Fish fridge",
				KeyCategory:      "Kitchen",
				KeyOrder:         "3",
				KeyIgnored:       "true",
				KeyAutomateStore: "prefer",
				KeyAutomateTake:  "DISABLE",
			},
			want: &ContainerData{
				Name:               "Fish fridge",
				Category:           "Kitchen",
				Order:              3,
				IsIgnored:          true,
				AutomateStoreItems: AutomatePrefer,
				AutomateTakeItems:  AutomateDisable,
			},
		},
		{
			name: "malformed fields fall back per field",
			md: ModData{
				KeyName:          "Still read",
				KeyOrder:         "third",
				KeyIgnored:       "maybe",
				KeyAutomateStore: "sometimes",
				KeyAutomateTake:  "prefer",
			},
			want: &ContainerData{
				Name:               "Still read",
				AutomateStoreItems: AutomateAllow,
				AutomateTakeItems:  AutomatePrefer,
			},
			wantErrKey: []string{KeyOrder, KeyIgnored, KeyAutomateStore},
		},
		{
			name: "negative order",
			md:   ModData{KeyOrder: " -2 "},
			want: &ContainerData{Order: -2, AutomateStoreItems: AutomateAllow, AutomateTakeItems: AutomateAllow},
		},
		{
			name: "order with leading zero is decimal",
			md:   ModData{KeyOrder: "010"},
			want: &ContainerData{Order: 10, AutomateStoreItems: AutomateAllow, AutomateTakeItems: AutomateAllow},
		},
		{
			name: "order 09 is nine",
			md:   ModData{KeyOrder: "09"},
			want: &ContainerData{Order: 9, AutomateStoreItems: AutomateAllow, AutomateTakeItems: AutomateAllow},
		},
		{
			name:       "hex order is malformed",
			md:         ModData{KeyOrder: "0x10"},
			want:       NewContainerData(),
			wantErrKey: []string{KeyOrder},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContainerDataFromModData(tt.md)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ContainerDataFromModData() mismatch (-want +got):\n%s", diff)
			}
			if len(tt.wantErrKey) == 0 {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected parse errors for %v, got nil", tt.wantErrKey)
			}
			for _, key := range tt.wantErrKey {
				if !hasParseErrorFor(err, key) {
					t.Errorf("expected ConfigParseError for %s in %v", key, err)
				}
			}
		})
	}
}

// hasParseErrorFor walks a joined error looking for a ConfigParseError on key.
func hasParseErrorFor(err error, key string) bool {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		var pe *ConfigParseError
		return errors.As(err, &pe) && pe.Key == key
	}
	for _, e := range joined.Unwrap() {
		var pe *ConfigParseError
		if errors.As(e, &pe) && pe.Key == key {
			return true
		}
	}
	return false
}

func TestContainerDataToModData(t *testing.T) {
	t.Run("defaults remove recognized keys", func(t *testing.T) {
		md := ModData{KeyName: "old", KeyOrder: "4", "other-mod/flag": "1"}
		NewContainerData().ToModData(md)
		want := ModData{"other-mod/flag": "1"}
		if diff := cmp.Diff(want, md); diff != "" {
			t.Errorf("ToModData() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non-default values are written", func(t *testing.T) {
		md := ModData{}
		d := &ContainerData{
			Name:               "Ores",
			Order:              -1,
			IsIgnored:          true,
			AutomateStoreItems: AutomateDisable,
			AutomateTakeItems:  AutomateAllow,
		}
		d.ToModData(md)
		want := ModData{
			KeyName:          "Ores",
			KeyOrder:         "-1",
			KeyIgnored:       "true",
			KeyAutomateStore: "disable",
		}
		if diff := cmp.Diff(want, md); diff != "" {
			t.Errorf("ToModData() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil map is a no-op", func(t *testing.T) {
		NewContainerData().ToModData(nil)
	})
}

func TestContainerDataRoundTrip(t *testing.T) {
	original := ModData{
		KeyName:            "Dresser upstairs",
		KeyCategory:        "Clothes",
		KeyOrder:           "7",
		KeyIgnored:         "true",
		KeyAutomateStore:   "prefer",
		KeyAutomateTake:    "disable",
		"automate/ignore":  "true",
		"someone-else/key": "value with spaces",
	}
	md := ModData{}
	for k, v := range original {
		md[k] = v
	}

	d, err := ContainerDataFromModData(md)
	if err != nil {
		t.Fatalf("ContainerDataFromModData: %v", err)
	}
	d.ToModData(md)

	if diff := cmp.Diff(original, md); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	again, err := ContainerDataFromModData(md)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if diff := cmp.Diff(d, again); diff != "" {
		t.Errorf("reparsed data mismatch (-want +got):\n%s", diff)
	}
}

func TestContainerDataSet(t *testing.T) {
	d := NewContainerData()

	if err := d.Set("name", "Seeds"); err != nil {
		t.Fatal(err)
	}
	if err := d.Set(KeyOrder, "12"); err != nil {
		t.Fatal(err)
	}
	if err := d.Set("ignored", "yes"); err == nil {
		t.Fatal("expected parse error for ignored=yes")
	}
	if err := d.Set("colour", "red"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	want := &ContainerData{Name: "Seeds", Order: 12, AutomateStoreItems: AutomateAllow, AutomateTakeItems: AutomateAllow}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Set() mismatch (-want +got):\n%s", diff)
	}
}

func TestContainerDataDisplayName(t *testing.T) {
	d := NewContainerData()
	if got := d.DisplayName("Chest"); got != "Chest" {
		t.Errorf("expected fallback, got %q", got)
	}
	if !d.IsDefault() {
		t.Error("new data should be default")
	}
	d.Name = "Gems"
	if got := d.DisplayName("Chest"); got != "Gems" {
		t.Errorf("expected Gems, got %q", got)
	}
	if d.IsDefault() {
		t.Error("named data should not be default")
	}
}
