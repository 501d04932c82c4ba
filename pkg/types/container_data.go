package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Metadata keys for persisted container configuration. Keys outside this set
// belong to other tooling and are never touched.
const (
	ModDataPrefix = "chests/"

	KeyName          = ModDataPrefix + "name"
	KeyCategory      = ModDataPrefix + "category"
	KeyOrder         = ModDataPrefix + "order"
	KeyIgnored       = ModDataPrefix + "ignored"
	KeyAutomateStore = ModDataPrefix + "automate-store"
	KeyAutomateTake  = ModDataPrefix + "automate-take"
)

// RecognizedKeys lists the metadata keys ContainerData reads and writes.
var RecognizedKeys = []string{
	KeyName,
	KeyCategory,
	KeyOrder,
	KeyIgnored,
	KeyAutomateStore,
	KeyAutomateTake,
}

// AutomateMode controls how an automation integration may use a container.
type AutomateMode string

// Automate modes.
const (
	AutomateAllow   AutomateMode = "allow"
	AutomatePrefer  AutomateMode = "prefer"
	AutomateDisable AutomateMode = "disable"
)

// ParseAutomateMode parses a mode name, ignoring case and surrounding space.
func ParseAutomateMode(s string) (AutomateMode, error) {
	switch m := AutomateMode(strings.ToLower(strings.TrimSpace(s))); m {
	case AutomateAllow, AutomatePrefer, AutomateDisable:
		return m, nil
	}
	return AutomateAllow, fmt.Errorf("unknown automate mode %q", s)
}

// ContainerData is the configuration a player attaches to a container. It
// is stored in the entity's ModData under the keys above.
type ContainerData struct {
	Name               string
	Category           string
	Order              int
	IsIgnored          bool
	AutomateStoreItems AutomateMode
	AutomateTakeItems  AutomateMode
}

// NewContainerData returns configuration with every field at its default.
func NewContainerData() *ContainerData {
	return &ContainerData{
		AutomateStoreItems: AutomateAllow,
		AutomateTakeItems:  AutomateAllow,
	}
}

// ConfigParseError describes one metadata field that could not be parsed.
// The field falls back to its default; the error is informational only.
type ConfigParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parse %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// ContainerDataFromModData reads configuration from md. Missing keys take
// their default. A malformed value also takes its default and contributes a
// *ConfigParseError to the returned error; the returned data is complete and
// usable either way.
func ContainerDataFromModData(md ModData) (*ContainerData, error) {
	d := NewContainerData()
	var errs []error

	if v, ok := md[KeyName]; ok {
		d.Name = v
	}
	if v, ok := md[KeyCategory]; ok {
		d.Category = v
	}
	if v, ok := md[KeyOrder]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, &ConfigParseError{Key: KeyOrder, Value: v, Err: err})
		} else {
			d.Order = n
		}
	}
	if v, ok := md[KeyIgnored]; ok {
		b, err := cast.ToBoolE(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, &ConfigParseError{Key: KeyIgnored, Value: v, Err: err})
		} else {
			d.IsIgnored = b
		}
	}
	if v, ok := md[KeyAutomateStore]; ok {
		m, err := ParseAutomateMode(v)
		if err != nil {
			errs = append(errs, &ConfigParseError{Key: KeyAutomateStore, Value: v, Err: err})
		} else {
			d.AutomateStoreItems = m
		}
	}
	if v, ok := md[KeyAutomateTake]; ok {
		m, err := ParseAutomateMode(v)
		if err != nil {
			errs = append(errs, &ConfigParseError{Key: KeyAutomateTake, Value: v, Err: err})
		} else {
			d.AutomateTakeItems = m
		}
	}

	return d, errors.Join(errs...)
}

// ToModData writes the configuration into md. Fields at their default value
// are removed so untouched containers carry no metadata. Keys this package
// does not recognize are left as they are.
func (d *ContainerData) ToModData(md ModData) {
	if md == nil {
		return
	}
	putOrDelete(md, KeyName, d.Name, d.Name == "")
	putOrDelete(md, KeyCategory, d.Category, d.Category == "")
	putOrDelete(md, KeyOrder, strconv.Itoa(d.Order), d.Order == 0)
	putOrDelete(md, KeyIgnored, strconv.FormatBool(d.IsIgnored), !d.IsIgnored)
	putOrDelete(md, KeyAutomateStore, string(d.AutomateStoreItems), d.AutomateStoreItems == AutomateAllow || d.AutomateStoreItems == "")
	putOrDelete(md, KeyAutomateTake, string(d.AutomateTakeItems), d.AutomateTakeItems == AutomateAllow || d.AutomateTakeItems == "")
}

func putOrDelete(md ModData, key, value string, isDefault bool) {
	if isDefault {
		delete(md, key)
		return
	}
	md[key] = value
}

// DisplayName returns the configured name, or fallback when none is set.
func (d *ContainerData) DisplayName(fallback string) string {
	if d.HasDefaultName() {
		return fallback
	}
	return d.Name
}

// HasDefaultName reports whether the player has not named the container.
func (d *ContainerData) HasDefaultName() bool {
	return strings.TrimSpace(d.Name) == ""
}

// IsDefault reports whether every field is at its default value.
func (d *ContainerData) IsDefault() bool {
	return *d == *NewContainerData()
}

// Set assigns one field by its metadata key or short field name ("name",
// "order", ...). It returns a *ConfigParseError if the value does not parse
// and ErrUnknownField for an unknown field.
func (d *ContainerData) Set(field, value string) error {
	key := field
	if !strings.HasPrefix(key, ModDataPrefix) {
		key = ModDataPrefix + field
	}
	md := ModData{key: value}
	switch key {
	case KeyName, KeyCategory, KeyOrder, KeyIgnored, KeyAutomateStore, KeyAutomateTake:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	parsed, err := ContainerDataFromModData(md)
	if err != nil {
		return err
	}
	switch key {
	case KeyName:
		d.Name = parsed.Name
	case KeyCategory:
		d.Category = parsed.Category
	case KeyOrder:
		d.Order = parsed.Order
	case KeyIgnored:
		d.IsIgnored = parsed.IsIgnored
	case KeyAutomateStore:
		d.AutomateStoreItems = parsed.AutomateStoreItems
	case KeyAutomateTake:
		d.AutomateTakeItems = parsed.AutomateTakeItems
	}
	return nil
}

// Configuration errors.
var (
	ErrUnknownField = errors.New("unknown configuration field")
)
