package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mesh-intelligence/chests/internal/world"
	"github.com/mesh-intelligence/chests/pkg/types"
)

// containerView is the printable form of one container.
type containerView struct {
	EntityID      string             `json:"entity_id"`
	Kind          types.Kind         `json:"kind"`
	Location      string             `json:"location"`
	Name          string             `json:"name"`
	Category      string             `json:"category,omitempty"`
	Order         int                `json:"order"`
	Ignored       bool               `json:"ignored"`
	AutomateStore types.AutomateMode `json:"automate_store,omitempty"`
	AutomateTake  types.AutomateMode `json:"automate_take,omitempty"`
	Items         int                `json:"items"`
	Capacity      int                `json:"capacity,omitempty"`
	Accepts       []string           `json:"accepts,omitempty"`
	Slots         []*slotView        `json:"slots,omitempty"`
}

type slotView struct {
	Slot int `json:"slot"`
	*types.Item
}

// view builds the printable form of c. Slots and accepted categories are
// filled only when detail is set.
func (s *session) view(c types.Container, e world.Entity, detail bool) *containerView {
	data := c.Data()
	v := &containerView{
		EntityID: e.EntityID(),
		Kind:     c.Kind(),
		Location: e.Location(),
		Name:     data.DisplayName(e.Label()),
		Category: data.Category,
		Order:    data.Order,
		Ignored:  data.IsIgnored,
		Items:    c.Inventory().Count(),
		Capacity: e.Record().Capacity,
	}
	if c.CanConfigureAutomate() {
		v.AutomateStore = data.AutomateStoreItems
		v.AutomateTake = data.AutomateTakeItems
	}
	if !detail {
		return v
	}
	if s.env.Filters.Restricted(c.Kind()) {
		set, err := s.env.Filters.Categories(c.Kind())
		if err != nil {
			s.log.Warn().Err(err).Str("kind", string(c.Kind())).Msg("accepted categories unavailable")
		}
		for _, cat := range set.Sorted() {
			v.Accepts = append(v.Accepts, cat.String())
		}
	}
	inv := c.Inventory()
	for i := 0; i < inv.Len(); i++ {
		if it := inv.At(i); it != nil {
			v.Slots = append(v.Slots, &slotView{Slot: i, Item: it})
		}
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeTable(w io.Writer, views []*containerView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tLOCATION\tNAME\tCATEGORY\tITEMS")
	for _, v := range views {
		name := v.Name
		if v.Ignored {
			name += " (ignored)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", v.EntityID, v.Kind, v.Location, name, v.Category, v.Items)
	}
	return tw.Flush()
}

func writeDetail(w io.Writer, v *containerView) {
	fmt.Fprintf(w, "ID:        %s\n", v.EntityID)
	fmt.Fprintf(w, "Kind:      %s\n", v.Kind)
	fmt.Fprintf(w, "Location:  %s\n", v.Location)
	fmt.Fprintf(w, "Name:      %s\n", v.Name)
	if v.Category != "" {
		fmt.Fprintf(w, "Category:  %s\n", v.Category)
	}
	fmt.Fprintf(w, "Order:     %d\n", v.Order)
	fmt.Fprintf(w, "Ignored:   %t\n", v.Ignored)
	if v.AutomateStore != "" {
		fmt.Fprintf(w, "Automate:  store=%s take=%s\n", v.AutomateStore, v.AutomateTake)
	}
	if v.Capacity > 0 {
		fmt.Fprintf(w, "Items:     %d/%d\n", v.Items, v.Capacity)
	} else {
		fmt.Fprintf(w, "Items:     %d\n", v.Items)
	}
	if len(v.Accepts) > 0 {
		fmt.Fprintf(w, "Accepts:   %v\n", v.Accepts)
	}
	if len(v.Slots) > 0 {
		fmt.Fprintln(w, "\nSlots:")
		for _, sl := range v.Slots {
			fmt.Fprintf(w, "  [%d] %s x%d (%s) %s\n", sl.Slot, sl.Name, sl.Stack, sl.Category, sl.ItemID)
		}
	}
}
