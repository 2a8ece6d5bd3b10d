package domain

// Capability names an operator capability gated by master mode.
type Capability string

const (
	CapReorder            Capability = "reorder"
	CapEditQty            Capability = "editQty"
	CapAddSkuToShift      Capability = "addSkuToShift"
	CapRemoveSkuFromShift Capability = "removeSkuFromShift"
	CapManualMode         Capability = "manualMode"
	CapSkipSku            Capability = "skipSku"
	CapShiftPlanImport    Capability = "shiftPlanImport"
)

// Capabilities lists every capability in display order.
var Capabilities = []Capability{
	CapReorder,
	CapEditQty,
	CapAddSkuToShift,
	CapRemoveSkuFromShift,
	CapManualMode,
	CapSkipSku,
	CapShiftPlanImport,
}

// Settings is the server-held kiosk configuration. The server is the source
// of truth; the client keeps the last copy it successfully read.
type Settings struct {
	Reorder            bool `json:"operator_can_reorder"`
	EditQty            bool `json:"operator_can_edit_qty"`
	AddSkuToShift      bool `json:"operator_can_add_sku_to_shift"`
	RemoveSkuFromShift bool `json:"operator_can_remove_sku_from_shift"`
	ManualMode         bool `json:"operator_can_manual_mode"`
	SkipSku            bool `json:"operator_can_skip_sku"`
	ShiftPlanImport    bool `json:"operator_can_shift_plan_import"`
	TimeoutMinutes     int  `json:"master_session_timeout_min"`
}

// SettingsState is the settings envelope returned by GET/POST settings.
type SettingsState struct {
	Settings   Settings `json:"settings"`
	MasterMode bool     `json:"master_mode"`
	MasterID   string   `json:"master_id"`
}

// PermissionSnapshot is the operator capability view exposed to the rest of
// the kiosk. Every flag is false while master mode is inactive.
type PermissionSnapshot struct {
	Reorder            bool `json:"reorder"`
	EditQty            bool `json:"editQty"`
	AddSkuToShift      bool `json:"addSkuToShift"`
	RemoveSkuFromShift bool `json:"removeSkuFromShift"`
	ManualMode         bool `json:"manualMode"`
	SkipSku            bool `json:"skipSku"`
	ShiftPlanImport    bool `json:"shiftPlanImport"`
}

// SnapshotFrom derives the snapshot for the given session state.
func SnapshotFrom(s Settings, active bool) PermissionSnapshot {
	if !active {
		return PermissionSnapshot{}
	}
	return PermissionSnapshot{
		Reorder:            s.Reorder,
		EditQty:            s.EditQty,
		AddSkuToShift:      s.AddSkuToShift,
		RemoveSkuFromShift: s.RemoveSkuFromShift,
		ManualMode:         s.ManualMode,
		SkipSku:            s.SkipSku,
		ShiftPlanImport:    s.ShiftPlanImport,
	}
}

// Map renders the snapshot keyed by capability name.
func (p PermissionSnapshot) Map() map[Capability]bool {
	return map[Capability]bool{
		CapReorder:            p.Reorder,
		CapEditQty:            p.EditQty,
		CapAddSkuToShift:      p.AddSkuToShift,
		CapRemoveSkuFromShift: p.RemoveSkuFromShift,
		CapManualMode:         p.ManualMode,
		CapSkipSku:            p.SkipSku,
		CapShiftPlanImport:    p.ShiftPlanImport,
	}
}

// Any reports whether at least one capability is granted.
func (p PermissionSnapshot) Any() bool {
	for _, v := range p.Map() {
		if v {
			return true
		}
	}
	return false
}

// ControlSet describes which setting controls the UI currently renders:
// logical control name → present.
type ControlSet map[Capability]bool

// ParseCapability returns the capability with the given name.
func ParseCapability(name string) (Capability, bool) {
	for _, c := range Capabilities {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}
