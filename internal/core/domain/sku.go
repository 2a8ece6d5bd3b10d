package domain

// FallbackGroupKey collects catalog records whose code predates the
// canonical grammar.
const FallbackGroupKey = "unknown"

// SkuRecord is a product in the kiosk catalog. SkuCode is immutable once
// created; edits only touch Name and IsActive.
type SkuRecord struct {
	ID         string `json:"id" yaml:"id"`
	SkuCode    string `json:"sku_code" yaml:"sku_code"`
	ModelCode  string `json:"model_code" yaml:"model_code,omitempty"`
	WidthCm    int    `json:"width_cm" yaml:"width_cm,omitempty"`
	FabricCode string `json:"fabric_code" yaml:"fabric_code,omitempty"`
	ColorCode  string `json:"color_code" yaml:"color_code,omitempty"`
	Name       string `json:"name" yaml:"name"`
	IsActive   bool   `json:"is_active" yaml:"is_active"`
}

// SkuDraft carries the fields a master enters to create a record.
type SkuDraft struct {
	ModelCode  string `json:"model_code"  validate:"required,alphanum"`
	WidthCm    int    `json:"width_cm"    validate:"required,gt=0"`
	FabricCode string `json:"fabric_code" validate:"required,alphanum"`
	ColorCode  string `json:"color_code"  validate:"required,numeric"`
	Name       string `json:"name"        validate:"required"`
}

// SkuParts is the structural breakdown of a canonical code.
type SkuParts struct {
	Group       string `json:"group" yaml:"group"`
	SizeNumber  int    `json:"size_number" yaml:"size_number"`
	Model       string `json:"model" yaml:"model"`
	ColorNumber int    `json:"color_number" yaml:"color_number"`
}

// CatalogGroup is a display partition of the catalog. It is derived on every
// load and never mutated.
type CatalogGroup struct {
	GroupKey string      `json:"group_key" yaml:"group_key"`
	Entries  []SkuRecord `json:"entries" yaml:"entries"`
}
