package domain

// DataType tags an uploaded dataset with its semantic kind. It drives which
// prompt template is built and which heading vocabulary the parser expects.
type DataType string

const (
	DataTypePurchaseOrders DataType = "purchase_orders"
	DataTypeSalesData      DataType = "sales_data"
	DataTypeInventory      DataType = "inventory"
	DataTypeCombined       DataType = "combined"
	DataTypeUnknown        DataType = "unknown"
)

// Valid reports whether t is one of the recognized data type tags.
func (t DataType) Valid() bool {
	switch t {
	case DataTypePurchaseOrders, DataTypeSalesData, DataTypeInventory,
		DataTypeCombined, DataTypeUnknown:
		return true
	}
	return false
}

// FileType represents the allowed spreadsheet upload types. Legacy binary
// .xls is not accepted: the workbook decoder reads OOXML only, so the
// extension must fail fast at validation rather than die mid-decode.
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeCSV  FileType = "csv"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"xlsx": FileTypeXLSX,
	"csv":  FileTypeCSV,
}

// AnalyzerMode selects the depth of the completion system instruction and the
// backing model tier.
type AnalyzerMode string

const (
	ModeDetailed    AnalyzerMode = "detailed"
	ModeLightweight AnalyzerMode = "lightweight"
)
