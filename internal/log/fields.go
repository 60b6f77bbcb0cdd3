package log

import "github.com/shopspring/decimal"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldErrorKind   = "error_kind"
	FieldOperation   = "operation"
	FieldCommand     = "command"
	FieldBackend     = "backend"
	FieldDBPath      = "db_path"
	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldAmount      = "amount"
	FieldKind        = "type"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldCount       = "count"
	FieldOutput      = "output"
	FieldExchange    = "exchange"
	FieldRoutingKey  = "routing_key"
	FieldSheetsRange = "sheets_range"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
	ComponentReport  = "report"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpSummary  = "summary"
	OpValidate = "validate"
	OpExport   = "export"
	OpRender   = "render"
	OpPublish  = "publish"
	OpMigrate  = "migrate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithUser adds the owner of the records being touched
func (f LogFields) WithUser(userID string) LogFields {
	f[FieldUserID] = userID
	return f
}

// WithPeriod adds the optional date window, skipping empty bounds
func (f LogFields) WithPeriod(start, end string) LogFields {
	if start != "" {
		f[FieldStartDate] = start
	}
	if end != "" {
		f[FieldEndDate] = end
	}
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(amount decimal.Decimal, kind, category, date string) LogFields {
	f[FieldAmount] = amount.String()
	f[FieldKind] = kind
	f[FieldCategory] = category
	f[FieldDate] = date
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
