package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
)

func init() {
	sidGenerator = shortid.MustNew(1, shortid.DefaultABC, 2342)
}

// GenerateInvoiceNumber returns a short human-facing invoice number
// ex INV-vhGybFcPR. Callers may supply their own numbering instead.
func GenerateInvoiceNumber() string {
	sid, err := sidGenerator.Generate()
	if err != nil {
		return fmt.Sprintf("INV-%s", GenerateUUID())
	}
	return fmt.Sprintf("INV-%s", sid)
}

// Entity id prefixes
const (
	UUID_PREFIX_CUSTOMER       = "cust"
	UUID_PREFIX_INVOICE        = "inv"
	UUID_PREFIX_INVOICE_ITEM   = "item"
	UUID_PREFIX_PAYMENT_RECORD = "pay"
)
