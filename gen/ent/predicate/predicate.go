// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// Receipt is the predicate function for receipt builders.
type Receipt func(*sql.Selector)

// ReceiptFile is the predicate function for receiptfile builders.
type ReceiptFile func(*sql.Selector)

// User is the predicate function for user builders.
type User func(*sql.Selector)
