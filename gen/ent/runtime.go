// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/expenselens/expense-tracker/db/ent/schema"
	"github.com/expenselens/expense-tracker/gen/ent/receipt"
	"github.com/expenselens/expense-tracker/gen/ent/receiptfile"
	"github.com/expenselens/expense-tracker/gen/ent/user"
	"github.com/google/uuid"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	receiptFields := schema.Receipt{}.Fields()
	_ = receiptFields
	// receiptDescStoreName is the schema descriptor for store_name field.
	receiptDescStoreName := receiptFields[2].Descriptor()
	// receipt.StoreNameValidator is a validator for the "store_name" field. It is called by the builders before save.
	receipt.StoreNameValidator = receiptDescStoreName.Validators[0].(func(string) error)
	// receiptDescCategory is the schema descriptor for category field.
	receiptDescCategory := receiptFields[4].Descriptor()
	// receipt.CategoryValidator is a validator for the "category" field. It is called by the builders before save.
	receipt.CategoryValidator = receiptDescCategory.Validators[0].(func(string) error)
	// receiptDescPaymentMethod is the schema descriptor for payment_method field.
	receiptDescPaymentMethod := receiptFields[5].Descriptor()
	// receipt.PaymentMethodValidator is a validator for the "payment_method" field. It is called by the builders before save.
	receipt.PaymentMethodValidator = receiptDescPaymentMethod.Validators[0].(func(string) error)
	// receiptDescStatus is the schema descriptor for status field.
	receiptDescStatus := receiptFields[9].Descriptor()
	// receipt.StatusValidator is a validator for the "status" field. It is called by the builders before save.
	receipt.StatusValidator = receiptDescStatus.Validators[0].(func(string) error)
	// receiptDescNeedsReview is the schema descriptor for needs_review field.
	receiptDescNeedsReview := receiptFields[10].Descriptor()
	// receipt.DefaultNeedsReview holds the default value on creation for the needs_review field.
	receipt.DefaultNeedsReview = receiptDescNeedsReview.Default.(bool)
	// receiptDescCreatedAt is the schema descriptor for created_at field.
	receiptDescCreatedAt := receiptFields[11].Descriptor()
	// receipt.DefaultCreatedAt holds the default value on creation for the created_at field.
	receipt.DefaultCreatedAt = receiptDescCreatedAt.Default.(func() time.Time)
	// receiptDescUpdatedAt is the schema descriptor for updated_at field.
	receiptDescUpdatedAt := receiptFields[12].Descriptor()
	// receipt.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	receipt.DefaultUpdatedAt = receiptDescUpdatedAt.Default.(func() time.Time)
	// receipt.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	receipt.UpdateDefaultUpdatedAt = receiptDescUpdatedAt.UpdateDefault.(func() time.Time)
	// receiptDescID is the schema descriptor for id field.
	receiptDescID := receiptFields[0].Descriptor()
	// receipt.DefaultID holds the default value on creation for the id field.
	receipt.DefaultID = receiptDescID.Default.(func() uuid.UUID)
	receiptfileFields := schema.ReceiptFile{}.Fields()
	_ = receiptfileFields
	// receiptfileDescSourcePath is the schema descriptor for source_path field.
	receiptfileDescSourcePath := receiptfileFields[2].Descriptor()
	// receiptfile.SourcePathValidator is a validator for the "source_path" field. It is called by the builders before save.
	receiptfile.SourcePathValidator = receiptfileDescSourcePath.Validators[0].(func(string) error)
	// receiptfileDescContentHash is the schema descriptor for content_hash field.
	receiptfileDescContentHash := receiptfileFields[3].Descriptor()
	// receiptfile.ContentHashValidator is a validator for the "content_hash" field. It is called by the builders before save.
	receiptfile.ContentHashValidator = receiptfileDescContentHash.Validators[0].(func([]byte) error)
	// receiptfileDescFilename is the schema descriptor for filename field.
	receiptfileDescFilename := receiptfileFields[4].Descriptor()
	// receiptfile.FilenameValidator is a validator for the "filename" field. It is called by the builders before save.
	receiptfile.FilenameValidator = receiptfileDescFilename.Validators[0].(func(string) error)
	// receiptfileDescFileExt is the schema descriptor for file_ext field.
	receiptfileDescFileExt := receiptfileFields[5].Descriptor()
	// receiptfile.FileExtValidator is a validator for the "file_ext" field. It is called by the builders before save.
	receiptfile.FileExtValidator = receiptfileDescFileExt.Validators[0].(func(string) error)
	// receiptfileDescFileSize is the schema descriptor for file_size field.
	receiptfileDescFileSize := receiptfileFields[6].Descriptor()
	// receiptfile.FileSizeValidator is a validator for the "file_size" field. It is called by the builders before save.
	receiptfile.FileSizeValidator = receiptfileDescFileSize.Validators[0].(func(int) error)
	// receiptfileDescUploadedAt is the schema descriptor for uploaded_at field.
	receiptfileDescUploadedAt := receiptfileFields[7].Descriptor()
	// receiptfile.DefaultUploadedAt holds the default value on creation for the uploaded_at field.
	receiptfile.DefaultUploadedAt = receiptfileDescUploadedAt.Default.(func() time.Time)
	// receiptfileDescID is the schema descriptor for id field.
	receiptfileDescID := receiptfileFields[0].Descriptor()
	// receiptfile.DefaultID holds the default value on creation for the id field.
	receiptfile.DefaultID = receiptfileDescID.Default.(func() uuid.UUID)
	userFields := schema.User{}.Fields()
	_ = userFields
	// userDescName is the schema descriptor for name field.
	userDescName := userFields[1].Descriptor()
	// user.NameValidator is a validator for the "name" field. It is called by the builders before save.
	user.NameValidator = userDescName.Validators[0].(func(string) error)
	// userDescCreatedAt is the schema descriptor for created_at field.
	userDescCreatedAt := userFields[3].Descriptor()
	// user.DefaultCreatedAt holds the default value on creation for the created_at field.
	user.DefaultCreatedAt = userDescCreatedAt.Default.(func() time.Time)
	// userDescUpdatedAt is the schema descriptor for updated_at field.
	userDescUpdatedAt := userFields[4].Descriptor()
	// user.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	user.DefaultUpdatedAt = userDescUpdatedAt.Default.(func() time.Time)
	// user.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	user.UpdateDefaultUpdatedAt = userDescUpdatedAt.UpdateDefault.(func() time.Time)
	// userDescID is the schema descriptor for id field.
	userDescID := userFields[0].Descriptor()
	// user.DefaultID holds the default value on creation for the id field.
	user.DefaultID = userDescID.Default.(func() uuid.UUID)
}
