// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ReceiptsColumns holds the columns for the "receipts" table.
	ReceiptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "store_name", Type: field.TypeString},
		{Name: "receipt_date", Type: field.TypeTime, SchemaType: map[string]string{"postgres": "date"}},
		{Name: "category", Type: field.TypeString},
		{Name: "payment_method", Type: field.TypeString, Nullable: true},
		{Name: "subtotal", Type: field.TypeFloat64, Nullable: true, SchemaType: map[string]string{"postgres": "numeric(12,2)"}},
		{Name: "tax", Type: field.TypeFloat64, Nullable: true, SchemaType: map[string]string{"postgres": "numeric(12,2)"}},
		{Name: "total", Type: field.TypeFloat64, SchemaType: map[string]string{"postgres": "numeric(12,2)"}},
		{Name: "status", Type: field.TypeString},
		{Name: "needs_review", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeUUID},
	}
	// ReceiptsTable holds the schema information for the "receipts" table.
	ReceiptsTable = &schema.Table{
		Name:       "receipts",
		Columns:    ReceiptsColumns,
		PrimaryKey: []*schema.Column{ReceiptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "receipts_users_receipts",
				Columns:    []*schema.Column{ReceiptsColumns[12]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "receipt_user_id_receipt_date",
				Unique:  false,
				Columns: []*schema.Column{ReceiptsColumns[12], ReceiptsColumns[2]},
			},
			{
				Name:    "receipt_user_id_store_name",
				Unique:  false,
				Columns: []*schema.Column{ReceiptsColumns[12], ReceiptsColumns[1]},
			},
		},
	}
	// ReceiptFilesColumns holds the columns for the "receipt_files" table.
	ReceiptFilesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "source_path", Type: field.TypeString},
		{Name: "content_hash", Type: field.TypeBytes, SchemaType: map[string]string{"postgres": "bytea"}},
		{Name: "filename", Type: field.TypeString},
		{Name: "file_ext", Type: field.TypeString},
		{Name: "file_size", Type: field.TypeInt},
		{Name: "uploaded_at", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeUUID},
	}
	// ReceiptFilesTable holds the schema information for the "receipt_files" table.
	ReceiptFilesTable = &schema.Table{
		Name:       "receipt_files",
		Columns:    ReceiptFilesColumns,
		PrimaryKey: []*schema.Column{ReceiptFilesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "receipt_files_users_files",
				Columns:    []*schema.Column{ReceiptFilesColumns[7]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "receiptfile_user_id_content_hash",
				Unique:  true,
				Columns: []*schema.Column{ReceiptFilesColumns[7], ReceiptFilesColumns[2]},
			},
			{
				Name:    "receiptfile_user_id_uploaded_at",
				Unique:  false,
				Columns: []*schema.Column{ReceiptFilesColumns[7], ReceiptFilesColumns[6]},
			},
		},
	}
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "email", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       "users",
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ReceiptsTable,
		ReceiptFilesTable,
		UsersTable,
	}
)

func init() {
	ReceiptsTable.ForeignKeys[0].RefTable = UsersTable
	ReceiptsTable.Annotation = &entsql.Annotation{
		Table: "receipts",
	}
	ReceiptFilesTable.ForeignKeys[0].RefTable = UsersTable
	ReceiptFilesTable.Annotation = &entsql.Annotation{
		Table: "receipt_files",
	}
	UsersTable.Annotation = &entsql.Annotation{
		Table: "users",
	}
}
