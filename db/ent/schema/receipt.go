package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/db/ent/schema/utils"
)

// Receipt is one category row of a materialized receipt. A single
// physical receipt spans several rows when its items fall into more
// than one category.
type Receipt struct{ ent.Schema }

func (Receipt) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "receipts"},
	}
}

func (Receipt) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.UUID("user_id", uuid.UUID{}),
		field.String("store_name").NotEmpty(),
		field.Time("receipt_date").
			SchemaType(map[string]string{dialect.Postgres: "date"}).
			Immutable(),
		field.String("category").NotEmpty(),
		field.String("payment_method").Optional().Nillable().
			Validate(utils.EnumValidator(constants.PaymentMethodsAsStrings()...)),
		field.Float("subtotal").
			Optional().Nillable().
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.Float("tax").
			Optional().Nillable().
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.Float("total").
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.String("status").
			Validate(utils.EnumValidator(constants.AllStatuses...)),
		field.Bool("needs_review").Default(false),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Receipt) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY receipt rows -> ONE user (FK: receipts.user_id)
		edge.From("user", User.Type).
			Ref("receipts").
			Field("user_id").
			Required().
			Unique(),
	}
}

func (Receipt) Indexes() []ent.Index {
	return []ent.Index{
		// duplicate detection scans by owner and calendar day
		index.Fields("user_id", "receipt_date"),
		index.Fields("user_id", "store_name"),
	}
}
