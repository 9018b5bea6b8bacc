package resource

// Contact is the persisted resource the bulk endpoints operate on.
type Contact struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"type:varchar(255);not null"`
	Email     string `json:"email" gorm:"type:varchar(255);not null;index"`
	Phone     string `json:"phone" gorm:"type:varchar(64)"`
	GroupName string `json:"group" gorm:"type:varchar(255);index"`
}

// ContactSchema is the record-validation schema for Contact. "id" is the
// lookup field: read-only on input, required for bulk update matching.
func ContactSchema() *Schema {
	return NewSchema("contacts", "id", []Field{
		{Name: "id", Kind: KindNumber, ReadOnly: true},
		{Name: "name", Kind: KindString, Rules: "min=1,max=255", Required: true},
		{Name: "email", Kind: KindString, Rules: "required,email", Required: true},
		{Name: "phone", Kind: KindString, Rules: "max=64"},
		{Name: "group", Kind: KindString, Rules: "max=255"},
	})
}

// Field implements bulk.Entity using the wire field names.
func (c *Contact) Field(name string) any {
	switch name {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "email":
		return c.Email
	case "phone":
		return c.Phone
	case "group":
		return c.GroupName
	default:
		return nil
	}
}

// Representation renders the contact in its single-record wire shape.
func (c *Contact) Representation() map[string]any {
	return map[string]any{
		"id":    c.ID,
		"name":  c.Name,
		"email": c.Email,
		"phone": c.Phone,
		"group": c.GroupName,
	}
}

// Apply copies normalized values onto the contact. Keys are wire field
// names; absent keys leave the current value untouched, which is what
// partial updates rely on.
func (c *Contact) Apply(values map[string]any) {
	if v, ok := values["name"].(string); ok {
		c.Name = v
	}
	if v, ok := values["email"].(string); ok {
		c.Email = v
	}
	if v, ok := values["phone"].(string); ok {
		c.Phone = v
	}
	if v, ok := values["group"].(string); ok {
		c.GroupName = v
	}
}

// FromValues builds a new contact from normalized create values.
func FromValues(values map[string]any) *Contact {
	c := &Contact{}
	c.Apply(values)
	return c
}

// Column maps a wire field name to its database column. Only fields the
// API filters on are mapped.
func Column(field string) (string, bool) {
	switch field {
	case "id":
		return "id", true
	case "email":
		return "email", true
	case "group":
		return "group_name", true
	default:
		return "", false
	}
}
