package models

// Product represents a catalog item.
type Product struct {
	ID          string  `json:"id" dynamodbav:"id"`
	Name        string  `json:"name" dynamodbav:"name"`
	Price       float64 `json:"price" dynamodbav:"price"`
	Description string  `json:"description" dynamodbav:"description"`
	ImageURL    string  `json:"imageUrl" dynamodbav:"imageUrl"`
}

// ProductUpdate is a sparse update payload: only non-nil fields are applied.
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.Description == nil && u.ImageURL == nil
}

// Fields returns the supplied attribute names and values in a stable order.
// Used by the DynamoDB repository to build the update expression.
func (u ProductUpdate) Fields() ([]string, []interface{}) {
	var names []string
	var values []interface{}
	if u.Name != nil {
		names = append(names, "name")
		values = append(values, *u.Name)
	}
	if u.Price != nil {
		names = append(names, "price")
		values = append(values, *u.Price)
	}
	if u.Description != nil {
		names = append(names, "description")
		values = append(values, *u.Description)
	}
	if u.ImageURL != nil {
		names = append(names, "imageUrl")
		values = append(values, *u.ImageURL)
	}
	return names, values
}

// Apply overwrites the supplied fields on p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
}
