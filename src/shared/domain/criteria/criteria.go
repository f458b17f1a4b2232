package criteria

// Operator es un operador de comparación soportado por los filtros
type Operator string

const (
	OpEqual              Operator = "="
	OpNotEqual           Operator = "!="
	OpGreaterThan        Operator = ">"
	OpGreaterThanOrEqual Operator = ">="
	OpLessThan           Operator = "<"
	OpLessThanOrEqual    Operator = "<="

	// LIKE e ILIKE buscan el valor como subcadena literal
	OpLike  Operator = "LIKE"
	OpILike Operator = "ILIKE"
)

// Filter es una condición sobre un campo. Si Any no es vacío el filtro es
// un grupo de condiciones combinadas con OR y Field/Operator se ignoran.
type Filter struct {
	Field    string
	Operator Operator
	Value    interface{}
	Any      []Filter
}

// AnyOf agrupa filtros que basta con cumplir uno
func AnyOf(filters ...Filter) Filter {
	return Filter{Any: filters}
}

// Filters es la lista de condiciones combinadas con AND
type Filters struct {
	Items []Filter
}

func NewFilters() Filters {
	return Filters{}
}

func (f *Filters) Add(filter Filter) {
	f.Items = append(f.Items, filter)
}

func (f Filters) IsEmpty() bool {
	return len(f.Items) == 0
}

// OrderType es la dirección del ordenamiento
type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Order define el ordenamiento de la consulta
type Order struct {
	Field     string
	OrderType OrderType
}

func NewOrder(field string, orderType OrderType) Order {
	return Order{Field: field, OrderType: orderType}
}

func (o Order) IsEmpty() bool {
	return o.Field == ""
}

// Criteria agrupa filtros, orden y paginación
type Criteria struct {
	Filters Filters
	Order   Order
	Limit   *int
	Offset  *int
}

func NewCriteria(filters Filters, order Order, limit, offset *int) Criteria {
	return Criteria{
		Filters: filters,
		Order:   order,
		Limit:   limit,
		Offset:  offset,
	}
}
