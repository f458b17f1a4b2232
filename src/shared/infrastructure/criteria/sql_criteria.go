package criteria

import (
	"fmt"
	"strconv"
	"strings"

	domainCriteria "github.com/TSaugineta225/vendendo-facil/src/shared/domain/criteria"
)

// SQLCriteriaConverter convierte un objeto Criteria en una consulta SQL
type SQLCriteriaConverter struct{}

// NewSQLCriteriaConverter crea una nueva instancia del conversor
func NewSQLCriteriaConverter() *SQLCriteriaConverter {
	return &SQLCriteriaConverter{}
}

// ToSelectSQL convierte un criteria a una consulta SQL SELECT completa con sus parámetros
func (s *SQLCriteriaConverter) ToSelectSQL(baseQuery string, criteria domainCriteria.Criteria) (string, []interface{}) {
	var parts []string
	var params []interface{}

	parts = append(parts, baseQuery)

	if !criteria.Filters.IsEmpty() {
		whereClause, whereParams := s.buildWhereClause(criteria.Filters)
		parts = append(parts, whereClause)
		params = append(params, whereParams...)
	}

	if !criteria.Order.IsEmpty() {
		parts = append(parts, s.buildOrderClause(criteria.Order))
	}

	if criteria.Limit != nil {
		parts = append(parts, s.buildLimitClause(criteria.Limit, criteria.Offset))
	}

	return strings.Join(parts, " "), params
}

// buildWhereClause construye la cláusula WHERE con sus parámetros
func (s *SQLCriteriaConverter) buildWhereClause(filters domainCriteria.Filters) (string, []interface{}) {
	var conditions []string
	var params []interface{}

	paramIndex := 1
	for _, filter := range filters.Items {
		condition, values := s.processFilterWithIndex(filter, paramIndex)
		conditions = append(conditions, condition)
		params = append(params, values...)
		paramIndex += len(values)
	}

	if len(conditions) > 0 {
		return fmt.Sprintf("WHERE %s", strings.Join(conditions, " AND ")), params
	}

	return "", params
}

// buildOrderClause construye la cláusula ORDER BY
func (s *SQLCriteriaConverter) buildOrderClause(order domainCriteria.Order) string {
	orderType := order.OrderType
	if orderType != domainCriteria.DESC {
		orderType = domainCriteria.ASC
	}
	return fmt.Sprintf("ORDER BY %s %s", order.Field, string(orderType))
}

// buildLimitClause construye la cláusula LIMIT y OFFSET
func (s *SQLCriteriaConverter) buildLimitClause(limit, offset *int) string {
	if offset == nil {
		return fmt.Sprintf("LIMIT %d", *limit)
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", *limit, *offset)
}

// processFilterWithIndex convierte un filtro en una condición SQL con índice de parámetro
func (s *SQLCriteriaConverter) processFilterWithIndex(filter domainCriteria.Filter, paramIndex int) (string, []interface{}) {
	if len(filter.Any) > 0 {
		return s.processAnyWithIndex(filter.Any, paramIndex)
	}

	placeholder := "$" + strconv.Itoa(paramIndex)

	switch filter.Operator {
	case domainCriteria.OpEqual, domainCriteria.OpNotEqual, domainCriteria.OpGreaterThan,
		domainCriteria.OpGreaterThanOrEqual, domainCriteria.OpLessThan, domainCriteria.OpLessThanOrEqual:
		return fmt.Sprintf("%s %s %s", filter.Field, filter.Operator, placeholder), []interface{}{filter.Value}
	case domainCriteria.OpLike, domainCriteria.OpILike:
		// Comodines del término se escapan: coincidencia literal por subcadena
		value := filter.Value
		if str, ok := value.(string); ok {
			value = "%" + escapeLike(str) + "%"
		}
		return fmt.Sprintf("%s %s %s ESCAPE '\\'", filter.Field, filter.Operator, placeholder), []interface{}{value}
	default:
		return fmt.Sprintf("%s = %s", filter.Field, placeholder), []interface{}{filter.Value}
	}
}

// processAnyWithIndex arma el grupo OR entre paréntesis
func (s *SQLCriteriaConverter) processAnyWithIndex(filters []domainCriteria.Filter, paramIndex int) (string, []interface{}) {
	conditions := make([]string, 0, len(filters))
	var params []interface{}
	for _, filter := range filters {
		condition, values := s.processFilterWithIndex(filter, paramIndex)
		conditions = append(conditions, condition)
		params = append(params, values...)
		paramIndex += len(values)
	}
	return "(" + strings.Join(conditions, " OR ") + ")", params
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutraliza los comodines de LIKE usando '\' como escape
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
