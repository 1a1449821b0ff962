package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem позиция корзины; цена в баллах
type CartItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// LineTotal стоимость строки: цена * количество
func (it CartItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
}

// CartSnapshot снимок корзины с вычисленными итогами (только чтение)
type CartSnapshot struct {
	Items     []CartItem      `json:"items"`
	ItemCount int64           `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// Empty reports whether the snapshot has no lines.
func (s CartSnapshot) Empty() bool { return len(s.Items) == 0 }

// Region регион доставки (штат)
type Region struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Field имя поля формы
type Field string

const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldStreet       Field = "street"
	FieldNeighborhood Field = "neighborhood"
	FieldNumber       Field = "number"
	FieldCity         Field = "city"
	FieldRegion       Field = "region"
	FieldPostalCode   Field = "postal_code"
	FieldCardNumber   Field = "card_number"
	FieldExpiration   Field = "expiration"
	FieldSecurityCode Field = "security_code"
)

// CheckoutFields значения полей формы оформления заказа
type CheckoutFields struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	Number       string `json:"number"`
	City         string `json:"city"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code"`
	CardNumber   string `json:"card_number"`
	Expiration   string `json:"expiration"` // MM/YYYY
	SecurityCode string `json:"security_code"`
}

// Value возвращает сырое значение поля
func (f CheckoutFields) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldStreet:
		return f.Street
	case FieldNeighborhood:
		return f.Neighborhood
	case FieldNumber:
		return f.Number
	case FieldCity:
		return f.City
	case FieldRegion:
		return f.Region
	case FieldPostalCode:
		return f.PostalCode
	case FieldCardNumber:
		return f.CardNumber
	case FieldExpiration:
		return f.Expiration
	case FieldSecurityCode:
		return f.SecurityCode
	default:
		return ""
	}
}

// OrderPayload заказ, передаваемый во внешний транспорт
type OrderPayload struct {
	Reference uuid.UUID      `json:"reference"`
	Customer  CheckoutFields `json:"customer"`
	Cart      CartSnapshot   `json:"cart"`
	CreatedAt time.Time      `json:"created_at"`
}
