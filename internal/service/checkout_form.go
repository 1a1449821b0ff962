package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"storefront/internal/domain"
)

// FieldRule правило поля: обязательность и формат (тег validator)
type FieldRule struct {
	Field    domain.Field
	Required bool
	Format   string
}

// CheckoutRules порядок полей совпадает с порядком на странице
var CheckoutRules = []FieldRule{
	{Field: domain.FieldName, Required: true},
	{Field: domain.FieldEmail, Required: true, Format: "email"},
	{Field: domain.FieldStreet, Required: true},
	{Field: domain.FieldNeighborhood, Required: true},
	{Field: domain.FieldNumber, Required: true, Format: "number"},
	{Field: domain.FieldCity, Required: true},
	{Field: domain.FieldRegion, Required: true},
	{Field: domain.FieldPostalCode, Required: true, Format: "number"},
	{Field: domain.FieldCardNumber, Required: true, Format: "number"},
	{Field: domain.FieldExpiration, Required: true, Format: "expiry"},
	{Field: domain.FieldSecurityCode, Required: true, Format: "number"},
}

const expirationLayout = "01/2006"

// FormValidator применяет таблицу правил к значениям формы
type FormValidator struct {
	validate *validator.Validate
	rules    []FieldRule
}

// NewFormValidator now is the clock used by the expiry rule; nil means time.Now.
func NewFormValidator(now func() time.Time) *FormValidator {
	if now == nil {
		now = time.Now
	}
	v := validator.New()
	if err := v.RegisterValidation("expiry", expiryRule(now)); err != nil {
		panic(err) // constant tag name, cannot fail
	}
	return &FormValidator{validate: v, rules: CheckoutRules}
}

// expiryRule accepts MM/YYYY not earlier than the current month.
func expiryRule(now func() time.Time) validator.Func {
	return func(fl validator.FieldLevel) bool {
		exp, err := time.Parse(expirationLayout, fl.Field().String())
		if err != nil {
			return false
		}
		n := now()
		current := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, time.UTC)
		return !exp.Before(current)
	}
}

// Check проверяет все поля без остановки на первой ошибке
func (fv *FormValidator) Check(fields domain.CheckoutFields) ValidationErrors {
	var errs ValidationErrors
	for _, rule := range fv.rules {
		value := strings.TrimSpace(fields.Value(rule.Field))
		if value == "" {
			if rule.Required {
				errs = append(errs, &FieldError{Field: rule.Field, Err: ErrRequiredFieldMissing})
			}
			continue
		}
		if rule.Format == "" {
			continue
		}
		if err := fv.validate.Var(value, rule.Format); err != nil {
			errs = append(errs, &FieldError{Field: rule.Field, Err: ErrInvalidFormat})
		}
	}
	return errs
}

// RegionCatalog список регионов, которые предлагает селектор
type RegionCatalog interface {
	Regions() []domain.Region
	Contains(code string) bool
}

// CheckoutForm модель формы оформления заказа
type CheckoutForm struct {
	cart      CartStore
	validator *FormValidator

	mu      sync.RWMutex
	fields  domain.CheckoutFields
	regions RegionCatalog
}

func NewCheckoutForm(cart CartStore, fv *FormValidator) *CheckoutForm {
	if fv == nil {
		fv = NewFormValidator(nil)
	}
	return &CheckoutForm{cart: cart, validator: fv}
}

// Fill replaces all field values.
func (f *CheckoutForm) Fill(fields domain.CheckoutFields) {
	f.mu.Lock()
	f.fields = fields
	f.mu.Unlock()
}

func (f *CheckoutForm) Fields() domain.CheckoutFields {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fields
}

// UseRegions привязывает селектор региона к каталогу текущего визита
func (f *CheckoutForm) UseRegions(c RegionCatalog) {
	f.mu.Lock()
	f.regions = c
	f.mu.Unlock()
}

// Validate returns every field error plus ErrEmptyCart once when the cart has
// no items. The error result is reserved for failures reading the cart.
func (f *CheckoutForm) Validate(ctx context.Context) (ValidationErrors, error) {
	return f.ValidateFields(ctx, f.Fields())
}

// ValidateFields проверяет переданную копию значений, а не текущее состояние формы
func (f *CheckoutForm) ValidateFields(ctx context.Context, fields domain.CheckoutFields) (ValidationErrors, error) {
	f.mu.RLock()
	catalog := f.regions
	f.mu.RUnlock()

	errs := f.validator.Check(fields)

	// the selector only offers loaded codes
	if catalog != nil && !errs.Has(domain.FieldRegion, ErrRequiredFieldMissing) {
		if len(catalog.Regions()) > 0 && !catalog.Contains(strings.TrimSpace(fields.Region)) {
			errs = append(errs, &FieldError{Field: domain.FieldRegion, Err: ErrInvalidFormat})
		}
	}

	snap, err := f.cart.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Empty() {
		errs = append(errs, ErrEmptyCart)
	}
	return errs, nil
}
