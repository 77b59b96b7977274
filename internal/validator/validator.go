package validator

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"biobag/internal/domain/model"
	"biobag/internal/usecase"

	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	phoneCharsRe = regexp.MustCompile(`^\+?[0-9\s-]+$`)
	pincodeRe    = regexp.MustCompile(`^\d{6}$`)
)

// usecaseの各Validatorを満たす。最初に落ちた項目のメッセージを400で返す
type Validator struct {
	v *validatorv10.Validate
}

var (
	_ usecase.OrderValidator   = (*Validator)(nil)
	_ usecase.ProductValidator = (*Validator)(nil)
	_ usecase.ContactValidator = (*Validator)(nil)
)

func New() *Validator {
	v := validatorv10.New()

	// エラーの項目名はjsonタグの名前にする
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "phone", validatePhone)
	mustRegister(v, "pincode", validatePincode)
	mustRegister(v, "category", validateCategory)

	// decimalはタグで比較できないのでstruct単位で見る
	v.RegisterStructValidation(orderItemStructValidation, orderItemRequest{})
	v.RegisterStructValidation(productStructValidation, productRequest{})

	return &Validator{v: v}
}

func mustRegister(v *validatorv10.Validate, tag string, fn validatorv10.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func (x *Validator) ValidatePlaceOrder(in usecase.PlaceOrderInput) error {
	return x.check(toOrderRequest(in), orderMessages)
}

func (x *Validator) ValidateProduct(in usecase.ProductInput) error {
	return x.check(toProductRequest(in), productMessages)
}

func (x *Validator) ValidateContact(in usecase.SubmitContactInput) error {
	return x.check(toContactRequest(in), contactMessages)
}

func (x *Validator) check(req interface{}, messages map[string]string) error {
	err := x.v.Struct(req)
	if err == nil {
		return nil
	}

	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return usecase.WrapHTTPError(http.StatusBadRequest, "invalid request", err)
	}
	return usecase.NewHTTPError(http.StatusBadRequest, messageFor(ve[0], messages))
}

// "項目.タグ" → "項目" の順で探す
func messageFor(fe validatorv10.FieldError, messages map[string]string) string {
	// features[0] → features
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[field]; ok {
		return msg
	}
	return "invalid " + field
}

// 10〜15桁。先頭の+と、空白・ハイフンの区切りは許す
func validatePhone(fl validatorv10.FieldLevel) bool {
	s := fl.Field().String()
	if !phoneCharsRe.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10 && digits <= 15
}

func validatePincode(fl validatorv10.FieldLevel) bool {
	return pincodeRe.MatchString(fl.Field().String())
}

func validateCategory(fl validatorv10.FieldLevel) bool {
	return model.ProductCategory(fl.Field().String()).Valid()
}

func orderItemStructValidation(sl validatorv10.StructLevel) {
	it := sl.Current().Interface().(orderItemRequest)
	if it.PricePerKg.IsNegative() {
		sl.ReportError(it.PricePerKg, "price_per_kg", "PricePerKg", "gte0", "")
	}
}

func productStructValidation(sl validatorv10.StructLevel) {
	p := sl.Current().Interface().(productRequest)
	if p.PricePerKg.IsNegative() {
		sl.ReportError(p.PricePerKg, "price_per_kg", "PricePerKg", "gte0", "")
	}
}
