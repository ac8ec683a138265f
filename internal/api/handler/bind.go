package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// Doğrulama hatalarında alan adı olarak json/form etiketi kullanılır
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	}
}

// FieldError alan bazında doğrulama hatası
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindJSON gövdeyi çözer; hata varsa 400 yazar ve false döner
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// bindQuery sorgu parametrelerini çözer
func bindQuery(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// bindForm multipart/form alanlarını çözer
func bindForm(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindWith(dest, binding.FormMultipart); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// respondBindError ilk alan hatasını mesaj yapar, tüm alanları details'e koyar
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, details[0].Message, details)
		return
	}
	response.BadRequest(c, 10001, "İstek gövdesi okunamadı")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s alanı zorunludur", field)
	case "email":
		return fmt.Sprintf("%s geçerli bir e-posta adresi olmalıdır", field)
	case "uuid":
		return fmt.Sprintf("%s geçerli bir kimlik olmalıdır", field)
	case "url":
		return fmt.Sprintf("%s geçerli bir URL olmalıdır", field)
	case "datetime":
		return fmt.Sprintf("%s YYYY-AA-GG biçiminde olmalıdır", field)
	case "oneof":
		return fmt.Sprintf("%s şu değerlerden biri olmalıdır: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		if isString {
			return fmt.Sprintf("%s %s karakter olmalıdır", field, fe.Param())
		}
		return fmt.Sprintf("%s %s öğe içermelidir", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s yalnızca rakamlardan oluşmalıdır", field)
	case "min":
		if isString {
			return fmt.Sprintf("%s en az %s karakter olmalıdır", field, fe.Param())
		}
		return fmt.Sprintf("%s en az %s olmalıdır", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s en fazla %s karakter olmalıdır", field, fe.Param())
		}
		return fmt.Sprintf("%s en fazla %s olmalıdır", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s en az %s olmalıdır", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s en fazla %s olmalıdır", field, fe.Param())
	default:
		return fmt.Sprintf("%s alanı geçersiz", field)
	}
}

// handleCommonError modüller arası ortak hatalar; bilinmeyenler 500
func handleCommonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, err.Error())
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidPeriod):
		response.BadRequest(c, 10001, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
