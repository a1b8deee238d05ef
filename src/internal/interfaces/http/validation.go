package http

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
)

var registerOnce sync.Once

// registerValidators 將自訂規則掛到 gin 的 binding 驗證器
//
// binding.Validator 是全域的，只註冊一次。
func registerValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("cadence", validateCadence); err != nil {
			return
		}
		err = v.RegisterValidation("plancode", validatePlanCode)
	})
	return err
}

func validateCadence(fl validator.FieldLevel) bool {
	_, err := subscription.ParseCadence(fl.Field().String())
	return err == nil
}

func validatePlanCode(fl validator.FieldLevel) bool {
	return subscription.IsValidPlanCode(fl.Field().String())
}
