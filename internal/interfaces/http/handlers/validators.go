package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/shared/id"
	"github.com/folio-inc/folio/internal/shared/utils"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by request
// structs: "zone" for zone tags and "contentid" for content SIDs.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(utils.JSONTagName)
		if err = v.RegisterValidation("zone", validateZone); err != nil {
			return
		}
		err = v.RegisterValidation("contentid", validateContentID)
	})
	return err
}

func validateZone(fl validator.FieldLevel) bool {
	_, err := vo.ParseZone(fl.Field().String())
	return err == nil
}

func validateContentID(fl validator.FieldLevel) bool {
	return id.ValidateContentID(fl.Field().String()) == nil
}
