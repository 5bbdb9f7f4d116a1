package api

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/terrain-booking-backend/internal/reservation"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags to gin's validator engine:
//
//	civildate  a calendar date in YYYY-MM-DD form
//	clock      a time of day in HH:MM or HH:MM:SS form
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err = v.RegisterValidation("civildate", validateCivilDate); err != nil {
			return
		}
		err = v.RegisterValidation("clock", validateClock)
	})
	return err
}

func validateCivilDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(reservation.DateLayout, fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := reservation.ParseStartTime(fl.Field().String())
	return err == nil
}
