package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/go-playground/validator/v10"
	"github.com/primitivehl/whitelist-checker/database"
)

type Configuration struct {
	DB                   database.Store `validate:"required"`
	Logger               log.Logger     `validate:"required"`
	ListenAddress        string         `validate:"required,hostname_port"`
	Sources              []string       `validate:"required,min=1,dive,url"`
	SourceTimeout        time.Duration  `validate:"gte=0"`
	SourceMaxBytes       int64          `validate:"gte=0"`
	MinimumCheckDuration time.Duration  `validate:"gte=0"`
	ListCacheTTL         time.Duration  `validate:"gte=0"`
	RedisUrl             string
	SessionTTL           time.Duration `validate:"gt=0"`
	Version              string
	ShutdownDrainTime    time.Duration `validate:"gte=0"`
}

var validate = validator.New()

// Validate returns a single error listing every invalid field.
func (c *Configuration) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Namespace(), getValidationMessage(e)))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be > %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "hostname_port":
		return "must be host:port"
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
