package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	widgetIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the
// configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return pkerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	for i, entry := range cfg.WidgetList() {
		if widget.IsExternalSpec(entry) {
			// The inline grammar has its own parser; surface its errors
			// at config time rather than at discovery.
			if _, err := widget.ParseExternalSpec(entry); err != nil {
				return pkerrors.NewValidationError(fmt.Sprintf("widgets[%d]", i), err.Error(), err)
			}
			continue
		}
		if !widgetIDPattern.MatchString(entry) {
			return pkerrors.NewValidationError(fmt.Sprintf("widgets[%d]", i), fmt.Sprintf("invalid widget id %q", entry), nil)
		}
	}

	if _, err := cfg.TierSet(); err != nil {
		return pkerrors.NewValidationError("tiers", err.Error(), err)
	}

	for id := range cfg.WidgetOptions {
		if !widgetIDPattern.MatchString(id) {
			return pkerrors.NewValidationError("widget_options", fmt.Sprintf("invalid widget id %q", id), nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return pkerrors.NewValidationError("config", err.Error(), err)
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Namespace())
	message := fmt.Sprintf("failed %q validation", fe.Tag())
	return pkerrors.NewValidationError(field, message, err)
}
