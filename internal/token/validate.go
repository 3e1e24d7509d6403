package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/coinmaker/internal/common"
	"github.com/AlexZinkM/coinmaker/internal/failure"
	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type draftRules struct {
	Name     string `validate:"required,max=32"`
	Symbol   string `validate:"required,max=10"`
	Decimals int    `validate:"gte=0"`
	Supply   string `validate:"required,number"`
	Website  string `validate:"omitempty,url"`
}

// Validate checks the fields a submission needs. Name and symbol are trimmed first.
func Validate(d model.TokenDraft) error {
	rules := draftRules{
		Name:     strings.TrimSpace(d.Name),
		Symbol:   strings.TrimSpace(d.Symbol),
		Decimals: d.Decimals,
		Supply:   strings.TrimSpace(d.Supply),
	}
	if d.EnableSocials {
		rules.Website = strings.TrimSpace(d.Website)
	}

	if rules.Name == "" || rules.Symbol == "" {
		return failure.New(failure.Validation, "Please fill in token name and symbol")
	}
	if d.Decimals > common.MaxTokenDecimals {
		return failure.New(failure.Validation, fmt.Sprintf("Decimals must be between 0 and %d", common.MaxTokenDecimals))
	}

	if err := validate.Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return failure.Wrap(failure.Validation, ruleMessage(verrs[0]), err)
		}
		return failure.Wrap(failure.Validation, "Invalid token details", err)
	}
	return nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "Token name must be at most 32 characters"
	case "Symbol":
		return "Token symbol must be at most 10 characters"
	case "Decimals":
		return fmt.Sprintf("Decimals must be between 0 and %d", common.MaxTokenDecimals)
	case "Supply":
		return "Supply must be a whole number"
	case "Website":
		return "Website must be a valid URL"
	}
	return "Invalid token details"
}
